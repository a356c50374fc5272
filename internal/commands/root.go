// Package commands wires the finsift CLI: parse, scan, freeze and advise
// over bank/UPI statement exports.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/buildinfo"
	"github.com/finsift-dev/finsift/internal/config"
	"github.com/finsift-dev/finsift/internal/logger"
	"github.com/finsift-dev/finsift/internal/model"
	"github.com/finsift-dev/finsift/internal/statement"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var verbose bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "finsift",
		Short:   "Sift messy bank/UPI statements for risky transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to finsift.yaml")

	env := &cmdEnv{verbose: &verbose, configPath: &configPath}

	rootCmd.AddCommand(newParseCommand(env))
	rootCmd.AddCommand(newScanCommand(env))
	rootCmd.AddCommand(newFreezeCommand(env))
	rootCmd.AddCommand(newAdviseCommand(env))

	return rootCmd
}

// cmdEnv carries the shared persistent-flag state into subcommands.
type cmdEnv struct {
	verbose    *bool
	configPath *string
}

func (e *cmdEnv) log() zerolog.Logger {
	return logger.New(*e.verbose)
}

func (e *cmdEnv) config() (*config.Config, error) {
	return config.LoadOrDefault(*e.configPath)
}

// loadTable reads and normalizes a statement file.
func (e *cmdEnv) loadTable(path string) (model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return statement.New(e.log()).Normalize(data, path)
}
