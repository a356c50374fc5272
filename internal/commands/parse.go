package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/statement"
)

func newParseCommand(env *cmdEnv) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Normalize a statement into the canonical transaction table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(env, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write table CSV to a file instead of stdout")

	return cmd
}

func runParse(env *cmdEnv, path, output string) error {
	table, err := env.loadTable(path)
	if err != nil {
		return err
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := statement.WriteTable(w, table); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d transactions to %s\n", len(table), output)
	}
	return nil
}
