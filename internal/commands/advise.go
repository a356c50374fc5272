package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/advisor"
)

func newAdviseCommand(env *cmdEnv) *cobra.Command {
	var deep bool
	var question string

	cmd := &cobra.Command{
		Use:   "advise <file>",
		Short: "Generate financial advice from a statement summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvise(env, cmd, args[0], question, deep)
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "produce a deeper analysis")
	cmd.Flags().StringVarP(&question, "question", "q", "", "specific question to answer")

	return cmd
}

func runAdvise(env *cmdEnv, cmd *cobra.Command, path, question string, deep bool) error {
	table, err := env.loadTable(path)
	if err != nil {
		return err
	}

	cfg, err := env.config()
	if err != nil {
		return err
	}

	mode := advisor.ModeQuick
	if deep {
		mode = advisor.ModeDeep
	}

	a := advisor.New(os.Getenv("OPENAI_API_KEY"), cfg.Advisor.Model)
	fmt.Println(a.Advise(cmd.Context(), advisor.Summarize(table), question, mode))
	return nil
}
