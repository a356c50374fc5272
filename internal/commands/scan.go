package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/risk"
)

func newScanCommand(env *cmdEnv) *cobra.Command {
	var threshold float64
	var outlierZ float64
	var months int

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Flag potentially risky transactions in a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := scanParams(env, cmd, threshold, outlierZ, months)
			if err != nil {
				return err
			}
			return runScan(env, args[0], params)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", risk.DefaultUnaffordableThreshold,
		"fraction of monthly income above which a single debit is unaffordable")
	cmd.Flags().Float64Var(&outlierZ, "outlier-z", risk.DefaultOutlierZ,
		"z-score above which an amount is anomalous")
	cmd.Flags().IntVar(&months, "months", risk.DefaultRecentPayeeMonths,
		"lookback months for the known-payee set")

	return cmd
}

// scanParams starts from the config file and lets explicitly-set flags
// override it.
func scanParams(env *cmdEnv, cmd *cobra.Command, threshold, outlierZ float64, months int) (risk.Params, error) {
	cfg, err := env.config()
	if err != nil {
		return risk.Params{}, err
	}

	params := cfg.Risk.Params()
	if cmd.Flags().Changed("threshold") {
		params.UnaffordableThreshold = threshold
	}
	if cmd.Flags().Changed("outlier-z") {
		params.OutlierZ = outlierZ
	}
	if cmd.Flags().Changed("months") {
		params.RecentPayeeMonths = months
	}
	return params, nil
}

func runScan(env *cmdEnv, path string, params risk.Params) error {
	table, err := env.loadTable(path)
	if err != nil {
		return err
	}

	income := risk.EstimateMonthlyIncome(table)
	flags := risk.Scan(table, params)

	fmt.Printf("Parsed %d transactions; estimated monthly income %s\n", len(table), income.StringFixed(2))
	if len(flags) == 0 {
		fmt.Println("No suspicious transactions found.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tINDEX\tDATE\tDESCRIPTION\tAMOUNT\tREASONS")
	for _, f := range flags {
		date := ""
		if f.Transaction.HasDate() {
			date = f.Transaction.Date.Format("2006-01-02")
		}
		codes := make([]string, len(f.Reasons))
		for i, r := range f.Reasons {
			codes[i] = r.Code
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
			f.Severity, f.Index, date, f.Transaction.Description,
			f.Transaction.Amount.StringFixed(2), strings.Join(codes, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d flagged. Use 'finsift freeze %s <index>' to record a freeze decision.\n", len(flags), path)
	return nil
}
