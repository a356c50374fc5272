package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/auditlog"
	"github.com/finsift-dev/finsift/internal/notify"
)

func newFreezeCommand(env *cmdEnv) *cobra.Command {
	var sendSMS bool
	var to string

	cmd := &cobra.Command{
		Use:   "freeze <file> <index>",
		Short: "Record a freeze decision for one transaction in the audit log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid transaction index %q: %w", args[1], err)
			}
			return runFreeze(env, cmd, args[0], idx, sendSMS, to)
		},
	}

	cmd.Flags().BoolVar(&sendSMS, "notify", false, "also send an SMS alert via Twilio")
	cmd.Flags().StringVar(&to, "to", "", "SMS destination override (E.164)")

	return cmd
}

func runFreeze(env *cmdEnv, cmd *cobra.Command, path string, idx int, sendSMS bool, to string) error {
	table, err := env.loadTable(path)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(table) {
		return fmt.Errorf("transaction index %d out of range (table has %d rows)", idx, len(table))
	}
	txn := table[idx]

	cfg, err := env.config()
	if err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp:   time.Now(),
		Index:       idx,
		Description: txn.Description,
		Amount:      txn.Amount.StringFixed(2),
	}
	if txn.HasDate() {
		entry.Date = txn.Date.Format("2006-01-02")
	}

	if sendSMS {
		sent, info := dispatchSMS(cmd, cfg.Notify.To, to, txn.Description, entry.Amount)
		entry.SMSSent = sent
		entry.SMSInfo = info
	}

	if err := auditlog.Append(cfg.Logs.Dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	fmt.Printf("Recorded freeze request for [%d] %s %s\n", idx, txn.Description, entry.Amount)
	if sendSMS {
		fmt.Printf("SMS sent: %t (%s)\n", entry.SMSSent, entry.SMSInfo)
	}
	return nil
}

// dispatchSMS attempts delivery and reports the outcome; SMS failure never
// fails the freeze itself, it is recorded in the audit entry instead.
func dispatchSMS(cmd *cobra.Command, configTo, flagTo, description, amount string) (bool, string) {
	sender, err := notify.NewFromEnv()
	if err != nil {
		return false, err.Error()
	}

	dest := flagTo
	if dest == "" {
		dest = configTo
	}

	body := fmt.Sprintf("finsift alert: freeze requested for %s (%s)", description, amount)
	info, err := sender.Send(cmd.Context(), body, dest)
	if err != nil {
		return false, err.Error()
	}
	return true, info
}
