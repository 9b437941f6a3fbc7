package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var forgetCmd = LeafCommand{
	Use:   "forget",
	Short: "Delete the runs and corrections recorded for a month",
	StrFlags: []StringFlag{
		{Name: "month", Shorthand: "m", Usage: "month number 1-12 (default: current month)"},
		{Name: "year", Usage: "year (default: current year)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip confirmation"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := globalFlags(cmd)
		monthFlag, _ := cmd.Flags().GetString("month")
		yearFlag, _ := cmd.Flags().GetString("year")
		yes, _ := cmd.Flags().GetBool("yes")

		confirm := NewConfirmFunc()
		if yes {
			confirm = AlwaysYes()
		}
		return runForget(cmd, configPath, monthFlag, yearFlag, confirm, time.Now)
	},
}.Build()

func runForget(cmd *cobra.Command, configPath, monthFlag, yearFlag string, confirm ConfirmFunc, nowFn func() time.Time) error {
	period, err := parsePeriodFlags(monthFlag, yearFlag, nowFn())
	if err != nil {
		return err
	}

	ctx, store, err := openJournal(cmd, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	runs, err := store.Runs(ctx, period.Year, period.Month)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintf(out, "No runs recorded for %s.\n", period)
		return nil
	}

	ok, err := confirm(fmt.Sprintf("Forget %d run(s) recorded for %s?", len(runs), period))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Aborted.")
		return nil
	}

	n, err := store.Forget(ctx, period.Year, period.Month)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, Success(fmt.Sprintf("Forgot %d run(s) for %s.", n, period)))
	return nil
}
