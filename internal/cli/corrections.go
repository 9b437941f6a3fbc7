package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/journal"
)

var correctionsCmd = LeafCommand{
	Use:   "corrections",
	Short: "List cost corrections recorded for a month",
	StrFlags: []StringFlag{
		{Name: "month", Shorthand: "m", Usage: "month number 1-12 (default: current month)"},
		{Name: "year", Usage: "year (default: current year)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := globalFlags(cmd)
		monthFlag, _ := cmd.Flags().GetString("month")
		yearFlag, _ := cmd.Flags().GetString("year")
		return runCorrections(cmd, configPath, monthFlag, yearFlag, time.Now)
	},
}.Build()

func runCorrections(cmd *cobra.Command, configPath, monthFlag, yearFlag string, nowFn func() time.Time) error {
	period, err := parsePeriodFlags(monthFlag, yearFlag, nowFn())
	if err != nil {
		return err
	}

	ctx, store, err := openJournal(cmd, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(ctx, period.Year, period.Month)
	if err != nil {
		return err
	}
	entries, err := store.Corrections(ctx, period.Year, period.Month)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintf(out, "No runs recorded for %s.\n", period)
		return nil
	}

	byRun := make(map[string][]journal.Entry)
	for _, e := range entries {
		byRun[e.RunID] = append(byRun[e.RunID], e)
	}

	for _, r := range runs {
		_, _ = fmt.Fprintf(out, "%s  %s  %d person(s), %d project(s), %dh\n",
			Primary(r.ID), Silent(r.CreatedAt.Local().Format("2006-01-02 15:04")), r.Persons, r.Projects, r.Hours)
		corrections := byRun[r.ID]
		if len(corrections) == 0 {
			_, _ = fmt.Fprintln(out, Silent("  no corrections"))
			continue
		}
		for _, e := range corrections {
			_, _ = fmt.Fprintf(out, "  %s\n", Warning(e.Correction.String()))
		}
	}
	return nil
}
