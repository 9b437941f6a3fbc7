package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/config"
	"github.com/valeriy-chepelev/costsheet/internal/hashutil"
	"github.com/valeriy-chepelev/costsheet/internal/journal"
	"github.com/valeriy-chepelev/costsheet/internal/reconcile"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
	"github.com/valeriy-chepelev/costsheet/internal/stringutil"
)

type allocateOptions struct {
	configPath string
	debug      bool
	files      fileFlags
	month      string
	year       string
	export     string
	yes        bool
}

var allocateCmd = LeafCommand{
	Use:   "allocate",
	Short: "Reconcile costs with attendance and allocate them by day",
	Long: `Imports attendance and tracker costs, scales down the costs of anyone whose
tracked hours exceed attended hours, and spreads every person's project costs
over the days they worked. The result is shown as a table or exported as one
PDF time sheet per project.`,
	StrFlags: []StringFlag{
		{Name: "attendance", Shorthand: "a", Usage: "HR attendance workbook (xlsx)"},
		{Name: "costs", Shorthand: "c", Usage: "cost matrix workbook (xlsx)"},
		{Name: "changelog", Usage: "tracker changelog export (json), replaces --costs"},
		{Name: "month", Shorthand: "m", Usage: "month number 1-12 (default: current month)"},
		{Name: "year", Usage: "year (default: current year)"},
		{Name: "export", Usage: "export format (pdf, xlsx)"},
		{Name: "output", Shorthand: "o", Usage: "directory for exported files"},
	},
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "accept cost corrections without asking"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := allocateOptions{}
		opts.configPath, opts.debug = globalFlags(cmd)
		opts.files.attendance, _ = cmd.Flags().GetString("attendance")
		opts.files.costs, _ = cmd.Flags().GetString("costs")
		opts.files.changelog, _ = cmd.Flags().GetString("changelog")
		opts.files.output, _ = cmd.Flags().GetString("output")
		opts.month, _ = cmd.Flags().GetString("month")
		opts.year, _ = cmd.Flags().GetString("year")
		opts.export, _ = cmd.Flags().GetString("export")
		opts.yes, _ = cmd.Flags().GetBool("yes")

		if opts.files.costs != "" && opts.files.changelog != "" {
			return fmt.Errorf("--costs and --changelog cannot be used together")
		}

		confirm := NewConfirmFunc()
		if opts.yes {
			confirm = AlwaysYes()
		}
		return runAllocate(cmd, opts, confirm, time.Now)
	},
}.Build()

func runAllocate(cmd *cobra.Command, opts allocateOptions, confirm ConfirmFunc, nowFn func() time.Time) error {
	now := nowFn()

	if opts.export != "" && opts.export != "pdf" && opts.export != "xlsx" {
		return fmt.Errorf("unsupported export format %q (supported: pdf, xlsx)", opts.export)
	}

	period, err := parsePeriodFlags(opts.month, opts.year, now)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	opts.files.apply(&cfg.Files)

	logger, closeLog, err := newLogger(cfg.Files.Log, cmd.ErrOrStderr(), opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger.Info("allocation started", "period", period.String())
	if err := allocateSheet(cmd, cfg, opts, period, logger, confirm, now); err != nil {
		logger.Error("allocation failed", "err", err)
		return err
	}
	return nil
}

func allocateSheet(cmd *cobra.Command, cfg config.FileConfig, opts allocateOptions, period sheet.Period, logger *log.Logger, confirm ConfirmFunc, now time.Time) error {
	out := cmd.OutOrStdout()

	att, err := loadAttendance(cfg, logger)
	if err != nil {
		return err
	}

	raw, err := loadCosts(out, cfg, period, att, logger)
	if err != nil {
		return err
	}

	s, res, err := sheet.Generate(period, att, raw, reconcile.Reconciler{Logger: logger})
	if err != nil {
		return err
	}

	if len(s.Projects) == 0 {
		_, _ = fmt.Fprintln(out, Info(fmt.Sprintf("No costs for %s.", period)))
		return nil
	}

	if len(res.Corrections) > 0 {
		for _, c := range res.Corrections {
			_, _ = fmt.Fprintln(out, Warning(c.String()))
		}
		ok, err := confirm(fmt.Sprintf("Costs of %d person(s) were scaled down to attendance. Continue?", len(res.Corrections)))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if cfg.Files.Journal != "" {
		if err := recordRun(cmd.Context(), cfg.Files.Journal, period, s, res, now); err != nil {
			return err
		}
	}

	if opts.export != "" {
		return exportSheet(cmd, s, cfg.Files, opts.export)
	}
	return runAllocateTable(cmd, s)
}

func recordRun(ctx context.Context, path string, period sheet.Period, s sheet.Sheet, res reconcile.Result, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	hours := 0
	for _, p := range s.Projects {
		hours += p.Hours()
	}

	run := journal.Run{
		ID:        hashutil.RunID(period.String(), now),
		Year:      period.Year,
		Month:     period.Month,
		CreatedAt: now,
		Persons:   len(res.Costs.Persons()),
		Projects:  len(s.Projects),
		Hours:     hours,
	}
	return store.Record(ctx, run, res.Corrections)
}

// exportSheet writes one file per project into the output directory.
func exportSheet(cmd *cobra.Command, s sheet.Sheet, files config.FilesConfig, format string) error {
	if err := os.MkdirAll(files.Output, 0o755); err != nil {
		return err
	}
	for _, p := range s.Projects {
		name := fmt.Sprintf("%s-%d-month-%02d.%s", stringutil.Slugify(p.Name), s.Period.Year, s.Period.Month, format)
		outputPath := filepath.Join(files.Output, name)

		var err error
		if format == "xlsx" {
			err = renderProjectXLSX(p, outputPath)
		} else {
			err = renderProjectPDF(p, s.Period, files.Font, outputPath)
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", p.Name, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s to %s\n", Success("Exported"), Primary(p.Name), outputPath)
	}
	return nil
}
