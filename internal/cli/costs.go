package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/config"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
	"github.com/valeriy-chepelev/costsheet/internal/reconcile"
)

var costsCmd = LeafCommand{
	Use:   "costs",
	Short: "Show the cost matrix aggregated from a tracker changelog",
	StrFlags: []StringFlag{
		{Name: "changelog", Usage: "tracker changelog export (json)"},
		{Name: "attendance", Shorthand: "a", Usage: "HR attendance workbook used to match persons (optional)"},
		{Name: "month", Shorthand: "m", Usage: "month number 1-12 (default: current month)"},
		{Name: "year", Usage: "year (default: current year)"},
		{Name: "save", Usage: "write the matrix to an xlsx workbook"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := globalFlags(cmd)
		changelogFlag, _ := cmd.Flags().GetString("changelog")
		attendanceFlag, _ := cmd.Flags().GetString("attendance")
		monthFlag, _ := cmd.Flags().GetString("month")
		yearFlag, _ := cmd.Flags().GetString("year")
		saveFlag, _ := cmd.Flags().GetString("save")
		return runCosts(cmd, configPath, debug, changelogFlag, attendanceFlag, monthFlag, yearFlag, saveFlag, time.Now)
	},
}.Build()

func runCosts(
	cmd *cobra.Command,
	configPath string, debug bool,
	changelogFlag, attendanceFlag, monthFlag, yearFlag, saveFlag string,
	nowFn func() time.Time,
) error {
	period, err := parsePeriodFlags(monthFlag, yearFlag, nowFn())
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	fileFlags{changelog: changelogFlag}.apply(&cfg.Files)
	if cfg.Files.Changelog == "" {
		return fmt.Errorf("--changelog is required")
	}

	logger, closeLog, err := newLogger(cfg.Files.Log, cmd.ErrOrStderr(), debug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	out := cmd.OutOrStdout()

	var att *attendance.Set
	if attendanceFlag != "" {
		cfg.Files.Attendance = attendanceFlag
		if att, err = loadAttendance(cfg, logger); err != nil {
			return err
		}
	}

	m, err := loadCosts(out, cfg, period, att, logger)
	if err != nil {
		return err
	}
	m = m.Clean()

	if len(m.Persons()) == 0 {
		_, _ = fmt.Fprintln(out, Info(fmt.Sprintf("No spent time for %s.", period)))
		return nil
	}

	if err := printMatrix(out, period.String(), m); err != nil {
		return err
	}

	if att != nil {
		res, err := reconcile.Reconciler{Logger: logger}.Reconcile(m, att)
		if err != nil {
			return err
		}
		printReconciliation(out, res)
	}

	if saveFlag != "" {
		if err := costs.WriteXLSX(m, saveFlag); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, Success("Saved "+saveFlag))
	}
	return nil
}

// printMatrix renders persons by projects with row and column totals.
func printMatrix(w io.Writer, title string, m *costs.Matrix) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("--- %s ---", title)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(padRight("Person", personColWidth)))
	for _, p := range m.Projects() {
		b.WriteString(" | ")
		b.WriteString(headerStyle.Render(padCenter(truncate(p, projectColWidth), projectColWidth)))
	}
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padCenter("Sum", totalColWidth)))
	b.WriteString("\n")

	for _, person := range m.Persons() {
		b.WriteString(padRight(truncate(person, personColWidth), personColWidth))
		for _, p := range m.Projects() {
			b.WriteString(" | ")
			if v := m.Get(person, p); v > 0 {
				b.WriteString(padCenter(strconv.Itoa(v), projectColWidth))
			} else {
				b.WriteString(dotStyle.Render(padCenter(".", projectColWidth)))
			}
		}
		b.WriteString(" | ")
		b.WriteString(padCenter(strconv.Itoa(m.RowTotal(person)), totalColWidth))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(padRight("Total", personColWidth)))
	for _, p := range m.Projects() {
		b.WriteString(" | ")
		b.WriteString(headerStyle.Render(padCenter(strconv.Itoa(m.ColumnTotal(p)), projectColWidth)))
	}
	b.WriteString(" | ")
	b.WriteString(headerStyle.Render(padCenter(strconv.Itoa(m.Total()), totalColWidth)))
	b.WriteString("\n")

	_, err := fmt.Fprint(w, b.String())
	return err
}

// printReconciliation shows tracked against attended hours per person.
func printReconciliation(w io.Writer, res reconcile.Result) {
	_, _ = fmt.Fprintln(w)
	for _, row := range res.Rows {
		line := fmt.Sprintf("%s: summary %d, attendance %d, factor %s",
			row.Person, row.Summary, row.Total, row.Factor.StringFixed(4))
		if row.Scaled() {
			line = Warning(line + fmt.Sprintf(", scaled to %d", row.Corrected))
		} else {
			line = Silent(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
