package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/config"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
	"github.com/valeriy-chepelev/costsheet/internal/people"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
	"github.com/valeriy-chepelev/costsheet/internal/tracker"
)

// fileFlags holds the input and output flags that override [files].
type fileFlags struct {
	attendance string
	costs      string
	changelog  string
	output     string
}

// apply overrides config file locations with non-empty flags. A changelog
// flag takes precedence over a configured costs workbook and vice versa.
func (f fileFlags) apply(files *config.FilesConfig) {
	if f.attendance != "" {
		files.Attendance = f.attendance
	}
	if f.costs != "" {
		files.Costs = f.costs
		files.Changelog = ""
	}
	if f.changelog != "" {
		files.Changelog = f.changelog
	}
	if f.output != "" {
		files.Output = f.output
	}
}

// loadAttendance imports the HR attendance workbook.
func loadAttendance(cfg config.FileConfig, logger *log.Logger) (*attendance.Set, error) {
	att, err := attendance.ReadXLSX(cfg.Files.Attendance, cfg.Attendance.Layout())
	if err != nil {
		return nil, err
	}
	logger.Info("attendance imported", "file", cfg.Files.Attendance, "persons", att.Len())
	return att, nil
}

// loadCosts imports the raw cost matrix, from the tracker changelog when one
// is configured and from the costs workbook otherwise. Persons are mapped to
// attendance names and project keys to display names.
func loadCosts(w io.Writer, cfg config.FileConfig, period sheet.Period, att *attendance.Set, logger *log.Logger) (*costs.Matrix, error) {
	var (
		raw *costs.Matrix
		err error
	)
	if cfg.Files.Changelog != "" {
		changes, readErr := tracker.ReadChangelog(cfg.Files.Changelog)
		if readErr != nil {
			return nil, readErr
		}
		raw, err = tracker.Aggregate(changes, period.Start(), period.End())
		logger.Info("changelog aggregated", "file", cfg.Files.Changelog, "changes", len(changes))
	} else {
		raw, err = costs.ReadXLSX(cfg.Files.Costs, cfg.Files.CostsSheet)
		logger.Info("costs imported", "file", cfg.Files.Costs)
	}
	if err != nil {
		return nil, err
	}

	personFn := costs.Identity
	if att != nil {
		personFn = newResolver(w, cfg, att, logger).Resolve
	}
	return raw.Map(personFn, cfg.ProjectName)
}

// newResolver maps tracker logins to attendance names and reports ambiguous
// matches to the operator.
func newResolver(w io.Writer, cfg config.FileConfig, att *attendance.Set, logger *log.Logger) people.Resolver {
	return people.Resolver{
		Names:     att.Names(),
		Selectors: cfg.Persons,
		OnAmbiguous: func(login string, m people.Match) {
			logger.Warn("ambiguous person match", "login", login, "chosen", m.Name, "candidates", len(m.Candidates))
			_, _ = fmt.Fprintln(w, Warning(fmt.Sprintf("%s matches %s, using %s",
				login, strings.Join(m.Candidates, ", "), m.Name)))
		},
	}
}
