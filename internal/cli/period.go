package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/valeriy-chepelev/costsheet/internal/sheet"
)

// parseMonthYearFlags parses the --month and --year flags into year and month.
// Defaults to current month/year if empty.
func parseMonthYearFlags(monthFlag, yearFlag string, now time.Time) (int, time.Month, error) {
	year := now.Year()
	if yearFlag != "" {
		y, err := strconv.Atoi(yearFlag)
		if err != nil || y <= 0 {
			return 0, 0, fmt.Errorf("invalid --year value %q (expected a positive number)", yearFlag)
		}
		year = y
	}

	month := now.Month()
	if monthFlag != "" {
		m, err := strconv.Atoi(monthFlag)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid --month value %q (expected 1-12)", monthFlag)
		}
		month = time.Month(m)
	}

	return year, month, nil
}

// parsePeriodFlags resolves --month and --year into a reporting period.
func parsePeriodFlags(monthFlag, yearFlag string, now time.Time) (sheet.Period, error) {
	year, month, err := parseMonthYearFlags(monthFlag, yearFlag, now)
	if err != nil {
		return sheet.Period{}, err
	}
	return sheet.NewPeriod(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)), nil
}
