package sheet

import (
	"fmt"
	"time"
)

// Period is a reporting month.
type Period struct {
	Year  int
	Month time.Month
	Days  int
}

// NewPeriod returns the month containing t.
func NewPeriod(t time.Time) Period {
	return Period{
		Year:  t.Year(),
		Month: t.Month(),
		Days:  daysIn(t.Year(), t.Month()),
	}
}

// Start returns midnight of the first day.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last second of the last day.
func (p Period) End() time.Time {
	return time.Date(p.Year, p.Month, p.Days, 23, 59, 59, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
