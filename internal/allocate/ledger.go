package allocate

import (
	"strconv"

	"github.com/valeriy-chepelev/costsheet/internal/attendance"
)

const (
	// MaxDays is the number of day slots in every ledger.
	MaxDays = 31
	// HalfDays is the last day of the first half of a month.
	HalfDays = 15
	// OutOfRangeMark fills hours and presence of days outside the period.
	OutOfRangeMark = "X"
)

// Kind tells a worked day apart from the two fill sentinels.
type Kind int

const (
	Worked     Kind = iota // hours allocated to the project
	Blank                  // day exists but nothing was allocated to the project
	OutOfRange             // day index is past the end of the period
)

func (k Kind) String() string {
	switch k {
	case Worked:
		return "worked"
	case Blank:
		return "blank"
	case OutOfRange:
		return "out-of-range"
	}
	return "unknown"
}

// DayEntry is one day of a project ledger.
type DayEntry struct {
	Day      int
	Hours    int
	Presence string
	Kind     Kind
}

// HoursText renders the hours cell: a number, an empty blank or the
// out-of-range mark.
func (e DayEntry) HoursText() string {
	switch e.Kind {
	case Worked:
		return strconv.Itoa(e.Hours)
	case OutOfRange:
		return OutOfRangeMark
	}
	return ""
}

// PresenceText renders the presence cell.
func (e DayEntry) PresenceText() string {
	if e.Kind == OutOfRange {
		return OutOfRangeMark
	}
	return e.Presence
}

// Ledger is the day-by-day allocation of one person's cost to one project.
type Ledger struct {
	Person  string
	Project string
	Cost    int
	Days    [MaxDays]DayEntry // Days[i] is day i+1

	HP1 int // hours, days 1-15
	DP1 int // worked days, days 1-15
	HP2 int // hours, days 16-end
	DP2 int // worked days, days 16-end
	SH  int // HP1 + HP2
	SD  int // DP1 + DP2
}

// Day returns the entry for a 1-based day index.
func (l Ledger) Day(day int) DayEntry {
	return l.Days[day-1]
}

// newLedger places worked entries, computes half-month totals and back-fills
// the remaining days. periodDays is the number of valid day indexes.
func newLedger(person, project string, cost int, worked []DayEntry, days []attendance.Day, periodDays int) Ledger {
	l := Ledger{Person: person, Project: project, Cost: cost}

	filled := make(map[int]bool, len(worked))
	for _, e := range worked {
		l.Days[e.Day-1] = e
		filled[e.Day] = true
		if e.Day <= HalfDays {
			l.HP1 += e.Hours
			l.DP1++
		} else {
			l.HP2 += e.Hours
			l.DP2++
		}
	}
	l.SH = l.HP1 + l.HP2
	l.SD = l.DP1 + l.DP2

	for day := 1; day <= MaxDays; day++ {
		if filled[day] {
			continue
		}
		if day > periodDays {
			l.Days[day-1] = DayEntry{Day: day, Kind: OutOfRange}
			continue
		}
		att := days[day-1]
		presence := attendance.Present
		if att.Hours == 0 {
			presence = att.Presence
		}
		l.Days[day-1] = DayEntry{Day: day, Presence: presence, Kind: Blank}
	}
	return l
}
