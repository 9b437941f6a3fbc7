// Package allocate spreads each person's project costs over the days they
// actually worked.
//
// Projects are served in a fixed order and share one cursor per person: a
// project starts on the day, and with the capacity, the previous project
// left behind. Hours are whole numbers throughout.
package allocate

import (
	"errors"
	"fmt"

	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
)

// ErrCapacityExceeded is returned when a person's costs do not fit into the
// hours they worked. Reconciled costs never trigger it.
var ErrCapacityExceeded = errors.New("allocation exceeds worked hours")

// CapacityError carries the details of an allocation that ran past the last
// attendance day.
type CapacityError struct {
	Person    string
	Project   string
	Remaining int // unallocated project hours
	Days      int // attendance days available
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d hours of %s left after day %d",
		e.Person, e.Remaining, e.Project, e.Days)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// Cursor is the allocation position inside a person's attendance.
type Cursor struct {
	Day       int    // 1-based day index
	Remaining int    // unallocated hours left on Day
	Presence  string // presence code of Day
}

// Start places a cursor on the first day of the attendance.
func Start(days []attendance.Day) Cursor {
	if len(days) == 0 {
		return Cursor{Day: 1}
	}
	return Cursor{Day: 1, Remaining: days[0].Hours, Presence: days[0].Presence}
}

// Project consumes cost hours from the cursor onward and returns the worked
// entries together with the advanced cursor. The returned error is a
// *CapacityError when the attendance runs out first.
func Project(c Cursor, days []attendance.Day, cost int) ([]DayEntry, Cursor, error) {
	var entries []DayEntry
	for cost > 0 {
		spent := min(cost, c.Remaining)
		if spent > 0 {
			entries = append(entries, DayEntry{Day: c.Day, Hours: spent, Presence: c.Presence, Kind: Worked})
			cost -= spent
			c.Remaining -= spent
		}
		if cost > 0 && c.Remaining < 1 {
			if c.Day >= len(days) {
				return nil, c, &CapacityError{Remaining: cost, Days: len(days)}
			}
			c.Day++
			c.Remaining = days[c.Day-1].Hours
			c.Presence = days[c.Day-1].Presence
		}
	}
	return entries, c, nil
}

// ProjectCost is one project's reconciled hours for a person.
type ProjectCost struct {
	Project string
	Hours   int
}

// Person allocates a person's project costs in the given order. Projects with
// no cost get no ledger. daysInMonth bounds the valid day indexes together
// with the length of the attendance.
func Person(rec attendance.Record, projects []ProjectCost, daysInMonth int) ([]Ledger, Cursor, error) {
	periodDays := min(daysInMonth, len(rec.Days), MaxDays)
	days := rec.Days[:periodDays]

	var ledgers []Ledger
	c := Start(days)
	for _, pc := range projects {
		if pc.Hours <= 0 {
			continue
		}
		entries, next, err := Project(c, days, pc.Hours)
		if err != nil {
			var ce *CapacityError
			if errors.As(err, &ce) {
				ce.Person = rec.FullName
				ce.Project = pc.Project
			}
			return nil, next, err
		}
		c = next
		ledgers = append(ledgers, newLedger(rec.FullName, pc.Project, pc.Hours, entries, days, periodDays))
	}
	return ledgers, c, nil
}

// Attendance looks up a person's attendance record by exact full name.
type Attendance interface {
	Require(name string) (attendance.Record, error)
}

// Allocation groups one person's ledgers.
type Allocation struct {
	Person  string
	Ledgers []Ledger
	Cursor  Cursor // position after the last project
}

// Ledger returns the person's ledger for a project.
func (a Allocation) Ledger(project string) (Ledger, bool) {
	for _, l := range a.Ledgers {
		if l.Project == project {
			return l, true
		}
	}
	return Ledger{}, false
}

// All allocates every person of a reconciled matrix, persons and projects in
// matrix order.
func All(att Attendance, m *costs.Matrix, daysInMonth int) ([]Allocation, error) {
	projects := m.Projects()
	var out []Allocation
	for _, person := range m.Persons() {
		rec, err := att.Require(person)
		if err != nil {
			return nil, fmt.Errorf("allocating costs: %w", err)
		}

		pcs := make([]ProjectCost, 0, len(projects))
		for _, p := range projects {
			pcs = append(pcs, ProjectCost{Project: p, Hours: m.Get(person, p)})
		}

		ledgers, c, err := Person(rec, pcs, daysInMonth)
		if err != nil {
			return nil, err
		}
		out = append(out, Allocation{Person: person, Ledgers: ledgers, Cursor: c})
	}
	return out, nil
}
