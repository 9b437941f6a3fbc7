// Package sheet assembles allocation ledgers into per-project time sheets and
// flattens them into the named fields document templates expect.
package sheet

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/valeriy-chepelev/costsheet/internal/allocate"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
	"github.com/valeriy-chepelev/costsheet/internal/reconcile"
)

// ErrPeriodMismatch marks attendance that covers more days than the period.
var ErrPeriodMismatch = errors.New("attendance does not fit the period")

// PeriodMismatchError names the person whose attendance is longer than the
// reporting period.
type PeriodMismatchError struct {
	Person     string
	Days       int
	PeriodDays int
	Period     Period
}

func (e *PeriodMismatchError) Error() string {
	return fmt.Sprintf("%s: attendance has %d days, %s has %d", e.Person, e.Days, e.Period, e.PeriodDays)
}

func (e *PeriodMismatchError) Unwrap() error {
	return ErrPeriodMismatch
}

// Attendance looks up a person's attendance record by exact full name.
type Attendance interface {
	Require(name string) (attendance.Record, error)
}

// Participant is one person's line on a project sheet.
type Participant struct {
	Name      string
	Number    string
	Specialty string
	Ledger    allocate.Ledger
}

// FieldNames lists the template field names in document order.
func FieldNames() []string {
	names := make([]string, 0, 2*allocate.MaxDays+9)
	names = append(names, "name", "number", "specialty")
	for day := 1; day <= allocate.MaxDays; day++ {
		names = append(names, "h"+strconv.Itoa(day))
	}
	for day := 1; day <= allocate.MaxDays; day++ {
		names = append(names, "pres"+strconv.Itoa(day))
	}
	return append(names, "hp1", "dp1", "hp2", "dp2", "sh", "sd")
}

// Fields flattens the participant into template fields: name, number,
// specialty, h1..h31, pres1..pres31, hp1, dp1, hp2, dp2, sh, sd.
func (p Participant) Fields() map[string]string {
	f := make(map[string]string, 2*allocate.MaxDays+9)
	f["name"] = p.Name
	f["number"] = p.Number
	f["specialty"] = p.Specialty
	for _, e := range p.Ledger.Days {
		f["h"+strconv.Itoa(e.Day)] = e.HoursText()
		f["pres"+strconv.Itoa(e.Day)] = e.PresenceText()
	}
	f["hp1"] = strconv.Itoa(p.Ledger.HP1)
	f["dp1"] = strconv.Itoa(p.Ledger.DP1)
	f["hp2"] = strconv.Itoa(p.Ledger.HP2)
	f["dp2"] = strconv.Itoa(p.Ledger.DP2)
	f["sh"] = strconv.Itoa(p.Ledger.SH)
	f["sd"] = strconv.Itoa(p.Ledger.SD)
	return f
}

// Project is the time sheet of one project.
type Project struct {
	Name         string
	Participants []Participant
}

// Hours sums the participants' allocated hours.
func (p Project) Hours() int {
	total := 0
	for _, pt := range p.Participants {
		total += pt.Ledger.SH
	}
	return total
}

// Sheet is the assembled output of one run.
type Sheet struct {
	Period   Period
	Projects []Project
}

// Build groups ledgers by project. Projects follow the given order,
// participants follow the order of allocs. Projects without participants are
// left out.
func Build(period Period, att Attendance, projects []string, allocs []allocate.Allocation) (Sheet, error) {
	s := Sheet{Period: period}
	for _, name := range projects {
		proj := Project{Name: name}
		for _, a := range allocs {
			l, ok := a.Ledger(name)
			if !ok {
				continue
			}
			rec, err := att.Require(a.Person)
			if err != nil {
				return Sheet{}, fmt.Errorf("assembling %s: %w", name, err)
			}
			proj.Participants = append(proj.Participants, Participant{
				Name:      rec.FullName,
				Number:    rec.Number,
				Specialty: rec.Specialty,
				Ledger:    l,
			})
		}
		if len(proj.Participants) > 0 {
			s.Projects = append(s.Projects, proj)
		}
	}
	return s, nil
}

// Generate runs the whole pipeline for a period: drop empty rows and columns,
// reconcile against attendance, allocate by day and assemble the sheet.
func Generate(period Period, att Attendance, raw *costs.Matrix, r reconcile.Reconciler) (Sheet, reconcile.Result, error) {
	if err := raw.Validate(); err != nil {
		return Sheet{}, reconcile.Result{}, err
	}

	cleaned := raw.Clean()
	if err := checkPeriod(period, att, cleaned.Persons()); err != nil {
		return Sheet{}, reconcile.Result{}, err
	}

	res, err := r.Reconcile(cleaned, att)
	if err != nil {
		return Sheet{}, reconcile.Result{}, err
	}

	allocs, err := allocate.All(att, res.Costs, period.Days)
	if err != nil {
		return Sheet{}, res, err
	}

	s, err := Build(period, att, res.Costs.Projects(), allocs)
	if err != nil {
		return Sheet{}, res, err
	}
	return s, res, nil
}

// checkPeriod rejects attendance longer than the period. Shorter sequences
// are partial data and allowed. Missing records are left to the reconciler.
func checkPeriod(period Period, att Attendance, persons []string) error {
	for _, person := range persons {
		rec, err := att.Require(person)
		if err != nil {
			continue
		}
		if len(rec.Days) > period.Days {
			return &PeriodMismatchError{Person: person, Days: len(rec.Days), PeriodDays: period.Days, Period: period}
		}
	}
	return nil
}
