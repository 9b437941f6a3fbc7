// Package reconcile scales tracker-derived project costs down to the hours a
// person actually worked according to attendance.
package reconcile

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
)

// Attendance looks up a person's attendance record by exact full name.
type Attendance interface {
	Require(name string) (attendance.Record, error)
}

// Row is the reconciliation outcome for one person.
type Row struct {
	Person    string
	Summary   int             // raw hours over all projects
	Total     int             // attendance hours
	Factor    decimal.Decimal // Total / Summary
	Corrected int             // hours after correction
}

// Scaled reports whether the person's costs were reduced.
func (r Row) Scaled() bool {
	return r.Total < r.Summary
}

// Correction describes a person whose tracker costs exceeded attendance.
type Correction struct {
	Person    string
	Summary   int
	Total     int
	Corrected int
	Factor    decimal.Decimal
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: summary=%d > total=%d, corrected to %d (factor %s)",
		c.Person, c.Summary, c.Total, c.Corrected, c.Factor.StringFixed(4))
}

// Result holds the corrected matrix and per-person details.
type Result struct {
	Costs       *costs.Matrix
	Rows        []Row
	Corrections []Correction
}

// Reconciler applies attendance totals to a cost matrix. Logger may be nil.
type Reconciler struct {
	Logger *log.Logger
}

// Reconcile returns a corrected copy of m. Every person in m must have an
// attendance record; a missing one is returned as *attendance.NotFoundError.
// For a person whose summary exceeds total every cell becomes
// floor(factor * raw), computed as floor(total * raw / summary).
func (r Reconciler) Reconcile(m *costs.Matrix, att Attendance) (Result, error) {
	out := m.Clone()
	res := Result{Costs: out}

	for _, person := range m.Persons() {
		rec, err := att.Require(person)
		if err != nil {
			return Result{}, fmt.Errorf("reconciling costs: %w", err)
		}

		summary := m.RowTotal(person)
		total := rec.TotalHours()
		if summary <= 0 {
			continue
		}

		factor := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(summary)))
		row := Row{Person: person, Summary: summary, Total: total, Factor: factor, Corrected: summary}

		if row.Scaled() {
			corrected := 0
			for _, project := range m.Projects() {
				raw := m.Get(person, project)
				if raw == 0 {
					continue
				}
				v := scale(total, raw, summary)
				out.Set(person, project, v)
				corrected += v
			}
			row.Corrected = corrected

			c := Correction{Person: person, Summary: summary, Total: total, Corrected: corrected, Factor: factor}
			res.Corrections = append(res.Corrections, c)
			if r.Logger != nil {
				r.Logger.Warn("tracker cost exceeds attendance total: " + c.String())
			}
		} else if r.Logger != nil {
			r.Logger.Debug("cost within attendance total", "person", person, "summary", summary, "total", total)
		}

		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// scale returns floor(total * raw / summary) without overflowing int.
func scale(total, raw, summary int) int {
	q, _ := decimal.NewFromInt(int64(total)).
		Mul(decimal.NewFromInt(int64(raw))).
		QuoRem(decimal.NewFromInt(int64(summary)), 0)
	return int(q.IntPart())
}
