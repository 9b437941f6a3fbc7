package reconcile

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
)

const ivanov = "Иванов Иван Иванович"

// record builds an attendance record whose days sum to total (8h days plus a
// remainder day).
func record(name string, total int) attendance.Record {
	r := attendance.Record{FullName: name}
	idx := 1
	for total > 0 {
		h := 8
		if total < h {
			h = total
		}
		r.Days = append(r.Days, attendance.Day{Index: idx, Hours: h, Presence: attendance.Present})
		total -= h
		idx++
	}
	return r
}

func set(t *testing.T, records ...attendance.Record) *attendance.Set {
	t.Helper()
	s, err := attendance.NewSet(records...)
	require.NoError(t, err)
	return s
}

func matrix(person string, cells map[string]int, order ...string) *costs.Matrix {
	m := costs.NewMatrix()
	for _, p := range order {
		m.Set(person, p, cells[p])
	}
	return m
}

func TestReconcileNoCorrection(t *testing.T) {
	att := set(t, record(ivanov, 160))
	m := matrix(ivanov, map[string]int{"ProjA": 80, "ProjB": 80}, "ProjA", "ProjB")

	res, err := Reconciler{}.Reconcile(m, att)
	require.NoError(t, err)

	assert.Equal(t, 80, res.Costs.Get(ivanov, "ProjA"))
	assert.Equal(t, 80, res.Costs.Get(ivanov, "ProjB"))
	assert.Empty(t, res.Corrections)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "1", res.Rows[0].Factor.String())
	assert.False(t, res.Rows[0].Scaled())
}

func TestReconcileCorrection(t *testing.T) {
	att := set(t, record(ivanov, 150))
	m := matrix(ivanov, map[string]int{"ProjA": 80, "ProjB": 80}, "ProjA", "ProjB")

	buf := new(bytes.Buffer)
	res, err := Reconciler{Logger: log.New(buf)}.Reconcile(m, att)
	require.NoError(t, err)

	assert.Equal(t, 75, res.Costs.Get(ivanov, "ProjA"))
	assert.Equal(t, 75, res.Costs.Get(ivanov, "ProjB"))
	require.Len(t, res.Corrections, 1)

	c := res.Corrections[0]
	assert.Equal(t, 160, c.Summary)
	assert.Equal(t, 150, c.Total)
	assert.Equal(t, 150, c.Corrected)
	assert.Equal(t, "0.9375", c.Factor.String())
	assert.Contains(t, c.String(), "summary=160 > total=150")

	assert.Contains(t, buf.String(), ivanov+": summary=160 > total=150, corrected to 150 (factor 0.9375)")
	assert.True(t, res.Rows[0].Scaled())

	// the input matrix is not modified
	assert.Equal(t, 80, m.Get(ivanov, "ProjA"))
}

func TestReconcileFloorsWithoutBinaryError(t *testing.T) {
	// 7/30 is not representable exactly; floor(7/30*30) must still be 7.
	att := set(t, record(ivanov, 7))
	m := matrix(ivanov, map[string]int{"ProjA": 30}, "ProjA")

	res, err := Reconciler{}.Reconcile(m, att)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Costs.Get(ivanov, "ProjA"))
}

func TestReconcileLargeTotalsStillScale(t *testing.T) {
	// total/summary rounds to 1 at 16 significant digits
	const summary = 100_000_000_000_000_000
	att := set(t, attendance.Record{FullName: ivanov, Days: []attendance.Day{
		{Index: 1, Hours: summary - 1, Presence: attendance.Present},
	}})
	m := matrix(ivanov, map[string]int{"ProjA": summary}, "ProjA")

	res, err := Reconciler{}.Reconcile(m, att)
	require.NoError(t, err)

	require.Len(t, res.Corrections, 1)
	assert.Equal(t, summary-1, res.Corrections[0].Corrected)
	assert.Equal(t, summary-1, res.Costs.Get(ivanov, "ProjA"))
	assert.True(t, res.Rows[0].Scaled())
}

func TestReconcileMissingAttendance(t *testing.T) {
	att := set(t, record("Петров Пётр Петрович", 160))
	m := matrix(ivanov, map[string]int{"ProjA": 8}, "ProjA")

	_, err := Reconciler{}.Reconcile(m, att)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrNotFound))
	assert.Contains(t, err.Error(), ivanov)
}

func TestReconcileConservation(t *testing.T) {
	tests := []struct {
		total int
		cells []int
	}{
		{160, []int{80, 80}},
		{150, []int{80, 80}},
		{100, []int{33, 33, 34, 50}},
		{7, []int{3, 5, 11}},
		{0, []int{4, 4}},
		{168, []int{1, 1, 1, 200}},
		{40, []int{10, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total, tt.cells), func(t *testing.T) {
			m := costs.NewMatrix()
			raw := 0
			for i, v := range tt.cells {
				m.Set(ivanov, fmt.Sprintf("P%d", i), v)
				raw += v
			}
			att := set(t, record(ivanov, tt.total))
			if tt.total == 0 {
				att = set(t, attendance.Record{FullName: ivanov, Days: []attendance.Day{{Index: 1, Presence: "Б"}}})
			}

			res, err := Reconciler{}.Reconcile(m, att)
			require.NoError(t, err)

			got := res.Costs.RowTotal(ivanov)
			if raw <= tt.total {
				for i, v := range tt.cells {
					assert.Equal(t, v, res.Costs.Get(ivanov, fmt.Sprintf("P%d", i)))
				}
				assert.Empty(t, res.Corrections)
				return
			}
			assert.LessOrEqual(t, got, tt.total)
			assert.Less(t, tt.total-got, len(tt.cells))
			require.Len(t, res.Corrections, 1)
			assert.Equal(t, got, res.Corrections[0].Corrected)
		})
	}
}

func TestReconcileIsPure(t *testing.T) {
	att := set(t, record(ivanov, 100), record("Петров Пётр Петрович", 160))
	m := costs.NewMatrix()
	m.Set(ivanov, "ProjA", 70)
	m.Set(ivanov, "ProjB", 45)
	m.Set("Петров Пётр Петрович", "ProjB", 12)

	first, err := Reconciler{}.Reconcile(m, att)
	require.NoError(t, err)
	second, err := Reconciler{}.Reconcile(m, att)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Corrections, second.Corrections)
	for _, p := range m.Persons() {
		for _, proj := range m.Projects() {
			assert.Equal(t, first.Costs.Get(p, proj), second.Costs.Get(p, proj))
		}
	}
	assert.Equal(t, m.Persons(), first.Costs.Persons())
}
