package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/valeriy-chepelev/costsheet/internal/costs"
)

// FieldSpent is the changelog field holding logged time.
const FieldSpent = "spent"

// Change is one field change of an issue changelog, as exported from the
// tracker.
type Change struct {
	Issue   string    `json:"issue"`
	Project string    `json:"project"`
	By      string    `json:"by"`
	Field   string    `json:"field"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"date"`
}

// ReadChangelog reads a JSON array of changes.
func ReadChangelog(path string) ([]Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}

	var changes []Change
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, fmt.Errorf("parsing changelog %s: %w", path, err)
	}
	return changes, nil
}

// Spent returns the hours added by a "spent" change. Reductions are negative.
func (c Change) Spent() (int, error) {
	to, err := ParseISOHours(c.To)
	if err != nil {
		return 0, fmt.Errorf("issue %s: %w", c.Issue, err)
	}
	from, err := ParseISOHours(c.From)
	if err != nil {
		return 0, fmt.Errorf("issue %s: %w", c.Issue, err)
	}
	return to - from, nil
}

// Aggregate sums spent deltas in [from, to] per author and project. Rows and
// columns are ordered by first appearance in time order. Cells whose net sum
// is not positive are left at zero.
func Aggregate(changes []Change, from, to time.Time) (*costs.Matrix, error) {
	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	m := costs.NewMatrix()
	for _, c := range sorted {
		if c.Field != FieldSpent {
			continue
		}
		if c.At.Before(from) || c.At.After(to) {
			continue
		}
		delta, err := c.Spent()
		if err != nil {
			return nil, err
		}
		m.Add(c.By, c.Project, delta)
	}

	for _, p := range m.Persons() {
		for _, proj := range m.Projects() {
			if m.Get(p, proj) < 0 {
				m.Set(p, proj, 0)
			}
		}
	}
	return m, nil
}
