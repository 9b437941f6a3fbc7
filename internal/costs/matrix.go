package costs

import "fmt"

// Matrix holds whole hours per person per project. Rows and columns keep the
// order in which persons and projects were first added.
type Matrix struct {
	persons  []string
	projects []string
	cells    map[string]map[string]int
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{cells: make(map[string]map[string]int)}
}

// Add accumulates hours into a cell, registering the person and project.
func (m *Matrix) Add(person, project string, hours int) {
	m.register(person, project)
	m.cells[person][project] += hours
}

// Set overwrites a cell, registering the person and project.
func (m *Matrix) Set(person, project string, hours int) {
	m.register(person, project)
	m.cells[person][project] = hours
}

func (m *Matrix) register(person, project string) {
	if m.cells == nil {
		m.cells = make(map[string]map[string]int)
	}
	if _, ok := m.cells[person]; !ok {
		m.cells[person] = make(map[string]int)
		m.persons = append(m.persons, person)
	}
	if !contains(m.projects, project) {
		m.projects = append(m.projects, project)
	}
}

// Get returns a cell value; unknown cells are zero.
func (m *Matrix) Get(person, project string) int {
	return m.cells[person][project]
}

// Persons returns the row keys in order.
func (m *Matrix) Persons() []string {
	out := make([]string, len(m.persons))
	copy(out, m.persons)
	return out
}

// Projects returns the column keys in order.
func (m *Matrix) Projects() []string {
	out := make([]string, len(m.projects))
	copy(out, m.projects)
	return out
}

// RowTotal sums a person's hours over all projects.
func (m *Matrix) RowTotal(person string) int {
	total := 0
	for _, h := range m.cells[person] {
		total += h
	}
	return total
}

// ColumnTotal sums a project's hours over all persons.
func (m *Matrix) ColumnTotal(project string) int {
	total := 0
	for _, row := range m.cells {
		total += row[project]
	}
	return total
}

// Total sums every cell.
func (m *Matrix) Total() int {
	total := 0
	for _, p := range m.persons {
		total += m.RowTotal(p)
	}
	return total
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix()
	out.persons = m.Persons()
	out.projects = m.Projects()
	for p, row := range m.cells {
		cp := make(map[string]int, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.cells[p] = cp
	}
	return out
}

// Clean drops rows and columns whose cells are all zero.
func (m *Matrix) Clean() *Matrix {
	out := NewMatrix()
	var projects []string
	for _, proj := range m.projects {
		for _, p := range m.persons {
			if m.cells[p][proj] != 0 {
				projects = append(projects, proj)
				break
			}
		}
	}
	for _, p := range m.persons {
		nonZero := false
		for _, proj := range projects {
			if m.cells[p][proj] != 0 {
				nonZero = true
				break
			}
		}
		if !nonZero {
			continue
		}
		out.persons = append(out.persons, p)
		out.cells[p] = make(map[string]int)
		for _, proj := range projects {
			if v := m.cells[p][proj]; v != 0 {
				out.cells[p][proj] = v
			}
		}
	}
	out.projects = projects
	return out
}

// Validate rejects negative cells.
func (m *Matrix) Validate() error {
	for _, p := range m.persons {
		for _, proj := range m.projects {
			if v := m.cells[p][proj]; v < 0 {
				return fmt.Errorf("negative cost %d for %s on %s", v, p, proj)
			}
		}
	}
	return nil
}

// Map renames rows and columns, merging cells whose new keys coincide.
func (m *Matrix) Map(person, project func(string) (string, error)) (*Matrix, error) {
	out := NewMatrix()
	for _, p := range m.persons {
		np, err := person(p)
		if err != nil {
			return nil, err
		}
		for _, proj := range m.projects {
			v, ok := m.cells[p][proj]
			if !ok {
				continue
			}
			nproj, err := project(proj)
			if err != nil {
				return nil, err
			}
			out.Add(np, nproj, v)
		}
	}
	return out, nil
}

// Identity is a Map function that keeps keys unchanged.
func Identity(s string) (string, error) {
	return s, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
