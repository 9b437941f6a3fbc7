package costs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when writing a matrix.
const DefaultSheet = "Costs"

// ReadXLSX imports a cost matrix: row 1 holds project names from column B,
// column A holds person names, cells hold whole hours.
func ReadXLSX(path, sheet string) (*Matrix, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening cost workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return FromRows(rows)
}

// FromRows imports a cost matrix from raw sheet rows.
func FromRows(rows [][]string) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cost sheet is empty")
	}

	header := rows[0]
	projects := make([]string, len(header))
	for i := 1; i < len(header); i++ {
		projects[i] = strings.TrimSpace(header[i])
	}

	m := NewMatrix()
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		if len(row) == 0 {
			continue
		}
		person := strings.TrimSpace(row[0])
		if person == "" {
			continue
		}
		for c := 1; c < len(row) && c < len(projects); c++ {
			if projects[c] == "" {
				continue
			}
			raw := strings.TrimSpace(row[c])
			if raw == "" {
				m.Add(person, projects[c], 0)
				continue
			}
			hours, err := strconv.Atoi(raw)
			if err != nil || hours < 0 {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				return nil, fmt.Errorf("cost cell %s: %q is not a whole number of hours", cell, raw)
			}
			m.Add(person, projects[c], hours)
		}
	}
	return m, nil
}

// WriteXLSX saves the matrix in the layout ReadXLSX expects.
func WriteXLSX(m *Matrix, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheet); err != nil {
		return err
	}

	header := []interface{}{""}
	for _, p := range m.Projects() {
		header = append(header, p)
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return err
	}

	for i, person := range m.Persons() {
		row := []interface{}{person}
		for _, p := range m.Projects() {
			row = append(row, m.Get(person, p))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving cost workbook: %w", err)
	}
	return nil
}
