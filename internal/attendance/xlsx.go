package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// Layout describes where the attendance table lives in a workbook.
type Layout struct {
	Sheet        string // empty means the first sheet
	HeaderRow    int    // 1-based row holding the day numbers 1..N
	NameCol      string
	NumberCol    string
	SpecialtyCol string
	FirstDayCol  string
	Present      string // code given to worked days that carry only hours
}

// DefaultLayout returns the layout of the HR export: identity in A-C, days
// from D onward, header on row 1.
func DefaultLayout() Layout {
	return Layout{
		HeaderRow:    1,
		NameCol:      "A",
		NumberCol:    "B",
		SpecialtyCol: "C",
		FirstDayCol:  "D",
		Present:      Present,
	}
}

// ParseError reports a malformed attendance cell.
type ParseError struct {
	Row   int
	Col   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	cell, _ := excelize.CoordinatesToCellName(e.Col, e.Row)
	return fmt.Sprintf("attendance cell %s (%q): %v", cell, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadXLSX imports attendance records from a workbook.
func ReadXLSX(path string, layout Layout) (*Set, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening attendance workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := layout.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("attendance workbook %s has no worksheet", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return FromRows(rows, layout)
}

// FromRows imports attendance records from raw sheet rows.
func FromRows(rows [][]string, layout Layout) (*Set, error) {
	if layout.HeaderRow < 1 || layout.HeaderRow > len(rows) {
		return nil, fmt.Errorf("header row %d outside of sheet (%d rows)", layout.HeaderRow, len(rows))
	}

	nameCol, err := columnIndex(layout.NameCol)
	if err != nil {
		return nil, err
	}
	numberCol, err := optionalColumnIndex(layout.NumberCol)
	if err != nil {
		return nil, err
	}
	specialtyCol, err := optionalColumnIndex(layout.SpecialtyCol)
	if err != nil {
		return nil, err
	}
	firstDay, err := columnIndex(layout.FirstDayCol)
	if err != nil {
		return nil, err
	}

	header := rows[layout.HeaderRow-1]
	days := countDayColumns(header, firstDay)
	if days == 0 {
		return nil, fmt.Errorf("no day numbers found in header row %d", layout.HeaderRow)
	}

	present := layout.Present
	if present == "" {
		present = Present
	}

	set := &Set{}
	for i := layout.HeaderRow; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, nameCol)
		if name == "" {
			continue
		}

		rec := Record{
			FullName:  name,
			Number:    cell(row, numberCol),
			Specialty: cell(row, specialtyCol),
			Days:      make([]Day, 0, days),
		}
		for d := 0; d < days; d++ {
			raw := cell(row, firstDay+d)
			hours, code, err := parseDayCell(raw, present)
			if err != nil {
				return nil, &ParseError{Row: i + 1, Col: firstDay + d + 1, Value: raw, Err: err}
			}
			rec.Days = append(rec.Days, Day{Index: d + 1, Hours: hours, Presence: code})
		}
		if err := set.Add(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return set, nil
}

// countDayColumns counts consecutive header cells reading 1, 2, 3, ...
func countDayColumns(header []string, first int) int {
	n := 0
	for idx := first; idx < len(header); idx++ {
		v, err := strconv.Atoi(strings.TrimSpace(header[idx]))
		if err != nil || v != n+1 {
			break
		}
		n++
	}
	return n
}

// parseDayCell reads cells like "8", "Я 8", "Я/8", "ОТ" or "".
func parseDayCell(s, present string) (int, string, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r) || r == '/'
	})

	hours := -1
	code := ""
	for _, f := range fields {
		if unicode.IsDigit([]rune(f)[0]) {
			if hours >= 0 {
				return 0, "", fmt.Errorf("more than one hours value")
			}
			h, err := strconv.Atoi(f)
			if err != nil {
				return 0, "", fmt.Errorf("hours must be a whole number")
			}
			hours = h
			continue
		}
		if code != "" {
			return 0, "", fmt.Errorf("more than one presence code")
		}
		code = f
	}

	if hours < 0 {
		hours = 0
	}
	if hours > 24 {
		return 0, "", fmt.Errorf("%d hours in a single day", hours)
	}
	if hours > 0 && code == "" {
		code = present
	}
	return hours, code, nil
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", name, err)
	}
	return n - 1, nil
}

func optionalColumnIndex(name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return -1, nil
	}
	return columnIndex(name)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
