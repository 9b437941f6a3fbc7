package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valeriy-chepelev/costsheet/internal/costs"
	"github.com/xuri/excelize/v2"
)

const (
	ivanov = "Иванов Иван Иванович"
	petrov = "Петров Пётр Петрович"
)

// fixedNow is a run time in the month after the June 2025 fixtures.
func fixedNow() time.Time {
	return time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
}

type employee struct {
	name, number, specialty string
}

// writeAttendance saves a June 2025 attendance workbook: weekdays "Я 8",
// weekends "В". June 2025 has 21 working days.
func writeAttendance(t *testing.T, path string, staff ...employee) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := []interface{}{"ФИО", "Таб. №", "Должность"}
	for d := 1; d <= 30; d++ {
		header = append(header, d)
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i, e := range staff {
		row := []interface{}{e.name, e.number, e.specialty}
		for d := 1; d <= 30; d++ {
			wd := time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC).Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				row = append(row, "В")
			} else {
				row = append(row, "Я 8")
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

// writeCosts saves a cost matrix workbook.
func writeCosts(t *testing.T, path string, cells map[string]map[string]int, persons, projects []string) {
	t.Helper()
	m := costs.NewMatrix()
	for _, person := range persons {
		for _, project := range projects {
			m.Set(person, project, cells[person][project])
		}
	}
	require.NoError(t, costs.WriteXLSX(m, path))
}

// writeConfig saves a config that keeps log, journal and output inside dir.
func writeConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[files]\nlog = '%s'\njournal = '%s'\noutput = '%s'\n\n%s",
		filepath.Join(dir, "costsheet.log"),
		filepath.Join(dir, "journal.db"),
		filepath.Join(dir, "out"),
		extra,
	)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
