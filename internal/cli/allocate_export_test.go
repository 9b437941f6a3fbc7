package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriy-chepelev/costsheet/internal/allocate"
	"github.com/valeriy-chepelev/costsheet/internal/attendance"
	"github.com/valeriy-chepelev/costsheet/internal/sheet"
)

func latinProject(t *testing.T) (sheet.Project, sheet.Period) {
	t.Helper()
	var days []attendance.Day
	for d := 1; d <= 30; d++ {
		days = append(days, attendance.Day{Index: d, Hours: 8, Presence: "W"})
	}
	rec := attendance.Record{FullName: "John Smith", Number: "0042", Specialty: "engineer", Days: days}
	ledgers, _, err := allocate.Person(rec, []allocate.ProjectCost{{Project: "Test Project", Hours: 130}}, 30)
	require.NoError(t, err)

	p := sheet.Project{
		Name: "Test Project",
		Participants: []sheet.Participant{
			{Name: rec.FullName, Number: rec.Number, Specialty: rec.Specialty, Ledger: ledgers[0]},
		},
	}
	return p, sheet.NewPeriod(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
}

func TestRenderProjectPDF_CreatesFile(t *testing.T) {
	p, period := latinProject(t)
	outPath := filepath.Join(t.TempDir(), "test.pdf")

	require.NoError(t, renderProjectPDF(p, period, "", outPath))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestRenderProjectPDF_MissingFont(t *testing.T) {
	p, period := latinProject(t)
	outPath := filepath.Join(t.TempDir(), "test.pdf")

	err := renderProjectPDF(p, period, filepath.Join(t.TempDir(), "absent.ttf"), outPath)
	require.Error(t, err)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPDFRowsCoverGrid(t *testing.T) {
	p, _ := latinProject(t)
	pt := p.Participants[0]

	assert.Len(t, pdfHeaderCols(), 1+allocate.MaxDays+pdfTotalCols)
	assert.Len(t, pdfHoursCols(pt), 1+allocate.MaxDays+pdfTotalCols)
	assert.Len(t, pdfPresenceCols(pt), 1+allocate.MaxDays+1)
}
