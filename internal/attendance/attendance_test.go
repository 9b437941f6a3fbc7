package attendance

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func days(hours ...int) []Day {
	out := make([]Day, len(hours))
	for i, h := range hours {
		code := Present
		if h == 0 {
			code = "В"
		}
		out[i] = Day{Index: i + 1, Hours: h, Presence: code}
	}
	return out
}

func TestRecordTotalHours(t *testing.T) {
	r := Record{FullName: "Петров Пётр Петрович", Days: days(8, 8, 0, 4)}
	assert.Equal(t, 20, r.TotalHours())
}

func TestRecordValidate(t *testing.T) {
	ok := Record{FullName: "A", Days: days(8, 8)}
	assert.NoError(t, ok.Validate())

	gap := Record{FullName: "A", Days: []Day{{Index: 1}, {Index: 3}}}
	assert.Error(t, gap.Validate())

	negative := Record{FullName: "A", Days: []Day{{Index: 1, Hours: -1}}}
	assert.Error(t, negative.Validate())

	assert.Error(t, Record{}.Validate())
}

func TestSetRequire(t *testing.T) {
	s, err := NewSet(Record{FullName: "A", Days: days(8)}, Record{FullName: "B", Days: days(4)})
	require.NoError(t, err)

	r, err := s.Require("B")
	require.NoError(t, err)
	assert.Equal(t, 4, r.TotalHours())

	_, err = s.Require("C")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "C", nf.Person)

	assert.Equal(t, []string{"A", "B"}, s.Names())
	assert.Equal(t, 2, s.Len())
}

func TestSetRejectsDuplicates(t *testing.T) {
	_, err := NewSet(Record{FullName: "A"}, Record{FullName: "A"})
	assert.Error(t, err)
}

func TestParseDayCell(t *testing.T) {
	tests := []struct {
		input   string
		hours   int
		code    string
		wantErr bool
	}{
		{"8", 8, Present, false},
		{"Я 8", 8, "Я", false},
		{"Я/7", 7, "Я", false},
		{"ОТ", 0, "ОТ", false},
		{"", 0, "", false},
		{"0", 0, "", false},
		{"7.5", 0, "", true},
		{"8 8", 0, "", true},
		{"Б ОТ", 0, "", true},
		{"25", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hours, code, err := parseDayCell(tt.input, Present)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hours, hours)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]string{
		{"ФИО", "Таб. №", "Должность", "1", "2", "3", "Итого"},
		{"Иванов Иван Иванович", "0001", "инженер", "8", "ОТ", "Я 4"},
		{},
		{"Петров Пётр Петрович", "0002", "техник", "", "8", "8"},
	}

	set, err := FromRows(rows, DefaultLayout())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	ivanov, ok := set.Lookup("Иванов Иван Иванович")
	require.True(t, ok)
	assert.Equal(t, "0001", ivanov.Number)
	assert.Equal(t, "инженер", ivanov.Specialty)
	assert.Equal(t, 12, ivanov.TotalHours())
	require.Len(t, ivanov.Days, 3)
	assert.Equal(t, Day{Index: 2, Hours: 0, Presence: "ОТ"}, ivanov.Days[1])

	petrov, ok := set.Lookup("Петров Пётр Петрович")
	require.True(t, ok)
	assert.Equal(t, Day{Index: 1, Hours: 0, Presence: ""}, petrov.Days[0])
}

func TestFromRowsMalformedCell(t *testing.T) {
	rows := [][]string{
		{"ФИО", "", "", "1", "2"},
		{"Иванов Иван Иванович", "", "", "8", "x 9 9"},
	}

	_, err := FromRows(rows, DefaultLayout())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Row)
	assert.Contains(t, err.Error(), "E2")
}

func TestFromRowsWithoutDayHeader(t *testing.T) {
	_, err := FromRows([][]string{{"ФИО"}}, DefaultLayout())
	assert.Error(t, err)

	_, err = FromRows(nil, DefaultLayout())
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabel.xlsx")

	f := excelize.NewFile()
	header := []interface{}{"ФИО", "Таб. №", "Должность"}
	for d := 1; d <= 30; d++ {
		header = append(header, fmt.Sprint(d))
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{"Иванов Иван Иванович", "0001", "инженер"}
	for d := 1; d <= 30; d++ {
		row = append(row, "8")
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	set, err := ReadXLSX(path, DefaultLayout())
	require.NoError(t, err)

	r, ok := set.Lookup("Иванов Иван Иванович")
	require.True(t, ok)
	assert.Len(t, r.Days, 30)
	assert.Equal(t, 240, r.TotalHours())
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultLayout())
	assert.Error(t, err)
}
