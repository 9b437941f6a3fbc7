package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthYearFlags(t *testing.T) {
	now := time.Date(2025, time.July, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		month     string
		year      string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{"defaults", "", "", 2025, time.July, false},
		{"month only", "6", "", 2025, time.June, false},
		{"month and year", "2", "2024", 2024, time.February, false},
		{"month zero", "0", "", 0, 0, true},
		{"month thirteen", "13", "", 0, 0, true},
		{"month not a number", "june", "", 0, 0, true},
		{"negative year", "", "-1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, err := parseMonthYearFlags(tt.month, tt.year, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}

func TestParsePeriodFlags(t *testing.T) {
	p, err := parsePeriodFlags("2", "2024", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 29, p.Days)
	assert.Equal(t, "February 2024", p.String())
}
