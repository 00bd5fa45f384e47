package dateutils_test

import (
	"testing"
	"time"

	"finsight/pnl-csv/internal/dateutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ISO", "2024-03-15", "2024-03-15"},
		{"European", "15.03.2024", "2024-03-15"},
		{"slash DD/MM", "15/03/2024", "2024-03-15"},
		{"full timestamp", "2024-03-15 10:30:00", "2024-03-15"},
		{"extra whitespace", "  2024-03-15  ", "2024-03-15"},
		{"month name", "March 15, 2024", "2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dateutils.ParseDateString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(dateutils.DateLayoutISO))
		})
	}
}

func TestParseDateString_Invalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "2024-13-45"} {
		_, err := dateutils.ParseDateString(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestYearMonth(t *testing.T) {
	year, month := dateutils.YearMonth(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, month)

	year, month = dateutils.YearMonth(time.Time{})
	assert.Zero(t, year)
	assert.Zero(t, month)
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2024-03-15", dateutils.ToISODate(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", dateutils.ToISODate(time.Time{}))
}

func TestMonthsOfQuarter(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, dateutils.MonthsOfQuarter(1))
	assert.Equal(t, []int{4, 5, 6}, dateutils.MonthsOfQuarter(2))
	assert.Equal(t, []int{7, 8, 9}, dateutils.MonthsOfQuarter(3))
	assert.Equal(t, []int{10, 11, 12}, dateutils.MonthsOfQuarter(4))
	assert.Nil(t, dateutils.MonthsOfQuarter(0))
	assert.Nil(t, dateutils.MonthsOfQuarter(5))
}

// Every calendar month belongs to exactly one quarter.
func TestMonthsOfQuarter_PartitionsYear(t *testing.T) {
	seen := make(map[int]int)
	for q := 1; q <= 4; q++ {
		for _, m := range dateutils.MonthsOfQuarter(q) {
			seen[m]++
		}
	}
	require.Len(t, seen, 12)
	for m := 1; m <= 12; m++ {
		assert.Equal(t, 1, seen[m], "month %d", m)
	}
}
