package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input       string
		expected    RangeType
		expectError bool
	}{
		{input: "Today", expected: Daily},
		{input: "Daily", expected: Daily},
		{input: "This Week", expected: Weekly},
		{input: "Weekly", expected: Weekly},
		{input: "This Month", expected: Monthly},
		{input: "Last Month", expected: Monthly},
		{input: "Monthly", expected: Monthly},
		{input: "Custom Range", expected: Custom},
		{input: "custom", expected: Custom},
		{input: "  This Week  ", expected: Weekly},
		{input: "Yearly", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rt, err := Normalize(tt.input)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrUnsupportedRangeType)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, rt)
		})
	}
}

func TestNormalize_SynonymsCollapse(t *testing.T) {
	thisMonth, err := Normalize("This Month")
	require.NoError(t, err)

	lastMonth, err := Normalize("Last Month")
	require.NoError(t, err)

	assert.Equal(t, thisMonth, lastMonth)
	assert.Equal(t, Monthly, lastMonth)
}

func TestResolve_Daily(t *testing.T) {
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

	r, err := resolveAt(Daily, nil, nil, now)
	require.NoError(t, err)

	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, r.From)
	assert.Equal(t, today, r.To)
}

func TestResolve_Weekly(t *testing.T) {
	// 2025-06-18 is a Wednesday; the surrounding week is Sun 15 - Sat 21.
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

	r, err := resolveAt(Weekly, nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, time.Sunday, r.From.Weekday())
	assert.Equal(t, r.From.AddDate(0, 0, 6), r.To)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), r.From)

	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	assert.False(t, today.Before(r.From))
	assert.False(t, today.After(r.To))
}

func TestResolve_WeeklyOnSunday(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	r, err := resolveAt(Weekly, nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, now, r.From)
	assert.Equal(t, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), r.To)
}

func TestResolve_Monthly(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		lastDay int
	}{
		{name: "31 day month", now: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), lastDay: 31},
		{name: "30 day month", now: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), lastDay: 30},
		{name: "february", now: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), lastDay: 28},
		{name: "leap february", now: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), lastDay: 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolveAt(Monthly, nil, nil, tt.now)
			require.NoError(t, err)

			assert.Equal(t, 1, r.From.Day())
			assert.Equal(t, tt.now.Month(), r.From.Month())
			assert.Equal(t, tt.lastDay, r.To.Day())
			assert.Equal(t, tt.now.Month(), r.To.Month())
		})
	}
}

func TestResolve_Custom(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	r, err := Resolve(Custom, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, start, r.From)
	assert.Equal(t, end, r.To)
}

func TestResolve_CustomMissingBounds(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
	}{
		{name: "both missing", start: nil, end: nil},
		{name: "end missing", start: &start, end: nil},
		{name: "start missing", start: nil, end: &start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(Custom, tt.start, tt.end)
			assert.ErrorIs(t, err, ErrMissingCustomRange)
		})
	}
}

func TestResolve_CustomInvertedPassesThrough(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	r, err := Resolve(Custom, &start, &end)
	require.NoError(t, err)

	// No ordering correction is applied.
	assert.True(t, r.From.After(r.To))
}

func TestResolve_UnknownRangeType(t *testing.T) {
	_, err := Resolve(RangeType("yearly"), nil, nil)
	assert.ErrorIs(t, err, ErrUnsupportedRangeType)
}

func TestBounds(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	gotFrom, gotTo := Bounds(DateRangeFilter{Range: DateRange{From: from, To: to}})
	assert.Equal(t, from, gotFrom)
	assert.Equal(t, to, gotTo)
}

func TestBounds_NoFilterFallback(t *testing.T) {
	from, to := Bounds(NoFilter{})

	assert.Equal(t, 1900, from.Year())
	assert.WithinDuration(t, time.Now(), to, time.Minute)
}
