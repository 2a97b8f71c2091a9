package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	testCases := []struct {
		expected string
		d        time.Duration
	}{
		{d: 0, expected: "00:00:00"},
		{d: 59 * time.Second, expected: "00:00:59"},
		{d: 61*time.Minute + 5*time.Second, expected: "01:01:05"},
		{d: 26 * time.Hour, expected: "26:00:00"},
		{d: -time.Second, expected: "00:00:00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatElapsed(tc.d))
	}
}

func TestPeriodBounds(t *testing.T) {
	now := time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

	start, end, ok := PeriodBounds(Period7Days, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC), end)

	start, end, ok = PeriodBounds(PeriodYesterday, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 8, 23, 59, 59, 0, time.UTC), end)

	start, _, ok = PeriodBounds(PeriodAllTime, now)
	require.True(t, ok)
	assert.True(t, start.IsZero())

	_, _, ok = PeriodBounds(Period("fortnight"), now)
	assert.False(t, ok)
}

func TestFromStr(t *testing.T) {
	got, err := FromStr("2024-03-09 14:30")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 9, got.Day())

	rel, err := FromStr("2 days ago")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -2), rel, time.Minute)
}
