package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyInZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC is still the previous evening in New York.
	utc := time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-31", DateKeyInZone(utc, ny))
	assert.Equal(t, "2025-01-01", DateKeyInZone(utc, time.UTC))
}

func TestDayIndexAcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST begins 2025-03-09 in New York; the 8th to the 10th spans only 47
	// real hours but is still two calendar days.
	anchor := time.Date(2025, 3, 8, 0, 0, 0, 0, ny)
	target := time.Date(2025, 3, 10, 0, 0, 0, 0, ny)
	assert.Equal(t, 2, DayIndex(anchor, target, ny))
}

func TestDayIndexSigned(t *testing.T) {
	anchor := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DayIndex(anchor, anchor.Add(5*time.Hour), time.UTC))
	assert.Equal(t, 3, DayIndex(anchor, anchor.AddDate(0, 0, 3), time.UTC))
	assert.Equal(t, -1, DayIndex(anchor, anchor.AddDate(0, 0, -1), time.UTC))
}

func TestLocalMidnight(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2025, 7, 4, 15, 30, 45, 0, ny)

	day0 := LocalMidnight(now, ny, 0)
	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, ny), day0)

	day3 := LocalMidnight(now, ny, 3)
	assert.Equal(t, time.Date(2025, 7, 7, 0, 0, 0, 0, ny), day3)
}

func TestFormatPreferredTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"09:30", "9:30 AM"},
		{"00:15", "12:15 AM"},
		{"12:00", "12:00 PM"},
		{"18:05", "6:05 PM"},
		{"23:59", "11:59 PM"},
		{"25:99", "11:59 PM"}, // clamped
		{"-1:30", "12:30 AM"}, // clamped
		{"noon", "noon"},
		{"10", "10"},
		{"aa:bb", "aa:bb"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPreferredTime(tt.raw), "raw=%q", tt.raw)
	}
}

func TestSlotMinutes(t *testing.T) {
	assert.Equal(t, 0, SlotMinutes("12:00 AM"))
	assert.Equal(t, 600, SlotMinutes("10:00 AM"))
	assert.Equal(t, 1080, SlotMinutes("6:00 PM"))
	assert.True(t, SlotMinutes("10:00 AM") < SlotMinutes("6:00 PM"))

	// Unparseable labels sort after every valid one.
	assert.Equal(t, 24*60, SlotMinutes("whenever"))
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("UTC"))
	assert.Equal(t, time.Local, LoadLocation(""))
	assert.Equal(t, time.Local, LoadLocation("Mars/Olympus"))
}
