package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateStrict_UsesLocation(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)

	parsed, err := ParseLocalDateStrict("2025-03-14", loc)
	require.NoError(t, err)

	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 14, parsed.Day())
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, loc, parsed.Location())
}

func TestParseLocalDateStrict_TruncatesTimestamp(t *testing.T) {
	parsed, err := ParseLocalDateStrict("2025-03-14T17:30:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseLocalDateStrict_Invalid(t *testing.T) {
	for _, value := range []string{"", "not-a-date", "2025-13-01", "14/03/2025"} {
		_, err := ParseLocalDateStrict(value, time.UTC)
		assert.Error(t, err, "expected error for %q", value)
	}
}

func TestParseLocalDate_FallsBackOnGarbage(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, fallback, ParseLocalDate("garbage", time.UTC, fallback))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), ParseLocalDate("2025-02-01", time.UTC, fallback))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC), 0},
		{"late evening to next morning", time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC), time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC), 1},
		{"one week", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), 7},
		{"past", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestDaysBetween_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	from := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(from, to))
}

func TestEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), EndOfDay(ts))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}

func TestHoursToDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, HoursToDuration(1.5))
	assert.Equal(t, 102*time.Minute, HoursToDuration(1.7))
	assert.Equal(t, time.Duration(0), HoursToDuration(0))
}
