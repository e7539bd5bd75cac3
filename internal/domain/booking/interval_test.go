package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

func TestParseClock(t *testing.T) {
	m, err := booking.ParseClock("09:15")
	require.NoError(t, err)
	assert.Equal(t, 555, m)

	m, err = booking.ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, 1440, m)

	for _, bad := range []string{"", "9:15", "09-15", "25:00", "24:30", "09:60", "ab:cd"} {
		_, err := booking.ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", booking.FormatClock(540))
	assert.Equal(t, "17:45", booking.FormatClock(1065))
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// 09:00-10:00 vs 10:00-11:00 touch but do not overlap.
	assert.False(t, booking.Overlaps(540, 600, 600, 660))
	assert.False(t, booking.Overlaps(600, 660, 540, 600))

	assert.True(t, booking.Overlaps(540, 600, 570, 630))
	assert.True(t, booking.Overlaps(540, 660, 570, 600))
	assert.True(t, booking.Overlaps(540, 600, 540, 600))
}

func TestOverlapsClock(t *testing.T) {
	assert.True(t, booking.OverlapsClock("09:00", "10:00", "09:30", "10:30"))
	assert.False(t, booking.OverlapsClock("09:00", "10:00", "10:00", "10:30"))
	assert.True(t, booking.OverlapsClock("09:00", "10:00", "bad", "10:30"))
}

func TestAt(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	date, err := booking.ParseDate("2024-12-05", loc)
	require.NoError(t, err)

	got := booking.At(date, 9*60+30)
	assert.Equal(t, time.Date(2024, 12, 5, 9, 30, 0, 0, loc), got)
}
