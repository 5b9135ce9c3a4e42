//go:build unit

package booking_test

import (
	"testing"
	"time"

	"cabinstay/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func TestNewStayRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		stay, err := booking.NewStayRange(day(2026, 3, 2), day(2026, 3, 6))
		require.NoError(t, err)
		assert.Equal(t, 4, stay.Nights())
	})

	t.Run("zero-length range is rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(day(2026, 3, 2), day(2026, 3, 2))
		require.ErrorIs(t, err, booking.ErrInvalidStayRange)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(day(2026, 3, 6), day(2026, 3, 2))
		require.ErrorIs(t, err, booking.ErrInvalidStayRange)
	})

	t.Run("time-of-day is normalized away", func(t *testing.T) {
		in := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
		out := time.Date(2026, 3, 3, 0, 1, 0, 0, time.UTC)
		stay, err := booking.NewStayRange(in, out)
		require.NoError(t, err)
		assert.Equal(t, 1, stay.Nights())
		assert.Equal(t, day(2026, 3, 2), stay.CheckIn())
	})
}

func TestStayRangeOverlaps(t *testing.T) {
	base := func(t *testing.T) booking.StayRange {
		return mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"identical range", day(2026, 3, 2), day(2026, 3, 6), true},
		{"contained range", day(2026, 3, 3), day(2026, 3, 5), true},
		{"overlapping tail", day(2026, 3, 5), day(2026, 3, 9), true},
		{"overlapping head", day(2026, 2, 27), day(2026, 3, 3), true},
		{"surrounding range", day(2026, 3, 1), day(2026, 3, 10), true},
		{"checkout on their checkin is turnover, not conflict", day(2026, 3, 6), day(2026, 3, 9), false},
		{"checkin on their checkout is turnover, not conflict", day(2026, 2, 27), day(2026, 3, 2), false},
		{"disjoint after", day(2026, 3, 10), day(2026, 3, 12), false},
		{"disjoint before", day(2026, 2, 20), day(2026, 2, 25), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustStay(t, tt.checkIn, tt.checkOut)
			assert.Equal(t, tt.want, base(t).Overlaps(other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, other.Overlaps(base(t)))
		})
	}
}

func TestStayRangeContains(t *testing.T) {
	stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))

	assert.True(t, stay.Contains(day(2026, 3, 2)))
	assert.True(t, stay.Contains(day(2026, 3, 5)))
	assert.False(t, stay.Contains(day(2026, 3, 6)), "check-out day is not occupied")
	assert.False(t, stay.Contains(day(2026, 3, 1)))
}

func TestStayRangeEachNight(t *testing.T) {
	stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 5))

	var nights []time.Time
	for night := range stay.EachNight() {
		nights = append(nights, night)
	}

	require.Len(t, nights, 3)
	assert.Equal(t, day(2026, 3, 2), nights[0])
	assert.Equal(t, day(2026, 3, 4), nights[2])
}

func TestKindOfNight(t *testing.T) {
	tests := []struct {
		date time.Time
		want booking.NightKind
	}{
		{day(2026, 3, 2), booking.NightWeekday}, // Monday
		{day(2026, 3, 5), booking.NightWeekday}, // Thursday
		{day(2026, 3, 6), booking.NightWeekend}, // Friday
		{day(2026, 3, 7), booking.NightWeekend}, // Saturday
		{day(2026, 3, 8), booking.NightWeekday}, // Sunday night is priced as a weekday
	}
	for _, tt := range tests {
		t.Run(tt.date.Weekday().String(), func(t *testing.T) {
			assert.Equal(t, tt.want, booking.KindOfNight(tt.date))
		})
	}
}
