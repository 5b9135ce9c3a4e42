package booking

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

var ErrInvalidStayRange = errors.New("check-out must be after check-in")

// StayRange is a half-open interval [checkIn, checkOut) of calendar dates.
// Times are normalized to midnight UTC so that a range compares purely on the
// calendar day.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := toDay(checkIn)
	out := toDay(checkOut)
	if !out.After(in) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s StayRange) CheckIn() time.Time  { return s.checkIn }
func (s StayRange) CheckOut() time.Time { return s.checkOut }

// Nights is the exact number of whole days between check-in and check-out,
// one per night actually sold.
func (s StayRange) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

// EachNight yields every date in [checkIn, checkOut). The sequence is lazy
// and restartable.
func (s StayRange) EachNight() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := s.checkIn; d.Before(s.checkOut); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Overlaps uses open comparison at the boundary: a stay checking out on the
// day another checks in does not conflict (same-day turnover).
func (s StayRange) Overlaps(other StayRange) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// Contains reports whether a single calendar date falls inside the stay.
func (s StayRange) Contains(day time.Time) bool {
	d := toDay(day)
	return !d.Before(s.checkIn) && d.Before(s.checkOut)
}

func (s StayRange) String() string {
	return fmt.Sprintf("[%s,%s)", s.checkIn.Format(time.DateOnly), s.checkOut.Format(time.DateOnly))
}

type NightKind int

const (
	NightWeekday NightKind = iota
	NightWeekend
)

// KindOfNight classifies a night for pricing. The pricing weekend is fixed to
// Friday and Saturday nights; it is intentionally not driven by any
// configurable weekend table, which historically governed reporting only.
func KindOfNight(date time.Time) NightKind {
	switch date.Weekday() {
	case time.Friday, time.Saturday:
		return NightWeekend
	default:
		return NightWeekday
	}
}
