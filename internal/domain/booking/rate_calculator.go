package booking

import (
	"cabinstay/internal/domain/unit"
)

// NightBreakdown reports how many sold nights were priced at each rate.
type NightBreakdown struct {
	WeekdayNights int
	WeekendNights int
}

type RateCalculator interface {
	RoomSubtotal(u *unit.Unit, stay StayRange) (Money, NightBreakdown)
}

// NightlyRateCalculator prices each night at the unit's weekday or weekend
// rate. Weekend nights are Friday and Saturday.
type NightlyRateCalculator struct{}

func NewNightlyRateCalculator() *NightlyRateCalculator {
	return &NightlyRateCalculator{}
}

func (c *NightlyRateCalculator) RoomSubtotal(u *unit.Unit, stay StayRange) (Money, NightBreakdown) {
	var breakdown NightBreakdown
	for night := range stay.EachNight() {
		if KindOfNight(night) == NightWeekend {
			breakdown.WeekendNights++
		} else {
			breakdown.WeekdayNights++
		}
	}

	subtotal := NewMoney(u.WeekdayRateCents()).MulInt(int64(breakdown.WeekdayNights)).
		Add(NewMoney(u.WeekendRateCents()).MulInt(int64(breakdown.WeekendNights)))
	return subtotal, breakdown
}

// PackageRoomSubtotal derives the room subtotal for a package-priced booking.
// The package price is authoritative: extras are carved out of it rather than
// added on top, floored at zero.
func PackageRoomSubtotal(packagePrice, extrasTotal Money) Money {
	return packagePrice.SubFloor(extrasTotal)
}
