package booking

import (
	"cabinstay/internal/domain/coupon"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/pkg/clock"

	"github.com/google/uuid"
)

// Assembler combines availability-checked inputs into a priced group of
// booking drafts ready for persistence.
type Assembler struct {
	Clock clock.Clock
	Rates RateCalculator
}

func NewAssembler(clk clock.Clock, rates RateCalculator) *Assembler {
	return &Assembler{Clock: clk, Rates: rates}
}

// AssembleInput is everything the caller supplies for one booking attempt.
// Availability has already been verified per unit by the caller.
type AssembleInput struct {
	Units        []*unit.Unit
	Stay         StayRange
	Guest        Guest
	Extras       []ExtraLine
	Coupon       *coupon.Coupon
	PackageID    *uuid.UUID
	PackagePrice *Money
	Edit         *EditContext
}

// Assemble prices every unit over the shared range, resolves the coupon once
// against the aggregated subtotal, and splits the result into leader and
// member drafts. Coupon rejection aborts the whole assembly; the caller
// decides whether to retry without the code.
func (a *Assembler) Assemble(in AssembleInput) (*Group, error) {
	if len(in.Units) == 0 {
		return nil, ErrNoUnitsSelected
	}
	for _, u := range in.Units {
		if !u.IsActive() {
			return nil, unit.ErrUnitInactive
		}
	}

	extrasTotal := ExtrasTotal(in.Extras)

	priced := make([]PricedUnit, len(in.Units))
	for i, u := range in.Units {
		subtotal, breakdown := a.Rates.RoomSubtotal(u, in.Stay)
		if i == 0 && in.PackagePrice != nil {
			// Package price is authoritative for the leader: extras are
			// carved out of it, not added on top.
			subtotal = PackageRoomSubtotal(*in.PackagePrice, extrasTotal)
		}
		priced[i] = PricedUnit{Unit: u, RoomSubtotal: subtotal, Breakdown: breakdown}
	}

	aggregate := NewMoney(0)
	for _, pu := range priced {
		aggregate = aggregate.Add(pu.RoomSubtotal)
	}

	discount := NewMoney(0)
	var couponCode *string
	if in.Coupon != nil {
		selected := toSelectedExtras(in.Extras)
		if err := in.Coupon.Validate(a.Clock.Now(), aggregate.Cents(), selected); err != nil {
			return nil, err
		}
		discount = NewMoney(in.Coupon.DiscountCents(aggregate.Cents(), selected))
		code := in.Coupon.Code().String()
		couponCode = &code
	}

	return buildGroup(priced, in.Stay, in.Guest, in.Extras, discount, couponCode, in.PackageID, in.Edit, a.Clock.Now())
}

func toSelectedExtras(lines []ExtraLine) []coupon.SelectedExtra {
	selected := make([]coupon.SelectedExtra, len(lines))
	for i, l := range lines {
		selected[i] = coupon.SelectedExtra{
			ExtraID:    l.ExtraID,
			PriceCents: l.UnitPrice.Cents(),
			Quantity:   l.Quantity,
		}
	}
	return selected
}
