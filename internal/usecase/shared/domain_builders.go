package shared

import (
	"context"
	"errors"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/coupon"
	"cabinstay/internal/domain/extra"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/pkg/errs"

	"github.com/google/uuid"
)

// Builders from write-side snapshots into domain entities, shared by the
// command and quote paths.

func UnitFromSnapshot(snap *UnitSnapshot) (*unit.Unit, error) {
	return unit.NewUnit(snap.ID, snap.Code, snap.Name, snap.WeekdayRateCents, snap.WeekendRateCents, snap.IsActive)
}

func CouponFromSnapshot(snap *CouponSnapshot) (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(snap.DiscountType, snap.DiscountValue)
	if err != nil {
		return nil, err
	}
	scope, err := coupon.NewScope(snap.AppliesTo)
	if err != nil {
		return nil, err
	}
	return coupon.NewCoupon(
		snap.ID,
		snap.Code,
		discount,
		scope,
		snap.ExtraIDs,
		snap.ValidFrom,
		snap.ValidUntil,
		snap.MaxUses,
		snap.CurrentUses,
		snap.MaxUsesPerGuest,
		snap.MinBookingCents,
		snap.IsActive,
	)
}

// ResolveExtraLines prices caller selections against the extras catalog. The
// catalog price at resolution time is authoritative.
func ResolveExtraLines(ctx context.Context, reads CommandReads, selections []extra.Selection) ([]booking.ExtraLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(selections))
	for i, sel := range selections {
		ids[i] = sel.ExtraID
	}

	snaps, err := reads.ExtrasByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrExtraNotFound)
	}

	extras := make([]*extra.Extra, 0, len(snaps))
	for _, snap := range snaps {
		e, err := extra.NewExtra(snap.ID, snap.Name, snap.PriceCents, snap.IsActive)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		extras = append(extras, e)
	}
	catalog := extra.NewCatalog(extras)

	lines := make([]booking.ExtraLine, len(selections))
	for i, sel := range selections {
		e, err := catalog.Resolve(sel)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrExtraNotFound)
		}
		lines[i] = booking.ExtraLine{
			ExtraID:   e.ID(),
			Name:      e.Name(),
			UnitPrice: booking.NewMoney(e.PriceCents()),
			Quantity:  sel.Quantity,
		}
	}
	return lines, nil
}

// MarkAssembleError classifies an assembler failure into the usecase error
// taxonomy: coupon rejections keep their distinct sub-reason, everything else
// is a domain validation failure.
func MarkAssembleError(err error) error {
	switch {
	case errors.Is(err, coupon.ErrCouponInactive),
		errors.Is(err, coupon.ErrCouponExpired),
		errors.Is(err, coupon.ErrCouponExhausted),
		errors.Is(err, coupon.ErrBelowMinimum),
		errors.Is(err, coupon.ErrScopeMismatch):
		return errs.Mark(err, errs.ErrCouponRejected)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
