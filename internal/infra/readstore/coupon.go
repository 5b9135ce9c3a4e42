package readstore

import (
	"context"

	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

const findCouponByCodeSQL = `
SELECT id, code, discount_type, discount_value, applies_to, extra_ids,
       valid_from, valid_until, max_uses, current_uses, max_uses_per_guest,
       min_booking_cents, is_active
FROM coupons
WHERE upper(code) = upper($1)`

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	var (
		snap            shared.CouponSnapshot
		validFrom       pgtype.Timestamptz
		validUntil      pgtype.Timestamptz
		maxUses         pgtype.Int4
		maxUsesPerGuest pgtype.Int4
		minBookingCents pgtype.Int8
		extraIDs        []uuid.UUID
	)

	err := s.db.QueryRow(ctx, findCouponByCodeSQL, code).Scan(
		&snap.ID, &snap.Code, &snap.DiscountType, &snap.DiscountValue, &snap.AppliesTo, &extraIDs,
		&validFrom, &validUntil, &maxUses, &snap.CurrentUses, &maxUsesPerGuest,
		&minBookingCents, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	snap.ExtraIDs = extraIDs
	snap.ValidFrom = pgconv.TimePtrFromPgtype(validFrom)
	snap.ValidUntil = pgconv.TimePtrFromPgtype(validUntil)
	snap.MaxUses = pgconv.Int32PtrFromPgtype(maxUses)
	snap.MaxUsesPerGuest = pgconv.Int32PtrFromPgtype(maxUsesPerGuest)
	snap.MinBookingCents = pgconv.Int64PtrFromPgtype(minBookingCents)

	return &snap, nil
}

// Cancelled bookings give the use back to the guest.
const couponUsesByGuestSQL = `
SELECT COUNT(*)
FROM reservations
WHERE coupon_code IS NOT NULL AND upper(coupon_code) = upper($1)
  AND lower(guest_email) = lower($2)
  AND status <> 'cancelled'`

func (s *CouponReadStore) UsesByGuest(ctx context.Context, code, guestEmail string) (int32, error) {
	var count int32
	if err := s.db.QueryRow(ctx, couponUsesByGuestSQL, code, guestEmail).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count coupon uses by guest", err)
	}
	return count, nil
}
