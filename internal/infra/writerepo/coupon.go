package writerepo

import (
	"context"

	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

// The guard re-checks the cap at redemption time: validation happened before
// the transaction, so another booking may have taken the last use since.
const redeemCouponSQL = `
UPDATE coupons
SET current_uses = current_uses + 1, updated_at = now()
WHERE id = $1
  AND (max_uses IS NULL OR current_uses < max_uses)`

func (r *CouponRepository) Redeem(ctx context.Context, dbtx db.DBTX, couponID uuid.UUID) (bool, error) {
	tag, err := dbtx.Exec(ctx, redeemCouponSQL, couponID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to redeem coupon", err)
	}
	return tag.RowsAffected() > 0, nil
}
