//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "cabinstay/internal/domain/coupon"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID              uuid.UUID
	Code            string
	DiscountType    string
	DiscountValue   float64
	AppliesTo       string
	ExtraIDs        []uuid.UUID
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	MaxUses         *int32
	CurrentUses     int32
	MaxUsesPerGuest *int32
	MinBookingCents *int64
	IsActive        bool
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SPRING10",
		DiscountType:  "percentage",
		DiscountValue: 10,
		AppliesTo:     "both",
		IsActive:      true,
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	discount, err := domcoupon.NewDiscount(c.DiscountType, c.DiscountValue)
	if err != nil {
		return nil, err
	}
	scope, err := domcoupon.NewScope(c.AppliesTo)
	if err != nil {
		return nil, err
	}
	return domcoupon.NewCoupon(
		c.ID, c.Code, discount, scope, c.ExtraIDs,
		c.ValidFrom, c.ValidUntil,
		c.MaxUses, c.CurrentUses, c.MaxUsesPerGuest, c.MinBookingCents,
		c.IsActive,
	)
}

func (c *CouponBuilder) MustBuildDomain() *domcoupon.Coupon {
	built, err := c.BuildDomain()
	if err != nil {
		panic(err)
	}
	return built
}

func (c *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	return &shared.CouponSnapshot{
		ID:              c.ID,
		Code:            c.Code,
		DiscountType:    c.DiscountType,
		DiscountValue:   c.DiscountValue,
		AppliesTo:       c.AppliesTo,
		ExtraIDs:        c.ExtraIDs,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		MaxUses:         c.MaxUses,
		CurrentUses:     c.CurrentUses,
		MaxUsesPerGuest: c.MaxUsesPerGuest,
		MinBookingCents: c.MinBookingCents,
		IsActive:        c.IsActive,
	}
}

// Fluent builder methods
func (c *CouponBuilder) WithCode(code string) *CouponBuilder {
	c.Code = code
	return c
}

func (c *CouponBuilder) WithPercentage(percentOff float64) *CouponBuilder {
	c.DiscountType = "percentage"
	c.DiscountValue = percentOff
	return c
}

func (c *CouponBuilder) WithFixed(amountCents int64) *CouponBuilder {
	c.DiscountType = "fixed"
	c.DiscountValue = float64(amountCents)
	return c
}

func (c *CouponBuilder) WithScope(scope string) *CouponBuilder {
	c.AppliesTo = scope
	return c
}

func (c *CouponBuilder) WithExtraIDs(ids ...uuid.UUID) *CouponBuilder {
	c.ExtraIDs = ids
	return c
}

func (c *CouponBuilder) WithValidUntil(t time.Time) *CouponBuilder {
	c.ValidUntil = &t
	return c
}

func (c *CouponBuilder) WithMaxUses(maxUses, currentUses int32) *CouponBuilder {
	c.MaxUses = &maxUses
	c.CurrentUses = currentUses
	return c
}

func (c *CouponBuilder) WithMaxUsesPerGuest(n int32) *CouponBuilder {
	c.MaxUsesPerGuest = &n
	return c
}

func (c *CouponBuilder) WithMinBookingCents(cents int64) *CouponBuilder {
	c.MinBookingCents = &cents
	return c
}

func (c *CouponBuilder) AsInactive() *CouponBuilder {
	c.IsActive = false
	return c
}
