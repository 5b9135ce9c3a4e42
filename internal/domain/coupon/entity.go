package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon has reached its usage limit")
	ErrBelowMinimum    = errors.New("booking amount is below the coupon minimum")
	ErrScopeMismatch   = errors.New("coupon does not apply to the selected extras")
)

// SelectedExtra is one add-on line of a candidate booking, as seen by coupon
// resolution.
type SelectedExtra struct {
	ExtraID    uuid.UUID
	PriceCents int64
	Quantity   int32
}

func (e SelectedExtra) SubtotalCents() int64 {
	return e.PriceCents * int64(e.Quantity)
}

type Coupon struct {
	id              uuid.UUID
	code            Code
	discount        Discount
	scope           Scope
	extraIDs        []uuid.UUID // allow-list; empty means all extras in scope
	validFrom       *time.Time
	validUntil      *time.Time
	maxUses         *int32
	currentUses     int32
	maxUsesPerGuest *int32
	minBookingCents *int64
	isActive        bool
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discount Discount,
	scope Scope,
	extraIDs []uuid.UUID,
	validFrom, validUntil *time.Time,
	maxUses *int32,
	currentUses int32,
	maxUsesPerGuest *int32,
	minBookingCents *int64,
	isActive bool,
) (*Coupon, error) {
	normalized, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:              id,
		code:            normalized,
		discount:        discount,
		scope:           scope,
		extraIDs:        extraIDs,
		validFrom:       validFrom,
		validUntil:      validUntil,
		maxUses:         maxUses,
		currentUses:     currentUses,
		maxUsesPerGuest: maxUsesPerGuest,
		minBookingCents: minBookingCents,
		isActive:        isActive,
	}, nil
}

func (c *Coupon) ID() uuid.UUID           { return c.id }
func (c *Coupon) Code() Code              { return c.code }
func (c *Coupon) Discount() Discount      { return c.discount }
func (c *Coupon) Scope() Scope            { return c.scope }
func (c *Coupon) ExtraIDs() []uuid.UUID   { return c.extraIDs }
func (c *Coupon) ValidFrom() *time.Time   { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time  { return c.validUntil }
func (c *Coupon) MaxUses() *int32         { return c.maxUses }
func (c *Coupon) CurrentUses() int32      { return c.currentUses }
func (c *Coupon) MaxUsesPerGuest() *int32 { return c.maxUsesPerGuest }
func (c *Coupon) MinBookingCents() *int64 { return c.minBookingCents }
func (c *Coupon) IsActive() bool          { return c.isActive }

func (c *Coupon) hasAllowList() bool {
	return len(c.extraIDs) > 0
}

func (c *Coupon) allowListContains(id uuid.UUID) bool {
	for _, allowed := range c.extraIDs {
		if allowed == id {
			return true
		}
	}
	return false
}

// Validate runs the acceptance checks in order and returns the first failure.
// A failed coupon is simply not applied; there is no partial discount.
func (c *Coupon) Validate(now time.Time, roomSubtotalCents int64, selected []SelectedExtra) error {
	if !c.isActive {
		return ErrCouponInactive
	}

	// Expiry compares calendar dates only: a coupon valid until today is
	// still accepted for the whole day.
	if c.validUntil != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		until := time.Date(c.validUntil.Year(), c.validUntil.Month(), c.validUntil.Day(), 0, 0, 0, 0, time.UTC)
		if until.Before(today) {
			return ErrCouponExpired
		}
	}

	if c.maxUses != nil && c.currentUses >= *c.maxUses {
		return ErrCouponExhausted
	}

	subtotal := roomSubtotalCents + extrasTotalCents(selected)
	if c.minBookingCents != nil && subtotal < *c.minBookingCents {
		return ErrBelowMinimum
	}

	if c.scope.CoversExtras() && c.hasAllowList() {
		anyMatch := false
		for _, e := range selected {
			if c.allowListContains(e.ExtraID) {
				anyMatch = true
				break
			}
		}
		if !anyMatch {
			return ErrScopeMismatch
		}
	}

	return nil
}

// DiscountCents computes the discount for a validated coupon. The base depends
// on scope; with an allow-list only the matching extras count toward the
// extras base. The result is clamped to the full pre-discount subtotal even
// when the base was narrower.
func (c *Coupon) DiscountCents(roomSubtotalCents int64, selected []SelectedExtra) int64 {
	extrasTotal := extrasTotalCents(selected)

	targetExtras := extrasTotal
	if c.hasAllowList() {
		targetExtras = 0
		for _, e := range selected {
			if c.allowListContains(e.ExtraID) {
				targetExtras += e.SubtotalCents()
			}
		}
	}

	var base int64
	switch c.scope {
	case ScopeRooms:
		base = roomSubtotalCents
	case ScopeExtras:
		base = targetExtras
	case ScopeBoth:
		base = roomSubtotalCents + targetExtras
	}

	discount := c.discount.AmountFor(base)
	if ceiling := roomSubtotalCents + extrasTotal; discount > ceiling {
		discount = ceiling
	}
	return discount
}

// Redeemable reports whether a usage increment is still permitted. The write
// path re-checks this inside the booking transaction.
func (c *Coupon) Redeemable() bool {
	return c.maxUses == nil || c.currentUses < *c.maxUses
}

func extrasTotalCents(selected []SelectedExtra) int64 {
	var total int64
	for _, e := range selected {
		total += e.SubtotalCents()
	}
	return total
}
