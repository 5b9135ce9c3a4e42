package coupon

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode    = errors.New("invalid coupon code format")
	ErrInvalidDiscountValue = errors.New("discount value cannot be negative")
	ErrInvalidPercentOff    = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidScope         = errors.New("invalid coupon scope")
	ErrInvalidDiscountType  = errors.New("invalid discount type")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is stored upper-cased and matched case-insensitively.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Scope selects which cost components the discount is computed against.
type Scope string

const (
	ScopeRooms  Scope = "rooms"
	ScopeExtras Scope = "extras"
	ScopeBoth   Scope = "both"
)

func NewScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	switch scope {
	case ScopeRooms, ScopeExtras, ScopeBoth:
		return scope, nil
	default:
		return "", ErrInvalidScope
	}
}

func (s Scope) String() string { return string(s) }

func (s Scope) CoversRooms() bool  { return s == ScopeRooms || s == ScopeBoth }
func (s Scope) CoversExtras() bool { return s == ScopeExtras || s == ScopeBoth }

type DiscountType string

const (
	TypePercentage DiscountType = "percentage"
	TypeFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string { return string(t) }

type Discount struct {
	kind        DiscountType
	percentOff  float64
	amountCents int64
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidPercentOff
	}
	return Discount{kind: TypePercentage, percentOff: percentOff}, nil
}

func NewFixedDiscount(amountCents int64) (Discount, error) {
	if amountCents < 0 {
		return Discount{}, ErrInvalidDiscountValue
	}
	return Discount{kind: TypeFixed, amountCents: amountCents}, nil
}

func NewDiscount(kind string, value float64) (Discount, error) {
	switch DiscountType(kind) {
	case TypePercentage:
		return NewPercentageDiscount(value)
	case TypeFixed:
		// Stored as float8; round to whole cents rather than truncate so
		// representation noise cannot shave a cent off.
		return NewFixedDiscount(int64(math.Round(value)))
	default:
		return Discount{}, ErrInvalidDiscountType
	}
}

func (d Discount) Type() DiscountType  { return d.kind }
func (d Discount) PercentOff() float64 { return d.percentOff }
func (d Discount) AmountCents() int64  { return d.amountCents }

func (d Discount) IsPercentage() bool {
	return d.kind == TypePercentage
}

// AmountFor computes the raw discount for a base amount in cents, before the
// subtotal clamp.
func (d Discount) AmountFor(baseCents int64) int64 {
	if d.IsPercentage() {
		return int64(float64(baseCents) * d.percentOff / 100.0)
	}
	return d.amountCents
}
