package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep command orchestration independent of read-side
// view types.

type UnitSnapshot struct {
	ID               uuid.UUID
	Code             string
	Name             string
	WeekdayRateCents int64
	WeekendRateCents int64
	IsActive         bool
}

type CouponSnapshot struct {
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

type ExtraSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	IsActive   bool
}

// BookingSnapshot is the minimal stored state commands need for availability
// exclusion, group reconciliation and status transitions.
type BookingSnapshot struct {
	ID         uuid.UUID
	UnitID     uuid.UUID
	UnitCode   string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     string
	CouponCode *string
	GroupID    *uuid.UUID
	GroupCode  *string
	GuestEmail string
}
