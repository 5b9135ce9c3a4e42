package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type UnitView struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	WeekdayRateCents int64     `json:"weekday_rate_cents"`
	WeekendRateCents int64     `json:"weekend_rate_cents"`
	IsActive         bool      `json:"is_active"`
}

type ExtraLineView struct {
	ExtraID        uuid.UUID `json:"extra_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type BookingView struct {
	ID             uuid.UUID       `json:"id"`
	UnitID         uuid.UUID       `json:"unit_id"`
	UnitCode       string          `json:"unit_code"`
	UnitName       string          `json:"unit_name"`
	CheckIn        time.Time       `json:"check_in"`
	CheckOut       time.Time       `json:"check_out"`
	Nights         int32           `json:"nights"`
	GuestName      string          `json:"guest_name"`
	GuestEmail     string          `json:"guest_email"`
	GuestPhone     *string         `json:"guest_phone,omitempty"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	RoomSubtotal   int64           `json:"room_subtotal_cents"`
	ExtrasTotal    int64           `json:"extras_total_cents"`
	DiscountAmount int64           `json:"discount_amount_cents"`
	Total          int64           `json:"total_cents"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	PackageID      *uuid.UUID      `json:"package_id,omitempty"`
	GroupID        *uuid.UUID      `json:"group_reservation_id,omitempty"`
	GroupCode      *string         `json:"group_reservation_code,omitempty"`
	Extras         []ExtraLineView `json:"extras,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID  `json:"id"`
	UnitID     uuid.UUID  `json:"unit_id"`
	UnitName   string     `json:"unit_name"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   time.Time  `json:"check_out"`
	GuestName  string     `json:"guest_name"`
	Status     string     `json:"status"`
	TotalCents int64      `json:"total_cents"`
	GroupID    *uuid.UUID `json:"group_reservation_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// QuoteView prices a candidate stay without persisting anything.
type QuoteView struct {
	Units          []QuoteUnitView `json:"units"`
	RoomSubtotal   int64           `json:"room_subtotal_cents"`
	ExtrasTotal    int64           `json:"extras_total_cents"`
	DiscountAmount int64           `json:"discount_amount_cents"`
	Total          int64           `json:"total_cents"`
	Nights         int32           `json:"nights"`
	CouponApplied  bool            `json:"coupon_applied"`
}

type QuoteUnitView struct {
	UnitID        uuid.UUID `json:"unit_id"`
	UnitName      string    `json:"unit_name"`
	WeekdayNights int32     `json:"weekday_nights"`
	WeekendNights int32     `json:"weekend_nights"`
	SubtotalCents int64     `json:"subtotal_cents"`
}

// StayView is the slice of a stored reservation the availability resolver
// needs: its dates and identity keys.
type StayView struct {
	ID       uuid.UUID
	UnitID   uuid.UUID
	UnitCode string
	CheckIn  time.Time
	CheckOut time.Time
}
