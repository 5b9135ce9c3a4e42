package booking

import (
	"errors"
	"time"

	"cabinstay/internal/domain/unit"

	"github.com/google/uuid"
)

var (
	ErrNoUnitsSelected     = errors.New("no unit selected")
	ErrNegativeSubtotal    = errors.New("room subtotal cannot be negative")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidPaymentState = errors.New("invalid payment status")
	ErrNotGroupLeader      = errors.New("reservation is not a group leader")
)

// ExtraLine is one priced add-on attached to a booking. Lines are owned by
// their booking and replaced wholesale on edit.
type ExtraLine struct {
	ExtraID   uuid.UUID
	Name      string
	UnitPrice Money
	Quantity  int32
}

func (l ExtraLine) Subtotal() Money {
	return l.UnitPrice.MulInt(int64(l.Quantity))
}

func ExtrasTotal(lines []ExtraLine) Money {
	total := NewMoney(0)
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Booking is a priced, validated reservation. Members of a group carry only
// their own room subtotal; the leader carries extras, discount and coupon.
type Booking struct {
	id             uuid.UUID
	unitRef        unit.Ref
	stay           StayRange
	guest          Guest
	status         Status
	paymentStatus  PaymentStatus
	roomSubtotal   Money
	extrasTotal    Money
	discountAmount Money
	couponCode     *string
	packageID      *uuid.UUID
	groupID        *uuid.UUID
	groupCode      *string
	extras         []ExtraLine
	createdAt      time.Time
	updatedAt      time.Time
}

func newBooking(
	id uuid.UUID,
	ref unit.Ref,
	stay StayRange,
	guest Guest,
	roomSubtotal Money,
	extras []ExtraLine,
	discount Money,
	couponCode *string,
	packageID *uuid.UUID,
	now time.Time,
) (*Booking, error) {
	if roomSubtotal.IsNegative() {
		return nil, ErrNegativeSubtotal
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Booking{
		id:             id,
		unitRef:        ref,
		stay:           stay,
		guest:          guest,
		status:         StatusPending,
		paymentStatus:  PaymentUnpaid,
		roomSubtotal:   roomSubtotal,
		extrasTotal:    ExtrasTotal(extras),
		discountAmount: discount,
		couponCode:     couponCode,
		packageID:      packageID,
		extras:         extras,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a booking from stored state without re-running
// creation validation.
func Reconstruct(
	id uuid.UUID,
	ref unit.Ref,
	stay StayRange,
	guest Guest,
	status Status,
	paymentStatus PaymentStatus,
	roomSubtotal, extrasTotal, discountAmount Money,
	couponCode *string,
	packageID, groupID *uuid.UUID,
	groupCode *string,
	extras []ExtraLine,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		unitRef:        ref,
		stay:           stay,
		guest:          guest,
		status:         status,
		paymentStatus:  paymentStatus,
		roomSubtotal:   roomSubtotal,
		extrasTotal:    extrasTotal,
		discountAmount: discountAmount,
		couponCode:     couponCode,
		packageID:      packageID,
		groupID:        groupID,
		groupCode:      groupCode,
		extras:         extras,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) UnitRef() unit.Ref            { return b.unitRef }
func (b *Booking) Stay() StayRange              { return b.stay }
func (b *Booking) Nights() int                  { return b.stay.Nights() }
func (b *Booking) Guest() Guest                 { return b.guest }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) RoomSubtotal() Money          { return b.roomSubtotal }
func (b *Booking) ExtrasTotal() Money           { return b.extrasTotal }
func (b *Booking) DiscountAmount() Money        { return b.discountAmount }
func (b *Booking) CouponCode() *string          { return b.couponCode }
func (b *Booking) PackageID() *uuid.UUID        { return b.packageID }
func (b *Booking) GroupID() *uuid.UUID          { return b.groupID }
func (b *Booking) GroupCode() *string           { return b.groupCode }
func (b *Booking) Extras() []ExtraLine          { return b.extras }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

// Total is room subtotal plus extras minus discount, floored at zero.
func (b *Booking) Total() Money {
	return b.roomSubtotal.Add(b.extrasTotal).SubFloor(b.discountAmount)
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// IsGrouped reports whether this row belongs to a multi-unit booking.
func (b *Booking) IsGrouped() bool {
	return b.groupID != nil
}

// IsGroupLeader: the leader is the row whose own id equals the group id. A
// single-unit booking has no group and is its own authority.
func (b *Booking) IsGroupLeader() bool {
	return b.groupID == nil || *b.groupID == b.id
}

func (b *Booking) ChangeStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidTransition
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) ChangePayment(next PaymentStatus, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidPaymentState
	}
	b.paymentStatus = next
	b.updatedAt = now
	return nil
}
