package request

import (
	"errors"
	"strings"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/extra"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/usecase/commands"
	"cabinstay/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var errNoUnitKey = errors.New("unit needs an id or a code")

// UnitRefRequest identifies a unit by id, legacy code, or both.
type UnitRefRequest struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Code *string    `json:"code,omitempty"`
}

func (r UnitRefRequest) ToDomain() (unit.Ref, error) {
	id := uuid.Nil
	if r.ID != nil {
		id = *r.ID
	}
	code := ""
	if r.Code != nil {
		code = strings.TrimSpace(*r.Code)
	}
	if id == uuid.Nil && code == "" {
		return unit.Ref{}, errNoUnitKey
	}
	return unit.NewRef(id, code)
}

type ExtraSelectionRequest struct {
	ExtraID  uuid.UUID `json:"extra_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type GuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type CreateBookingRequest struct {
	Units             []UnitRefRequest        `json:"units" binding:"required,min=1"`
	CheckIn           string                  `json:"check_in" binding:"required"`
	CheckOut          string                  `json:"check_out" binding:"required"`
	Guest             GuestRequest            `json:"guest" binding:"required"`
	Extras            []ExtraSelectionRequest `json:"extras,omitempty"`
	CouponCode        *string                 `json:"coupon_code,omitempty"`
	PackageID         *uuid.UUID              `json:"package_id,omitempty"`
	PackagePriceCents *int64                  `json:"package_price_cents,omitempty"`
}

func (r CreateBookingRequest) ToInput() (commands.BookingInput, error) {
	var in commands.BookingInput

	for _, u := range r.Units {
		ref, err := u.ToDomain()
		if err != nil {
			return in, err
		}
		in.Units = append(in.Units, ref)
	}

	stay, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return in, err
	}
	in.Stay = stay

	guest, err := booking.NewGuest(r.Guest.Name, r.Guest.Email, r.Guest.Phone)
	if err != nil {
		return in, err
	}
	in.Guest = guest

	for _, e := range r.Extras {
		in.Extras = append(in.Extras, extra.Selection{ExtraID: e.ExtraID, Quantity: e.Quantity})
	}

	in.CouponCode = trimmedPtr(r.CouponCode)
	in.PackageID = r.PackageID
	in.PackagePriceCents = r.PackagePriceCents

	return in, nil
}

type QuoteBookingRequest struct {
	Units             []UnitRefRequest        `json:"units" binding:"required,min=1"`
	CheckIn           string                  `json:"check_in" binding:"required"`
	CheckOut          string                  `json:"check_out" binding:"required"`
	Extras            []ExtraSelectionRequest `json:"extras,omitempty"`
	CouponCode        *string                 `json:"coupon_code,omitempty"`
	PackagePriceCents *int64                  `json:"package_price_cents,omitempty"`
}

func (r QuoteBookingRequest) ToQuery() (queries.QuoteRequest, error) {
	var q queries.QuoteRequest

	for _, u := range r.Units {
		ref, err := u.ToDomain()
		if err != nil {
			return q, err
		}
		q.Units = append(q.Units, ref)
	}

	stay, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return q, err
	}
	q.Stay = stay

	for _, e := range r.Extras {
		q.Extras = append(q.Extras, extra.Selection{ExtraID: e.ExtraID, Quantity: e.Quantity})
	}

	q.CouponCode = trimmedPtr(r.CouponCode)
	q.PackagePriceCents = r.PackagePriceCents

	return q, nil
}

type BlockedDatesRequest struct {
	Unit     UnitRefRequest `json:"unit" binding:"required"`
	CheckIn  string         `json:"from" binding:"required"`
	CheckOut string         `json:"to" binding:"required"`
}

func (r BlockedDatesRequest) ToDomain() (unit.Ref, booking.StayRange, error) {
	ref, err := r.Unit.ToDomain()
	if err != nil {
		return unit.Ref{}, booking.StayRange{}, err
	}
	stay, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return unit.Ref{}, booking.StayRange{}, err
	}
	return ref, stay, nil
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ChangePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

func parseStay(checkIn, checkOut string) (booking.StayRange, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return booking.StayRange{}, err
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return booking.StayRange{}, err
	}
	return booking.NewStayRange(in, out)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
