package response

import (
	"time"

	"cabinstay/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExtraLineResponse struct {
	ExtraID        uuid.UUID `json:"extraId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int32     `json:"quantity"`
	SubtotalCents  int64     `json:"subtotalCents"`
}

type BookingResponse struct {
	ID             uuid.UUID           `json:"id"`
	UnitID         uuid.UUID           `json:"unitId"`
	UnitCode       string              `json:"unitCode,omitempty"`
	UnitName       string              `json:"unitName"`
	CheckIn        string              `json:"checkIn"`
	CheckOut       string              `json:"checkOut"`
	Nights         int32               `json:"nights"`
	GuestName      string              `json:"guestName"`
	GuestEmail     string              `json:"guestEmail"`
	GuestPhone     *string             `json:"guestPhone,omitempty"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"paymentStatus"`
	RoomSubtotal   int64               `json:"roomSubtotalCents"`
	ExtrasTotal    int64               `json:"extrasTotalCents"`
	DiscountAmount int64               `json:"discountAmountCents"`
	Total          int64               `json:"totalCents"`
	CouponCode     *string             `json:"couponCode,omitempty"`
	PackageID      *uuid.UUID          `json:"packageId,omitempty"`
	GroupID        *uuid.UUID          `json:"groupId,omitempty"`
	GroupCode      *string             `json:"groupCode,omitempty"`
	Extras         []ExtraLineResponse `json:"extras,omitempty"`
	Members        []*BookingListItem  `json:"members,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

type BookingListItem struct {
	ID         uuid.UUID  `json:"id"`
	UnitID     uuid.UUID  `json:"unitId"`
	UnitName   string     `json:"unitName"`
	CheckIn    string     `json:"checkIn"`
	CheckOut   string     `json:"checkOut"`
	GuestName  string     `json:"guestName"`
	Status     string     `json:"status"`
	TotalCents int64      `json:"totalCents"`
	GroupID    *uuid.UUID `json:"groupId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItem `json:"items"`
	NextCursor *string            `json:"nextCursor,omitempty"`
}

const dateLayout = "2006-01-02"

func FromBookingView(view *queries.BookingView, members []*queries.BookingListItem) *BookingResponse {
	resp := &BookingResponse{
		ID:             view.ID,
		UnitID:         view.UnitID,
		UnitCode:       view.UnitCode,
		UnitName:       view.UnitName,
		CheckIn:        view.CheckIn.Format(dateLayout),
		CheckOut:       view.CheckOut.Format(dateLayout),
		Nights:         view.Nights,
		GuestName:      view.GuestName,
		GuestEmail:     view.GuestEmail,
		GuestPhone:     view.GuestPhone,
		Status:         view.Status,
		PaymentStatus:  view.PaymentStatus,
		RoomSubtotal:   view.RoomSubtotal,
		ExtrasTotal:    view.ExtrasTotal,
		DiscountAmount: view.DiscountAmount,
		Total:          view.Total,
		CouponCode:     view.CouponCode,
		PackageID:      view.PackageID,
		GroupID:        view.GroupID,
		GroupCode:      view.GroupCode,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
	for _, line := range view.Extras {
		resp.Extras = append(resp.Extras, ExtraLineResponse{
			ExtraID:        line.ExtraID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			SubtotalCents:  line.SubtotalCents,
		})
	}
	for _, m := range members {
		resp.Members = append(resp.Members, FromBookingListItem(m))
	}
	return resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListItem {
	return &BookingListItem{
		ID:         item.ID,
		UnitID:     item.UnitID,
		UnitName:   item.UnitName,
		CheckIn:    item.CheckIn.Format(dateLayout),
		CheckOut:   item.CheckOut.Format(dateLayout),
		GuestName:  item.GuestName,
		Status:     item.Status,
		TotalCents: item.TotalCents,
		GroupID:    item.GroupID,
		CreatedAt:  item.CreatedAt,
	}
}

type QuoteUnitResponse struct {
	UnitID        uuid.UUID `json:"unitId"`
	UnitName      string    `json:"unitName"`
	WeekdayNights int32     `json:"weekdayNights"`
	WeekendNights int32     `json:"weekendNights"`
	SubtotalCents int64     `json:"subtotalCents"`
}

type QuoteResponse struct {
	Units          []QuoteUnitResponse `json:"units"`
	RoomSubtotal   int64               `json:"roomSubtotalCents"`
	ExtrasTotal    int64               `json:"extrasTotalCents"`
	DiscountAmount int64               `json:"discountAmountCents"`
	Total          int64               `json:"totalCents"`
	Nights         int32               `json:"nights"`
	CouponApplied  bool                `json:"couponApplied"`
}

func FromQuoteView(view *queries.QuoteView) *QuoteResponse {
	resp := &QuoteResponse{
		RoomSubtotal:   view.RoomSubtotal,
		ExtrasTotal:    view.ExtrasTotal,
		DiscountAmount: view.DiscountAmount,
		Total:          view.Total,
		Nights:         view.Nights,
		CouponApplied:  view.CouponApplied,
	}
	for _, u := range view.Units {
		resp.Units = append(resp.Units, QuoteUnitResponse{
			UnitID:        u.UnitID,
			UnitName:      u.UnitName,
			WeekdayNights: u.WeekdayNights,
			WeekendNights: u.WeekendNights,
			SubtotalCents: u.SubtotalCents,
		})
	}
	return resp
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
}
