//go:build unit || e2e

package builder

import (
	"time"

	dombooking "cabinstay/internal/domain/booking"
	domcoupon "cabinstay/internal/domain/coupon"
	domunit "cabinstay/internal/domain/unit"
	reqdto "cabinstay/internal/handler/dto/request"
	"cabinstay/internal/pkg/clock"
	"cabinstay/internal/usecase/queries"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
)

// FixedNow anchors every builder-produced timestamp so assertions can compare
// exact values.
var FixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Default stay: Monday to Friday, four weekday nights.
var (
	DefaultCheckIn  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	DefaultCheckOut = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
)

type BookingBuilder struct {
	ID                uuid.UUID
	Units             []*UnitBuilder
	CheckIn           time.Time
	CheckOut          time.Time
	GuestName         string
	GuestEmail        string
	GuestPhone        string
	Extras            []dombooking.ExtraLine
	Coupon            *domcoupon.Coupon
	PackageID         *uuid.UUID
	PackagePriceCents *int64
	Edit              *dombooking.EditContext
	Now               time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		Units:      []*UnitBuilder{NewUnitBuilder()},
		CheckIn:    DefaultCheckIn,
		CheckOut:   DefaultCheckOut,
		GuestName:  "Dana Reyes",
		GuestEmail: "dana@example.com",
		Now:        FixedNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildStay() dombooking.StayRange {
	stay, err := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return stay
}

func (b *BookingBuilder) BuildGuest() dombooking.Guest {
	guest, err := dombooking.NewGuest(b.GuestName, b.GuestEmail, b.GuestPhone)
	if err != nil {
		panic(err)
	}
	return guest
}

func (b *BookingBuilder) BuildAssembleInput() dombooking.AssembleInput {
	units := make([]*domunit.Unit, len(b.Units))
	for i, ub := range b.Units {
		units[i] = ub.MustBuildDomain()
	}

	var packagePrice *dombooking.Money
	if b.PackagePriceCents != nil {
		p := dombooking.NewMoney(*b.PackagePriceCents)
		packagePrice = &p
	}

	return dombooking.AssembleInput{
		Units:        units,
		Stay:         b.BuildStay(),
		Guest:        b.BuildGuest(),
		Extras:       b.Extras,
		Coupon:       b.Coupon,
		PackageID:    b.PackageID,
		PackagePrice: packagePrice,
		Edit:         b.Edit,
	}
}

// BuildGroup assembles through the real factory with a fixed clock.
func (b *BookingBuilder) BuildGroup() (*dombooking.Group, error) {
	assembler := dombooking.NewAssembler(clock.NewMockClock(b.Now), dombooking.NewNightlyRateCalculator())
	return assembler.Assemble(b.BuildAssembleInput())
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	var couponCode *string
	if b.Coupon != nil {
		code := b.Coupon.Code().String()
		couponCode = &code
	}
	return &shared.BookingSnapshot{
		ID:         b.ID,
		UnitID:     b.Units[0].ID,
		UnitCode:   b.Units[0].Code,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Status:     dombooking.StatusPending.String(),
		CouponCode: couponCode,
		GuestEmail: b.GuestEmail,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	stay := b.BuildStay()
	return &queries.BookingView{
		ID:            b.ID,
		UnitID:        b.Units[0].ID,
		UnitCode:      b.Units[0].Code,
		UnitName:      b.Units[0].Name,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        int32(stay.Nights()),
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		Status:        dombooking.StatusPending.String(),
		PaymentStatus: dombooking.PaymentUnpaid.String(),
		RoomSubtotal:  40000,
		Total:         40000,
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:         b.ID,
		UnitID:     b.Units[0].ID,
		UnitName:   b.Units[0].Name,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  b.GuestName,
		Status:     dombooking.StatusPending.String(),
		TotalCents: 40000,
		CreatedAt:  b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		CheckIn:  b.CheckIn.Format("2006-01-02"),
		CheckOut: b.CheckOut.Format("2006-01-02"),
		Guest: reqdto.GuestRequest{
			Name:  b.GuestName,
			Email: b.GuestEmail,
			Phone: b.GuestPhone,
		},
		PackageID:         b.PackageID,
		PackagePriceCents: b.PackagePriceCents,
	}
	for _, ub := range b.Units {
		id := ub.ID
		code := ub.Code
		req.Units = append(req.Units, reqdto.UnitRefRequest{ID: &id, Code: &code})
	}
	return req
}

func (b *BookingBuilder) BuildQuoteRequestDTO() reqdto.QuoteBookingRequest {
	req := reqdto.QuoteBookingRequest{
		CheckIn:           b.CheckIn.Format("2006-01-02"),
		CheckOut:          b.CheckOut.Format("2006-01-02"),
		PackagePriceCents: b.PackagePriceCents,
	}
	for _, ub := range b.Units {
		id := ub.ID
		code := ub.Code
		req.Units = append(req.Units, reqdto.UnitRefRequest{ID: &id, Code: &code})
	}
	return req
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithUnits(units ...*UnitBuilder) *BookingBuilder {
	b.Units = units
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuest(name, email, phone string) *BookingBuilder {
	b.GuestName = name
	b.GuestEmail = email
	b.GuestPhone = phone
	return b
}

func (b *BookingBuilder) WithExtraLine(name string, unitPriceCents int64, quantity int32) *BookingBuilder {
	b.Extras = append(b.Extras, dombooking.ExtraLine{
		ExtraID:   uuid.New(),
		Name:      name,
		UnitPrice: dombooking.NewMoney(unitPriceCents),
		Quantity:  quantity,
	})
	return b
}

func (b *BookingBuilder) WithCoupon(c *domcoupon.Coupon) *BookingBuilder {
	b.Coupon = c
	return b
}

func (b *BookingBuilder) WithPackage(id uuid.UUID, priceCents int64) *BookingBuilder {
	b.PackageID = &id
	b.PackagePriceCents = &priceCents
	return b
}

func (b *BookingBuilder) WithEdit(edit *dombooking.EditContext) *BookingBuilder {
	b.Edit = edit
	return b
}
