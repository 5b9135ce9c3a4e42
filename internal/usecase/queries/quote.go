package queries

import (
	"context"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/coupon"
	"cabinstay/internal/domain/extra"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/shared"
)

type QuoteRequest struct {
	Units             []unit.Ref
	Stay              booking.StayRange
	Extras            []extra.Selection
	CouponCode        *string
	PackagePriceCents *int64
}

// QuoteQueries prices a candidate booking without touching availability or
// writing anything. The admin UI uses it to preview totals while a form is
// being filled in.
type QuoteQueries interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	reads     shared.CommandReads
	assembler *booking.Assembler
}

func NewQuoteQueries(reads shared.CommandReads, assembler *booking.Assembler) QuoteQueries {
	return &quoteQueriesImpl{reads: reads, assembler: assembler}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	units := make([]*unit.Unit, len(req.Units))
	for i, ref := range req.Units {
		snap, err := q.reads.UnitByRef(ctx, ref)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrUnitNotFound)
		}
		u, err := shared.UnitFromSnapshot(snap)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		units[i] = u
	}

	lines, err := shared.ResolveExtraLines(ctx, q.reads, req.Extras)
	if err != nil {
		return nil, err
	}

	var coup *coupon.Coupon
	if req.CouponCode != nil {
		snap, err := q.reads.CouponByCode(ctx, *req.CouponCode)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrCouponNotFound)
		}
		coup, err = shared.CouponFromSnapshot(snap)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrCouponRejected)
		}
	}

	var packagePrice *booking.Money
	if req.PackagePriceCents != nil {
		p := booking.NewMoney(*req.PackagePriceCents)
		packagePrice = &p
	}

	group, err := q.assembler.Assemble(booking.AssembleInput{
		Units:        units,
		Stay:         req.Stay,
		Extras:       lines,
		Coupon:       coup,
		PackagePrice: packagePrice,
	})
	if err != nil {
		return nil, shared.MarkAssembleError(err)
	}

	view := &QuoteView{
		RoomSubtotal:   group.AggregateRoomSubtotal().Cents(),
		ExtrasTotal:    group.Leader.ExtrasTotal().Cents(),
		DiscountAmount: group.Leader.DiscountAmount().Cents(),
		Total:          group.Total().Cents(),
		Nights:         int32(req.Stay.Nights()),
		CouponApplied:  coup != nil,
	}
	for i, b := range group.All() {
		_, breakdown := q.assembler.Rates.RoomSubtotal(units[i], req.Stay)
		view.Units = append(view.Units, QuoteUnitView{
			UnitID:        units[i].ID(),
			UnitName:      units[i].Name(),
			WeekdayNights: int32(breakdown.WeekdayNights),
			WeekendNights: int32(breakdown.WeekendNights),
			SubtotalCents: b.RoomSubtotal().Cents(),
		})
	}
	return view, nil
}
