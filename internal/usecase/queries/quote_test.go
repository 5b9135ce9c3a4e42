//go:build unit

package queries_test

import (
	"context"
	"testing"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/extra"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/pkg/clock"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/queries"
	"cabinstay/internal/usecase/shared"
	"cabinstay/tests/common/builder"
	sharedmock "cabinstay/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQuote(t *testing.T) (*sharedmock.MockCommandReads, queries.QuoteQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reads := sharedmock.NewMockCommandReads(ctrl)
	assembler := booking.NewAssembler(clock.NewMockClock(builder.FixedNow), booking.NewNightlyRateCalculator())
	return reads, queries.NewQuoteQueries(reads, assembler)
}

func TestQuote(t *testing.T) {
	stayOf := func(t *testing.T) booking.StayRange {
		return mustStay(t, builder.DefaultCheckIn, builder.DefaultCheckOut)
	}

	t.Run("prices a single unit stay", func(t *testing.T) {
		reads, q := newQuote(t)
		ub := builder.NewUnitBuilder()
		reads.EXPECT().UnitByRef(gomock.Any(), ub.BuildRef()).Return(ub.BuildSnapshot(), nil)

		view, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units: []unit.Ref{ub.BuildRef()},
			Stay:  stayOf(t),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(40000), view.RoomSubtotal)
		assert.Equal(t, int64(40000), view.Total)
		assert.Equal(t, int32(4), view.Nights)
		assert.False(t, view.CouponApplied)
		require.Len(t, view.Units, 1)
		assert.Equal(t, ub.Name, view.Units[0].UnitName)
		assert.Equal(t, int32(4), view.Units[0].WeekdayNights)
		assert.Equal(t, int32(0), view.Units[0].WeekendNights)
	})

	t.Run("prices every unit of a group and applies the coupon once", func(t *testing.T) {
		reads, q := newQuote(t)
		cedar := builder.NewUnitBuilder()
		pine := builder.NewUnitBuilder().WithCode("PINE-02").WithName("Pine Cabin").WithRates(8000, 12000)
		coup := builder.NewCouponBuilder().WithPercentage(10)

		reads.EXPECT().UnitByRef(gomock.Any(), cedar.BuildRef()).Return(cedar.BuildSnapshot(), nil)
		reads.EXPECT().UnitByRef(gomock.Any(), pine.BuildRef()).Return(pine.BuildSnapshot(), nil)
		reads.EXPECT().CouponByCode(gomock.Any(), coup.Code).Return(coup.BuildSnapshot(), nil)

		view, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units:      []unit.Ref{cedar.BuildRef(), pine.BuildRef()},
			Stay:       stayOf(t),
			CouponCode: &coup.Code,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(72000), view.RoomSubtotal)
		assert.Equal(t, int64(7200), view.DiscountAmount)
		assert.Equal(t, int64(64800), view.Total)
		assert.True(t, view.CouponApplied)
		require.Len(t, view.Units, 2)
		assert.Equal(t, int64(40000), view.Units[0].SubtotalCents)
		assert.Equal(t, int64(32000), view.Units[1].SubtotalCents)
	})

	t.Run("resolves extras against the catalog", func(t *testing.T) {
		reads, q := newQuote(t)
		ub := builder.NewUnitBuilder()
		extraID := uuid.New()

		reads.EXPECT().UnitByRef(gomock.Any(), ub.BuildRef()).Return(ub.BuildSnapshot(), nil)
		reads.EXPECT().ExtrasByIDs(gomock.Any(), []uuid.UUID{extraID}).Return([]*shared.ExtraSnapshot{
			{ID: extraID, Name: "Firewood Bundle", PriceCents: 2500, IsActive: true},
		}, nil)

		view, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units:  []unit.Ref{ub.BuildRef()},
			Stay:   stayOf(t),
			Extras: []extra.Selection{{ExtraID: extraID, Quantity: 2}},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(5000), view.ExtrasTotal)
		assert.Equal(t, int64(45000), view.Total)
	})

	t.Run("unknown unit maps to the unit sentinel", func(t *testing.T) {
		reads, q := newQuote(t)
		ub := builder.NewUnitBuilder()
		reads.EXPECT().UnitByRef(gomock.Any(), ub.BuildRef()).
			Return(nil, infra.WrapRepoErr("unit not found", nil, infra.KindNotFound))

		_, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units: []unit.Ref{ub.BuildRef()},
			Stay:  stayOf(t),
		})
		require.ErrorIs(t, err, errs.ErrUnitNotFound)
	})

	t.Run("rejected coupon keeps its sub-reason", func(t *testing.T) {
		reads, q := newQuote(t)
		ub := builder.NewUnitBuilder()
		coup := builder.NewCouponBuilder().AsInactive()

		reads.EXPECT().UnitByRef(gomock.Any(), ub.BuildRef()).Return(ub.BuildSnapshot(), nil)
		reads.EXPECT().CouponByCode(gomock.Any(), coup.Code).Return(coup.BuildSnapshot(), nil)

		_, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units:      []unit.Ref{ub.BuildRef()},
			Stay:       stayOf(t),
			CouponCode: &coup.Code,
		})
		require.ErrorIs(t, err, errs.ErrCouponRejected)
	})

	t.Run("package price overrides the leader subtotal", func(t *testing.T) {
		reads, q := newQuote(t)
		ub := builder.NewUnitBuilder()
		pkgPrice := int64(35000)

		reads.EXPECT().UnitByRef(gomock.Any(), ub.BuildRef()).Return(ub.BuildSnapshot(), nil)

		view, err := q.Quote(context.Background(), queries.QuoteRequest{
			Units:             []unit.Ref{ub.BuildRef()},
			Stay:              stayOf(t),
			PackagePriceCents: &pkgPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(35000), view.Total)
	})
}
