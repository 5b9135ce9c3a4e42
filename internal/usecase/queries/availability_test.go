//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/queries"
	queriesmock "cabinstay/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckAvailability(t *testing.T) {
	unitID := uuid.New()
	ref, err := unit.NewRef(unitID, "CEDAR-01")
	require.NoError(t, err)

	setup := func(t *testing.T) (*queriesmock.MockAvailabilityReads, queries.AvailabilityQueries) {
		ctrl := gomock.NewController(t)
		reads := queriesmock.NewMockAvailabilityReads(ctrl)
		return reads, queries.NewAvailabilityQueries(reads, discardLogger())
	}

	t.Run("free unit is available", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return(nil, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return(nil, nil)

		assert.True(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("overlapping reservation makes it unavailable", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return([]*queries.StayView{
			{ID: uuid.New(), UnitID: unitID, CheckIn: day(2026, 3, 4), CheckOut: day(2026, 3, 8)},
		}, nil)

		assert.False(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("same-day turnover does not conflict", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return([]*queries.StayView{
			{ID: uuid.New(), UnitID: unitID, CheckIn: day(2026, 3, 6), CheckOut: day(2026, 3, 9)},
			{ID: uuid.New(), UnitID: unitID, CheckIn: day(2026, 2, 27), CheckOut: day(2026, 3, 2)},
		}, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return(nil, nil)

		assert.True(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("blocked night inside the stay makes it unavailable", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return(nil, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return([]time.Time{day(2026, 3, 4)}, nil)

		assert.False(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("block on the checkout day does not conflict", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return(nil, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return([]time.Time{day(2026, 3, 6)}, nil)

		assert.True(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("reservation read failure fails closed", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).
			Return(nil, errs.New("connection reset"))

		assert.False(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("blocked-date read failure fails closed", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return(nil, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).
			Return(nil, errs.New("connection reset"))

		assert.False(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("degenerate stored range fails closed", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return([]*queries.StayView{
			{ID: uuid.New(), UnitID: unitID, CheckIn: day(2026, 3, 4), CheckOut: day(2026, 3, 4)},
		}, nil)

		assert.False(t, q.CheckAvailability(context.Background(), ref, stay))
	})

	t.Run("repeated checks are idempotent", func(t *testing.T) {
		reads, q := setup(t)
		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, nil).Return(nil, nil).Times(3)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return(nil, nil).Times(3)

		for range 3 {
			assert.True(t, q.CheckAvailability(context.Background(), ref, stay))
		}
	})
}

func TestCheckAvailabilityExcluding(t *testing.T) {
	ref, err := unit.NewRef(uuid.New(), "CEDAR-01")
	require.NoError(t, err)

	t.Run("exclusion ids pass through to the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reads := queriesmock.NewMockAvailabilityReads(ctrl)
		q := queries.NewAvailabilityQueries(reads, discardLogger())

		stay := mustStay(t, day(2026, 3, 2), day(2026, 3, 6))
		exclude := []uuid.UUID{uuid.New(), uuid.New()}
		reads.EXPECT().OccupyingStays(gomock.Any(), ref, stay, exclude).Return(nil, nil)
		reads.EXPECT().BlockedDates(gomock.Any(), ref, stay).Return(nil, nil)

		assert.True(t, q.CheckAvailabilityExcluding(context.Background(), ref, stay, exclude))
	})
}
