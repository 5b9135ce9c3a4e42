//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/commands"
	"cabinstay/internal/usecase/shared"
	"cabinstay/tests/common/builder"
	sharedmock "cabinstay/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type blockedDateFixture struct {
	uow     *sharedmock.MockUnitOfWork
	tx      *sharedmock.MockTx
	reads   *sharedmock.MockCommandReads
	blocked *sharedmock.MockBlockedDateRepository
	uc      commands.BlockedDateCommands
}

func newBlockedDateFixture(t *testing.T) *blockedDateFixture {
	ctrl := gomock.NewController(t)
	f := &blockedDateFixture{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		tx:      sharedmock.NewMockTx(ctrl),
		reads:   sharedmock.NewMockCommandReads(ctrl),
		blocked: sharedmock.NewMockBlockedDateRepository(ctrl),
	}
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().BlockedDates().Return(f.blocked).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.uc = commands.NewBlockedDateUseCase(f.uow)
	return f
}

func blockStay(t *testing.T, in, out time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(in, out)
	require.NoError(t, err)
	return stay
}

func TestBlockRange(t *testing.T) {
	t.Run("inserts one row per night", func(t *testing.T) {
		f := newBlockedDateFixture(t)
		ub := builder.NewUnitBuilder()

		f.reads.EXPECT().UnitByRef(gomock.Any(), gomock.Any()).Return(ub.BuildSnapshot(), nil)
		f.blocked.EXPECT().BulkInsert(gomock.Any(), gomock.Any(), ub.ID, gomock.Len(3)).
			DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, dates []time.Time) error {
				assert.Equal(t, builder.DefaultCheckIn, dates[0])
				assert.Equal(t, builder.DefaultCheckIn.AddDate(0, 0, 2), dates[2])
				return nil
			})

		stay := blockStay(t, builder.DefaultCheckIn, builder.DefaultCheckIn.AddDate(0, 0, 3))
		err := f.uc.BlockRange(context.Background(), ub.BuildRef(), stay)
		require.NoError(t, err)
	})

	t.Run("unknown unit aborts before touching the calendar", func(t *testing.T) {
		f := newBlockedDateFixture(t)
		ub := builder.NewUnitBuilder()

		f.reads.EXPECT().UnitByRef(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("unit not found", nil, infra.KindNotFound))

		stay := blockStay(t, builder.DefaultCheckIn, builder.DefaultCheckOut)
		err := f.uc.BlockRange(context.Background(), ub.BuildRef(), stay)
		require.ErrorIs(t, err, errs.ErrUnitNotFound)
	})

	t.Run("legacy code resolves the unit", func(t *testing.T) {
		f := newBlockedDateFixture(t)
		ub := builder.NewUnitBuilder()

		f.reads.EXPECT().UnitByRef(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ref unit.Ref) (*shared.UnitSnapshot, error) {
				assert.Equal(t, "CEDAR-01", ref.Code())
				return ub.BuildSnapshot(), nil
			})
		f.blocked.EXPECT().BulkInsert(gomock.Any(), gomock.Any(), ub.ID, gomock.Any()).Return(nil)

		ref, err := unit.NewRef(uuid.Nil, "CEDAR-01")
		require.NoError(t, err)

		stay := blockStay(t, builder.DefaultCheckIn, builder.DefaultCheckOut)
		require.NoError(t, f.uc.BlockRange(context.Background(), ref, stay))
	})
}

func TestUnblockRange(t *testing.T) {
	t.Run("deletes the blocked range", func(t *testing.T) {
		f := newBlockedDateFixture(t)
		ub := builder.NewUnitBuilder()
		stay := blockStay(t, builder.DefaultCheckIn, builder.DefaultCheckOut)

		f.reads.EXPECT().UnitByRef(gomock.Any(), gomock.Any()).Return(ub.BuildSnapshot(), nil)
		f.blocked.EXPECT().DeleteRange(gomock.Any(), gomock.Any(), ub.ID, stay).Return(nil)

		require.NoError(t, f.uc.UnblockRange(context.Background(), ub.BuildRef(), stay))
	})

	t.Run("repository failure is surfaced", func(t *testing.T) {
		f := newBlockedDateFixture(t)
		ub := builder.NewUnitBuilder()
		stay := blockStay(t, builder.DefaultCheckIn, builder.DefaultCheckOut)

		f.reads.EXPECT().UnitByRef(gomock.Any(), gomock.Any()).Return(ub.BuildSnapshot(), nil)
		f.blocked.EXPECT().DeleteRange(gomock.Any(), gomock.Any(), ub.ID, stay).
			Return(errs.New("connection reset"))

		err := f.uc.UnblockRange(context.Background(), ub.BuildRef(), stay)
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}
