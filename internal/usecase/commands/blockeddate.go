package commands

import (
	"context"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/shared"
)

// BlockedDateCommands maintains maintenance holds on a unit's calendar. A
// blocked date removes single nights from sale without creating a reservation.
type BlockedDateCommands interface {
	BlockRange(ctx context.Context, ref unit.Ref, stay booking.StayRange) error
	UnblockRange(ctx context.Context, ref unit.Ref, stay booking.StayRange) error
}

type blockedDateUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewBlockedDateUseCase(uow shared.UnitOfWork) BlockedDateCommands {
	return &blockedDateUseCaseImpl{uow: uow}
}

func (c *blockedDateUseCaseImpl) BlockRange(ctx context.Context, ref unit.Ref, stay booking.StayRange) error {
	snap, err := c.resolveUnit(ctx, ref)
	if err != nil {
		return err
	}

	dates := make([]time.Time, 0, stay.Nights())
	for day := range stay.EachNight() {
		dates = append(dates, day)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.BlockedDates().BulkInsert(ctx, tx.DB(), snap.ID, dates); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *blockedDateUseCaseImpl) UnblockRange(ctx context.Context, ref unit.Ref, stay booking.StayRange) error {
	snap, err := c.resolveUnit(ctx, ref)
	if err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.BlockedDates().DeleteRange(ctx, tx.DB(), snap.ID, stay); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *blockedDateUseCaseImpl) resolveUnit(ctx context.Context, ref unit.Ref) (*shared.UnitSnapshot, error) {
	snap, err := c.uow.CommandReads().UnitByRef(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUnitNotFound
		}
		return nil, errs.Mark(err, errs.ErrUnitNotFound)
	}
	return snap, nil
}
