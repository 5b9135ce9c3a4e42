package writerepo

import (
	"context"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BlockedDateRepository struct{}

func NewBlockedDateRepository() *BlockedDateRepository {
	return &BlockedDateRepository{}
}

// Re-blocking an already blocked night is a no-op, so bulk blocks are
// idempotent.
const insertBlockedDateSQL = `
INSERT INTO blocked_dates (unit_id, blocked_date)
VALUES ($1, $2)
ON CONFLICT (unit_id, blocked_date) DO NOTHING`

func (r *BlockedDateRepository) BulkInsert(ctx context.Context, dbtx db.DBTX, unitID uuid.UUID, dates []time.Time) error {
	for _, day := range dates {
		if _, err := dbtx.Exec(ctx, insertBlockedDateSQL, unitID, pgconv.DateToPgtype(day)); err != nil {
			return infra.WrapRepoErr("failed to insert blocked date", err)
		}
	}
	return nil
}

const deleteBlockedRangeSQL = `
DELETE FROM blocked_dates
WHERE unit_id = $1 AND blocked_date >= $2 AND blocked_date < $3`

func (r *BlockedDateRepository) DeleteRange(ctx context.Context, dbtx db.DBTX, unitID uuid.UUID, stay booking.StayRange) error {
	_, err := dbtx.Exec(ctx, deleteBlockedRangeSQL, unitID,
		pgconv.DateToPgtype(stay.CheckIn()), pgconv.DateToPgtype(stay.CheckOut()))
	if err != nil {
		return infra.WrapRepoErr("failed to delete blocked dates", err)
	}
	return nil
}
