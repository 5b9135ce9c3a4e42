package readstore

import (
	"context"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type BlockedDateReadStore struct {
	db db.DBTX
}

func NewBlockedDateReadStore(dbtx db.DBTX) *BlockedDateReadStore {
	return &BlockedDateReadStore{db: dbtx}
}

const blockedDatesInRangeSQL = `
SELECT b.blocked_date
FROM blocked_dates b
JOIN units u ON u.id = b.unit_id
WHERE (($1::uuid IS NOT NULL AND b.unit_id = $1)
   OR  ($2::text <> '' AND lower(u.code) = lower($2)))
  AND b.blocked_date >= $3 AND b.blocked_date < $4
ORDER BY b.blocked_date`

// DatesInRange returns the blocked nights falling inside [checkIn, checkOut).
func (s *BlockedDateReadStore) DatesInRange(ctx context.Context, ref unit.Ref, stay booking.StayRange) ([]time.Time, error) {
	rows, err := s.db.Query(ctx, blockedDatesInRangeSQL,
		pgconv.UUIDPtrToPgtype(refIDPtr(ref)),
		ref.Code(),
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocked dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day pgtype.Date
		if err := rows.Scan(&day); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked date", err)
		}
		dates = append(dates, pgconv.DateFromPgtype(day))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked dates", err)
	}

	return dates, nil
}
