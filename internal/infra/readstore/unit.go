package readstore

import (
	"context"

	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"
	"cabinstay/internal/usecase/shared"
)

type UnitReadStore struct {
	db db.DBTX
}

func NewUnitReadStore(dbtx db.DBTX) *UnitReadStore {
	return &UnitReadStore{db: dbtx}
}

const findUnitByRefSQL = `
SELECT id, code, name, weekday_rate_cents, weekend_rate_cents, is_active
FROM units
WHERE ($1::uuid IS NOT NULL AND id = $1)
   OR ($2::text <> '' AND lower(code) = lower($2))
LIMIT 1`

// FindByRef resolves a unit by id or legacy code, whichever the caller has.
func (s *UnitReadStore) FindByRef(ctx context.Context, ref unit.Ref) (*shared.UnitSnapshot, error) {
	var snap shared.UnitSnapshot

	err := s.db.QueryRow(ctx, findUnitByRefSQL,
		pgconv.UUIDPtrToPgtype(refIDPtr(ref)),
		ref.Code(),
	).Scan(&snap.ID, &snap.Code, &snap.Name, &snap.WeekdayRateCents, &snap.WeekendRateCents, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unit by ref", err)
	}

	return &snap, nil
}
