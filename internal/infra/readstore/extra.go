package readstore

import (
	"context"

	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExtraReadStore struct {
	db db.DBTX
}

func NewExtraReadStore(dbtx db.DBTX) *ExtraReadStore {
	return &ExtraReadStore{db: dbtx}
}

const findExtrasByIDsSQL = `
SELECT id, name, price_cents, is_active
FROM extras
WHERE id = ANY($1::uuid[])`

func (s *ExtraReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*shared.ExtraSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, findExtrasByIDsSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find extras by ids", err)
	}
	defer rows.Close()

	var snaps []*shared.ExtraSnapshot
	for rows.Next() {
		var snap shared.ExtraSnapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.PriceCents, &snap.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan extra", err)
		}
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate extras", err)
	}

	return snaps, nil
}
