package readstore

import (
	"cabinstay/internal/domain/unit"

	"github.com/google/uuid"
)

func refIDPtr(ref unit.Ref) *uuid.UUID {
	if ref.ID() == uuid.Nil {
		return nil
	}
	id := ref.ID()
	return &id
}
