package readstore

import (
	"context"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilityReadStore adapts the booking and blocked-date stores to the
// read-side availability resolver.
type AvailabilityReadStore struct {
	bookings *BookingReadStore
	blocked  *BlockedDateReadStore
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		bookings: NewBookingReadStore(dbtx),
		blocked:  NewBlockedDateReadStore(dbtx),
	}
}

func (s *AvailabilityReadStore) OccupyingStays(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) ([]*queries.StayView, error) {
	snaps, err := s.bookings.FindOccupyingStays(ctx, ref, stay, excludeIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*queries.StayView, len(snaps))
	for i, snap := range snaps {
		views[i] = &queries.StayView{
			ID:       snap.ID,
			UnitID:   snap.UnitID,
			UnitCode: snap.UnitCode,
			CheckIn:  snap.CheckIn,
			CheckOut: snap.CheckOut,
		}
	}
	return views, nil
}

func (s *AvailabilityReadStore) BlockedDates(ctx context.Context, ref unit.Ref, stay booking.StayRange) ([]time.Time, error) {
	return s.blocked.DatesInRange(ctx, ref, stay)
}
