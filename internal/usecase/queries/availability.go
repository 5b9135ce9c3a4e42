package queries

import (
	"context"
	"log/slog"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"

	"github.com/google/uuid"
)

// AvailabilityReads is the store surface the resolver needs. Implementations
// live in infra/readstore.
type AvailabilityReads interface {
	// OccupyingStays: reservations for the unit whose status still holds the
	// dates, matched by id OR legacy code, minus the excluded ids.
	OccupyingStays(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) ([]*StayView, error)
	BlockedDates(ctx context.Context, ref unit.Ref, stay booking.StayRange) ([]time.Time, error)
}

type AvailabilityQueries interface {
	// CheckAvailability reports whether the unit is free for the range. Any
	// read failure is treated as unavailable rather than surfaced: a
	// transient store error must never let a double-booking through.
	CheckAvailability(ctx context.Context, ref unit.Ref, stay booking.StayRange) bool
	// CheckAvailabilityExcluding is the edit-mode variant: the reservation
	// being edited and its group siblings do not conflict with themselves.
	CheckAvailabilityExcluding(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) bool
}

type availabilityQueriesImpl struct {
	reads  AvailabilityReads
	logger *slog.Logger
}

func NewAvailabilityQueries(reads AvailabilityReads, logger *slog.Logger) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, logger: logger}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, ref unit.Ref, stay booking.StayRange) bool {
	return q.CheckAvailabilityExcluding(ctx, ref, stay, nil)
}

func (q *availabilityQueriesImpl) CheckAvailabilityExcluding(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) bool {
	stays, err := q.reads.OccupyingStays(ctx, ref, stay, excludeIDs)
	if err != nil {
		q.logger.Error("availability read failed, treating unit as unavailable",
			"unit", ref.String(), "error", err.Error())
		return false
	}

	for _, s := range stays {
		existing, err := booking.NewStayRange(s.CheckIn, s.CheckOut)
		if err != nil {
			// A degenerate stored range cannot be trusted; fail closed.
			q.logger.Warn("stored reservation has degenerate range", "reservation_id", s.ID)
			return false
		}
		if existing.Overlaps(stay) {
			return false
		}
	}

	blocked, err := q.reads.BlockedDates(ctx, ref, stay)
	if err != nil {
		q.logger.Error("blocked-date read failed, treating unit as unavailable",
			"unit", ref.String(), "error", err.Error())
		return false
	}

	for _, day := range blocked {
		if stay.Contains(day) {
			return false
		}
	}

	return true
}
