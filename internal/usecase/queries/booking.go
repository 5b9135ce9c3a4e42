package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingFilter struct {
	Status   *string
	UnitID   *uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindGroupMembers(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error)
	List(ctx context.Context, filter BookingFilter, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// GroupMembers lists every reservation row sharing the group, leader
	// included.
	GroupMembers(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error)
	List(ctx context.Context, filter BookingFilter, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) GroupMembers(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error) {
	return q.repo.FindGroupMembers(ctx, groupID)
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var afterCreatedAt *time.Time
	var afterID *uuid.UUID
	if after != nil && after.After != "" {
		t, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, err
		}
		afterCreatedAt = &t
		afterID = &id
	}

	rows, err := q.repo.List(ctx, filter, afterCreatedAt, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}
