package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"
	"cabinstay/internal/usecase/queries"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSQL = `
SELECT r.id, r.unit_id, r.unit_code, COALESCE(u.name, r.unit_code) AS unit_name,
       r.check_in, r.check_out,
       r.guest_name, r.guest_email, r.guest_phone,
       r.status, r.payment_status,
       r.room_subtotal_cents, r.extras_total_cents, r.discount_amount_cents,
       r.coupon_code, r.package_id,
       r.group_reservation_id, r.group_reservation_code,
       r.created_at, r.updated_at
FROM reservations r
LEFT JOIN units u ON u.id = r.unit_id
WHERE r.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := s.scanBookingView(ctx, id)
	if err != nil {
		return nil, err
	}

	extras, err := s.findExtras(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Extras = extras

	return view, nil
}

func (s *BookingReadStore) scanBookingView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		unitID    pgtype.UUID
		phone     pgtype.Text
		checkIn   pgtype.Date
		checkOut  pgtype.Date
		coupon    pgtype.Text
		packageID pgtype.UUID
		groupID   pgtype.UUID
		groupCode pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		unitCode  string
	)

	err := s.db.QueryRow(ctx, bookingViewSQL, id).Scan(
		&view.ID, &unitID, &unitCode, &view.UnitName,
		&checkIn, &checkOut,
		&view.GuestName, &view.GuestEmail, &phone,
		&view.Status, &view.PaymentStatus,
		&view.RoomSubtotal, &view.ExtrasTotal, &view.DiscountAmount,
		&coupon, &packageID,
		&groupID, &groupCode,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}

	if p := pgconv.UUIDPtrFromPgtype(unitID); p != nil {
		view.UnitID = *p
	}
	view.UnitCode = unitCode
	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.Nights = int32(view.CheckOut.Sub(view.CheckIn).Hours() / 24)
	view.GuestPhone = pgconv.StringPtrFromPgtype(phone)
	view.CouponCode = pgconv.StringPtrFromPgtype(coupon)
	view.PackageID = pgconv.UUIDPtrFromPgtype(packageID)
	view.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
	view.GroupCode = pgconv.StringPtrFromPgtype(groupCode)
	view.Total = view.RoomSubtotal + view.ExtrasTotal - view.DiscountAmount
	if view.Total < 0 {
		view.Total = 0
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}

const bookingExtrasSQL = `
SELECT extra_id, name, unit_price_cents, quantity
FROM reservation_extras
WHERE reservation_id = $1
ORDER BY name`

func (s *BookingReadStore) findExtras(ctx context.Context, bookingID uuid.UUID) ([]queries.ExtraLineView, error) {
	rows, err := s.db.Query(ctx, bookingExtrasSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking extras", err)
	}
	defer rows.Close()

	var extras []queries.ExtraLineView
	for rows.Next() {
		var line queries.ExtraLineView
		if err := rows.Scan(&line.ExtraID, &line.Name, &line.UnitPriceCents, &line.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking extra", err)
		}
		line.SubtotalCents = line.UnitPriceCents * int64(line.Quantity)
		extras = append(extras, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking extras", err)
	}

	return extras, nil
}

const groupMembersSQL = `
SELECT r.id, r.unit_id, COALESCE(u.name, r.unit_code) AS unit_name,
       r.check_in, r.check_out, r.guest_name, r.status,
       GREATEST(r.room_subtotal_cents + r.extras_total_cents - r.discount_amount_cents, 0) AS total_cents,
       r.group_reservation_id, r.created_at
FROM reservations r
LEFT JOIN units u ON u.id = r.unit_id
WHERE r.group_reservation_id = $1
ORDER BY (r.id = r.group_reservation_id) DESC, r.created_at`

func (s *BookingReadStore) FindGroupMembers(ctx context.Context, groupID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, groupMembersSQL, groupID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find group members", err)
	}
	defer rows.Close()

	items, err := scanListItems(rows)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// List pages through reservations newest-first with a (created_at, id) keyset.
func (s *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, afterCreatedAt *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conds = append(conds, "r.status = "+arg(*filter.Status))
	}
	if filter.UnitID != nil {
		conds = append(conds, "r.unit_id = "+arg(*filter.UnitID))
	}
	if filter.FromDate != nil {
		conds = append(conds, "r.check_out > "+arg(pgconv.DateToPgtype(*filter.FromDate)))
	}
	if filter.ToDate != nil {
		conds = append(conds, "r.check_in < "+arg(pgconv.DateToPgtype(*filter.ToDate)))
	}
	if afterCreatedAt != nil && afterID != nil {
		conds = append(conds, fmt.Sprintf("(r.created_at, r.id) < (%s, %s)",
			arg(pgconv.TimeToPgtype(*afterCreatedAt)), arg(*afterID)))
	}

	sql := `
SELECT r.id, r.unit_id, COALESCE(u.name, r.unit_code) AS unit_name,
       r.check_in, r.check_out, r.guest_name, r.status,
       GREATEST(r.room_subtotal_cents + r.extras_total_cents - r.discount_amount_cents, 0) AS total_cents,
       r.group_reservation_id, r.created_at
FROM reservations r
LEFT JOIN units u ON u.id = r.unit_id`
	if len(conds) > 0 {
		sql += "\nWHERE " + strings.Join(conds, " AND ")
	}
	sql += "\nORDER BY r.created_at DESC, r.id DESC\nLIMIT " + arg(limit)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

const bookingSnapshotSQL = `
SELECT id, unit_id, unit_code, check_in, check_out, status,
       coupon_code, group_reservation_id, group_reservation_code, guest_email
FROM reservations
WHERE id = $1`

func (s *BookingReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := s.db.QueryRow(ctx, bookingSnapshotSQL, id)
	snap, err := scanSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}
	return snap, nil
}

const groupSiblingsSQL = `
SELECT id, unit_id, unit_code, check_in, check_out, status,
       coupon_code, group_reservation_id, group_reservation_code, guest_email
FROM reservations
WHERE group_reservation_id = $1`

func (s *BookingReadStore) FindGroupSiblings(ctx context.Context, groupID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	rows, err := s.db.Query(ctx, groupSiblingsSQL, groupID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find group siblings", err)
	}
	defer rows.Close()

	var snaps []*shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan group sibling", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate group siblings", err)
	}
	return snaps, nil
}

// occupyingStaysSQL prefilters on the half-open overlap in SQL; the resolver
// re-verifies in the domain. Rows matching any excluded id are the caller's
// own reservation and its siblings.
const occupyingStaysSQL = `
SELECT id, unit_id, unit_code, check_in, check_out, status,
       coupon_code, group_reservation_id, group_reservation_code, guest_email
FROM reservations
WHERE (($1::uuid IS NOT NULL AND unit_id = $1)
   OR  ($2::text <> '' AND lower(unit_code) = lower($2)))
  AND status NOT IN ('cancelled', 'no_show')
  AND check_in < $4 AND check_out > $3
  AND NOT (id = ANY($5::uuid[]))`

func (s *BookingReadStore) FindOccupyingStays(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) ([]*shared.BookingSnapshot, error) {
	if excludeIDs == nil {
		excludeIDs = []uuid.UUID{}
	}

	rows, err := s.db.Query(ctx, occupyingStaysSQL,
		pgconv.UUIDPtrToPgtype(refIDPtr(ref)),
		ref.Code(),
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
		excludeIDs,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find occupying stays", err)
	}
	defer rows.Close()

	var snaps []*shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupying stay", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupying stays", err)
	}
	return snaps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*shared.BookingSnapshot, error) {
	var (
		snap      shared.BookingSnapshot
		unitID    pgtype.UUID
		unitCode  pgtype.Text
		checkIn   pgtype.Date
		checkOut  pgtype.Date
		coupon    pgtype.Text
		groupID   pgtype.UUID
		groupCode pgtype.Text
	)

	err := row.Scan(&snap.ID, &unitID, &unitCode, &checkIn, &checkOut, &snap.Status,
		&coupon, &groupID, &groupCode, &snap.GuestEmail)
	if err != nil {
		return nil, err
	}

	if p := pgconv.UUIDPtrFromPgtype(unitID); p != nil {
		snap.UnitID = *p
	}
	if p := pgconv.StringPtrFromPgtype(unitCode); p != nil {
		snap.UnitCode = *p
	}
	snap.CheckIn = pgconv.DateFromPgtype(checkIn)
	snap.CheckOut = pgconv.DateFromPgtype(checkOut)
	snap.CouponCode = pgconv.StringPtrFromPgtype(coupon)
	snap.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
	snap.GroupCode = pgconv.StringPtrFromPgtype(groupCode)

	return &snap, nil
}

func scanListItems(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.BookingListItem, error) {
	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			unitID    pgtype.UUID
			checkIn   pgtype.Date
			checkOut  pgtype.Date
			groupID   pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(&item.ID, &unitID, &item.UnitName, &checkIn, &checkOut,
			&item.GuestName, &item.Status, &item.TotalCents, &groupID, &createdAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		if p := pgconv.UUIDPtrFromPgtype(unitID); p != nil {
			item.UnitID = *p
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.GroupID = pgconv.UUIDPtrFromPgtype(groupID)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		it := item
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return items, nil
}
