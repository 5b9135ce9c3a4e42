package writerepo

import (
	"context"
	"errors"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/infra"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeForeignKeyViolated = "23503"
	pgErrCodeExclusionViolated  = "23P01"
)

// classifyWriteErr maps Postgres constraint violations onto repository kinds.
// An exclusion violation comes from the calendar EXCLUDE constraint and means
// a concurrent writer took the dates first.
func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolated:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO reservations (
	id, unit_id, unit_code, check_in, check_out,
	guest_name, guest_email, guest_phone,
	status, payment_status,
	room_subtotal_cents, extras_total_cents, discount_amount_cents,
	coupon_code, package_id, group_reservation_id, group_reservation_code,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $18
)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		pgconv.UUIDPtrToPgtype(unitIDPtr(b)),
		b.UnitRef().Code(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guest().Name(),
		b.Guest().Email(),
		pgconv.StringPtrToPgtype(optional(b.Guest().Phone())),
		string(b.Status()),
		string(b.PaymentStatus()),
		b.RoomSubtotal().Cents(),
		b.ExtrasTotal().Cents(),
		b.DiscountAmount().Cents(),
		pgconv.StringPtrToPgtype(b.CouponCode()),
		pgconv.UUIDPtrToPgtype(b.PackageID()),
		pgconv.UUIDPtrToPgtype(b.GroupID()),
		pgconv.StringPtrToPgtype(b.GroupCode()),
		pgconv.TimeToPgtype(b.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create reservation", err)
	}
	return id, nil
}

const updateBookingSQL = `
UPDATE reservations SET
	unit_id = $2, unit_code = $3, check_in = $4, check_out = $5,
	guest_name = $6, guest_email = $7, guest_phone = $8,
	room_subtotal_cents = $9, extras_total_cents = $10, discount_amount_cents = $11,
	coupon_code = $12, package_id = $13,
	group_reservation_id = $14, group_reservation_code = $15,
	updated_at = $16
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		b.ID(),
		pgconv.UUIDPtrToPgtype(unitIDPtr(b)),
		b.UnitRef().Code(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guest().Name(),
		b.Guest().Email(),
		pgconv.StringPtrToPgtype(optional(b.Guest().Phone())),
		b.RoomSubtotal().Cents(),
		b.ExtrasTotal().Cents(),
		b.DiscountAmount().Cents(),
		pgconv.StringPtrToPgtype(b.CouponCode()),
		pgconv.UUIDPtrToPgtype(b.PackageID()),
		pgconv.UUIDPtrToPgtype(b.GroupID()),
		pgconv.StringPtrToPgtype(b.GroupCode()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return classifyWriteErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteBookingExtrasSQL = `DELETE FROM reservation_extras WHERE reservation_id = $1`
const insertBookingExtraSQL = `
INSERT INTO reservation_extras (reservation_id, extra_id, name, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)`

// ReplaceExtras rewrites the booking's extra lines wholesale.
func (r *BookingRepository) ReplaceExtras(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, lines []booking.ExtraLine) error {
	if _, err := dbtx.Exec(ctx, deleteBookingExtrasSQL, bookingID); err != nil {
		return classifyWriteErr("failed to clear reservation extras", err)
	}
	for _, line := range lines {
		_, err := dbtx.Exec(ctx, insertBookingExtraSQL,
			bookingID, line.ExtraID, line.Name, line.UnitPrice.Cents(), line.Quantity)
		if err != nil {
			return classifyWriteErr("failed to insert reservation extra", err)
		}
	}
	return nil
}

const updateStatusSQL = `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status, now time.Time) error {
	tag, err := dbtx.Exec(ctx, updateStatusSQL, id, string(status), pgconv.TimeToPgtype(now))
	if err != nil {
		return classifyWriteErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const updatePaymentSQL = `UPDATE reservations SET payment_status = $2, updated_at = $3 WHERE id = $1`

func (r *BookingRepository) UpdatePayment(ctx context.Context, dbtx db.DBTX, id uuid.UUID, payment booking.PaymentStatus, now time.Time) error {
	tag, err := dbtx.Exec(ctx, updatePaymentSQL, id, string(payment), pgconv.TimeToPgtype(now))
	if err != nil {
		return classifyWriteErr("failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteGroupMembersSQL = `
DELETE FROM reservations
WHERE group_reservation_id = $1 AND id <> $2`

// DeleteGroupMembers removes every row of the group except the leader; extra
// lines go with them via ON DELETE CASCADE.
func (r *BookingRepository) DeleteGroupMembers(ctx context.Context, dbtx db.DBTX, groupID, leaderID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, deleteGroupMembersSQL, groupID, leaderID); err != nil {
		return classifyWriteErr("failed to delete group members", err)
	}
	return nil
}

const deleteBookingSQL = `DELETE FROM reservations WHERE id = $1`

func (r *BookingRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return classifyWriteErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func unitIDPtr(b *booking.Booking) *uuid.UUID {
	if b.UnitRef().ID() == uuid.Nil {
		return nil
	}
	id := b.UnitRef().ID()
	return &id
}
