package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra/db"
	"cabinstay/internal/infra/readstore"
	"cabinstay/internal/infra/writerepo"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo      shared.BookingRepository
	blockedDateRepo  shared.BlockedDateRepository
	couponRepo       shared.CouponRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = writerepo.NewBookingRepository()
	}
	return t.bookingRepo
}

func (t *pgTx) BlockedDates() shared.BlockedDateRepository {
	if t.blockedDateRepo == nil {
		t.blockedDateRepo = writerepo.NewBlockedDateRepository()
	}
	return t.blockedDateRepo
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.couponRepo == nil {
		t.couponRepo = writerepo.NewCouponRepository()
	}
	return t.couponRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = writerepo.NewNotificationRepository()
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

// LockUnits serializes concurrent booking attempts per unit. The locks are
// transaction-scoped and taken in the caller's sorted order, so two attempts
// touching overlapping unit sets cannot deadlock each other.
func (t *pgTx) LockUnits(ctx context.Context, unitIDs []uuid.UUID) error {
	for _, id := range unitIDs {
		if _, err := t.dbtx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, id); err != nil {
			return errs.Wrap(err, "failed to take unit advisory lock")
		}
	}
	return nil
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	unitStore        *readstore.UnitReadStore
	couponStore      *readstore.CouponReadStore
	extraStore       *readstore.ExtraReadStore
	bookingStore     *readstore.BookingReadStore
	blockedDateStore *readstore.BlockedDateReadStore
}

func (r *commandReads) units() *readstore.UnitReadStore {
	if r.unitStore == nil {
		r.unitStore = readstore.NewUnitReadStore(r.dbtx)
	}
	return r.unitStore
}

func (r *commandReads) coupons() *readstore.CouponReadStore {
	if r.couponStore == nil {
		r.couponStore = readstore.NewCouponReadStore(r.dbtx)
	}
	return r.couponStore
}

func (r *commandReads) extras() *readstore.ExtraReadStore {
	if r.extraStore == nil {
		r.extraStore = readstore.NewExtraReadStore(r.dbtx)
	}
	return r.extraStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) blockedDates() *readstore.BlockedDateReadStore {
	if r.blockedDateStore == nil {
		r.blockedDateStore = readstore.NewBlockedDateReadStore(r.dbtx)
	}
	return r.blockedDateStore
}

func (r *commandReads) UnitByRef(ctx context.Context, ref unit.Ref) (*shared.UnitSnapshot, error) {
	return r.units().FindByRef(ctx, ref)
}

func (r *commandReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	return r.coupons().FindByCode(ctx, code)
}

func (r *commandReads) CouponUsesByGuest(ctx context.Context, code, guestEmail string) (int32, error) {
	return r.coupons().UsesByGuest(ctx, code, guestEmail)
}

func (r *commandReads) ExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]*shared.ExtraSnapshot, error) {
	return r.extras().FindByIDs(ctx, ids)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookings().FindSnapshotByID(ctx, id)
}

func (r *commandReads) GroupSiblings(ctx context.Context, groupID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	return r.bookings().FindGroupSiblings(ctx, groupID)
}

func (r *commandReads) OccupyingStays(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) ([]*shared.BookingSnapshot, error) {
	return r.bookings().FindOccupyingStays(ctx, ref, stay, excludeIDs)
}

func (r *commandReads) BlockedDates(ctx context.Context, ref unit.Ref, stay booking.StayRange) ([]time.Time, error) {
	return r.blockedDates().DatesInRange(ctx, ref, stay)
}
