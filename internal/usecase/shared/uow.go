package shared

import (
	"context"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	BlockedDates() BlockedDateRepository
	Coupons() CouponRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	// LockUnits takes a transaction-scoped advisory lock per unit so the
	// availability re-check and the insert are serialized against concurrent
	// booking attempts for the same units. IDs must be sorted by the caller.
	LockUnits(ctx context.Context, unitIDs []uuid.UUID) error
	DB() db.DBTX
}

type CommandReads interface {
	UnitByRef(ctx context.Context, ref unit.Ref) (*UnitSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	CouponUsesByGuest(ctx context.Context, code, guestEmail string) (int32, error)
	ExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]*ExtraSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	GroupSiblings(ctx context.Context, groupID uuid.UUID) ([]*BookingSnapshot, error)
	// OccupyingStays returns reservations holding dates against the unit
	// (status still occupying, id/code identity match), minus excluded ids.
	OccupyingStays(ctx context.Context, ref unit.Ref, stay booking.StayRange, excludeIDs []uuid.UUID) ([]*BookingSnapshot, error)
	BlockedDates(ctx context.Context, ref unit.Ref, stay booking.StayRange) ([]time.Time, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	ReplaceExtras(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, lines []booking.ExtraLine) error
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status, now time.Time) error
	UpdatePayment(ctx context.Context, dbtx db.DBTX, id uuid.UUID, payment booking.PaymentStatus, now time.Time) error
	DeleteGroupMembers(ctx context.Context, dbtx db.DBTX, groupID, leaderID uuid.UUID) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type BlockedDateRepository interface {
	BulkInsert(ctx context.Context, dbtx db.DBTX, unitID uuid.UUID, dates []time.Time) error
	DeleteRange(ctx context.Context, dbtx db.DBTX, unitID uuid.UUID, stay booking.StayRange) error
}

type CouponRepository interface {
	// Redeem increments current_uses, guarded by the usage cap. Returns false
	// when the cap was hit between validation and redemption.
	Redeem(ctx context.Context, dbtx db.DBTX, couponID uuid.UUID) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
