package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"cabinstay/internal/domain/booking"
	"cabinstay/internal/domain/coupon"
	"cabinstay/internal/domain/extra"
	"cabinstay/internal/domain/unit"
	"cabinstay/internal/infra"
	"cabinstay/internal/pkg/clock"
	"cabinstay/internal/pkg/errs"
	"cabinstay/internal/usecase/queries"
	"cabinstay/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingInput is a fully parsed booking attempt. The handler layer converts
// request DTOs into this before the command runs; no raw strings cross this
// boundary.
type BookingInput struct {
	Units             []unit.Ref
	Stay              booking.StayRange
	Guest             booking.Guest
	Extras            []extra.Selection
	CouponCode        *string
	PackageID         *uuid.UUID
	PackagePriceCents *int64
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in BookingInput) (*queries.BookingView, error)
	// UpdateBooking re-prices and re-persists a booking. Only group leaders
	// (or ungrouped bookings) can be edited; the whole group is reconciled.
	UpdateBooking(ctx context.Context, id uuid.UUID, in BookingInput) (*queries.BookingView, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, next booking.Status) error
	ChangePayment(ctx context.Context, id uuid.UUID, next booking.PaymentStatus) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	assembler *booking.Assembler
	views     queries.BookingQueries
	clock     clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	assembler *booking.Assembler,
	views queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		assembler: assembler,
		views:     views,
		clock:     clk,
	}
}

func (c *bookingUseCaseImpl) CreateBooking(ctx context.Context, in BookingInput) (*queries.BookingView, error) {
	prepared, err := c.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	var leaderID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockUnits(ctx, sortedUnitIDs(prepared.units)); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, u := range prepared.units {
			if err := ensureAvailable(ctx, tx.Reads(), u, in.Stay, nil); err != nil {
				return err
			}
		}

		group, err := c.assembler.Assemble(booking.AssembleInput{
			Units:        prepared.units,
			Stay:         in.Stay,
			Guest:        in.Guest,
			Extras:       prepared.extras,
			Coupon:       prepared.coupon,
			PackageID:    in.PackageID,
			PackagePrice: prepared.packagePrice,
		})
		if err != nil {
			return shared.MarkAssembleError(err)
		}

		leaderID, err = c.persistGroup(ctx, tx, group)
		if err != nil {
			return err
		}

		if prepared.couponSnap != nil {
			if err := c.redeemCoupon(ctx, tx, prepared.couponSnap.ID); err != nil {
				return err
			}
		}

		return c.enqueueNotification(ctx, tx, "booking_created", group)
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, leaderID)
}

func (c *bookingUseCaseImpl) UpdateBooking(ctx context.Context, id uuid.UUID, in BookingInput) (*queries.BookingView, error) {
	reads := c.uow.CommandReads()

	existing, err := reads.BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing.GroupID != nil && *existing.GroupID != existing.ID {
		return nil, errs.Mark(booking.ErrNotGroupLeader, errs.ErrDomainValidation)
	}

	excludeIDs := []uuid.UUID{id}
	if existing.GroupID != nil {
		siblings, err := reads.GroupSiblings(ctx, *existing.GroupID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		excludeIDs = excludeIDs[:0]
		for _, s := range siblings {
			excludeIDs = append(excludeIDs, s.ID)
		}
	}

	prepared, err := c.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	// Redeem only when the applied code actually changed; re-saving a booking
	// with the same coupon must not consume another use.
	couponChanged := prepared.coupon != nil &&
		(existing.CouponCode == nil || *existing.CouponCode != prepared.coupon.Code().String())

	edit := &booking.EditContext{
		BookingID: id,
		GroupID:   existing.GroupID,
		GroupCode: existing.GroupCode,
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockUnits(ctx, sortedUnitIDs(prepared.units)); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, u := range prepared.units {
			if err := ensureAvailable(ctx, tx.Reads(), u, in.Stay, excludeIDs); err != nil {
				return err
			}
		}

		group, err := c.assembler.Assemble(booking.AssembleInput{
			Units:        prepared.units,
			Stay:         in.Stay,
			Guest:        in.Guest,
			Extras:       prepared.extras,
			Coupon:       prepared.coupon,
			PackageID:    in.PackageID,
			PackagePrice: prepared.packagePrice,
			Edit:         edit,
		})
		if err != nil {
			return shared.MarkAssembleError(err)
		}

		if existing.GroupID != nil {
			if err := tx.Bookings().DeleteGroupMembers(ctx, tx.DB(), *existing.GroupID, id); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), group.Leader); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrUnitUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Bookings().ReplaceExtras(ctx, tx.DB(), id, group.Leader.Extras()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, m := range group.Members {
			if _, err := tx.Bookings().Create(ctx, tx.DB(), m); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.ErrUnitUnavailable
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		if couponChanged {
			if err := c.redeemCoupon(ctx, tx, prepared.couponSnap.ID); err != nil {
				return err
			}
		}

		return c.enqueueNotification(ctx, tx, "booking_updated", group)
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, id)
}

func (c *bookingUseCaseImpl) ChangeStatus(ctx context.Context, id uuid.UUID, next booking.Status) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		current := booking.Status(snap.Status)
		if !next.IsValid() || !current.CanTransitionTo(next) {
			return errs.ErrInvalidTransition
		}

		now := c.clock.Now()
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), id, next, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// A leader's transition drags its members along so the whole group
		// holds or releases the calendar together.
		if snap.GroupID != nil && *snap.GroupID == snap.ID {
			siblings, err := tx.Reads().GroupSiblings(ctx, *snap.GroupID)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			for _, s := range siblings {
				if s.ID == id {
					continue
				}
				if !booking.Status(s.Status).CanTransitionTo(next) {
					continue
				}
				if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), s.ID, next, now); err != nil {
					return errs.Mark(err, errs.ErrDatabaseOperationFailed)
				}
			}
		}
		return nil
	})
}

func (c *bookingUseCaseImpl) ChangePayment(ctx context.Context, id uuid.UUID, next booking.PaymentStatus) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.GroupID != nil && *snap.GroupID != snap.ID {
			return errs.Mark(booking.ErrNotGroupLeader, errs.ErrDomainValidation)
		}
		if !next.IsValid() {
			return errs.ErrDomainValidation
		}

		if err := tx.Bookings().UpdatePayment(ctx, tx.DB(), id, next, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.GroupID != nil && *snap.GroupID != snap.ID {
			return errs.Mark(booking.ErrNotGroupLeader, errs.ErrDomainValidation)
		}

		if snap.GroupID != nil {
			if err := tx.Bookings().DeleteGroupMembers(ctx, tx.DB(), *snap.GroupID, id); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if err := tx.Bookings().Delete(ctx, tx.DB(), id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// preparedBooking holds everything resolved outside the write transaction.
type preparedBooking struct {
	units        []*unit.Unit
	extras       []booking.ExtraLine
	coupon       *coupon.Coupon
	couponSnap   *shared.CouponSnapshot
	packagePrice *booking.Money
}

func (c *bookingUseCaseImpl) prepare(ctx context.Context, in BookingInput) (*preparedBooking, error) {
	if len(in.Units) == 0 {
		return nil, errs.ErrNoUnitsSelected
	}

	reads := c.uow.CommandReads()

	units := make([]*unit.Unit, len(in.Units))
	for i, ref := range in.Units {
		snap, err := reads.UnitByRef(ctx, ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrUnitNotFound
			}
			return nil, errs.Mark(err, errs.ErrUnitNotFound)
		}
		u, err := shared.UnitFromSnapshot(snap)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		units[i] = u
	}

	extras, err := shared.ResolveExtraLines(ctx, reads, in.Extras)
	if err != nil {
		return nil, err
	}

	prepared := &preparedBooking{units: units, extras: extras}

	if in.CouponCode != nil {
		snap, err := reads.CouponByCode(ctx, *in.CouponCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.ErrCouponNotFound
			}
			return nil, errs.Mark(err, errs.ErrCouponNotFound)
		}
		coup, err := shared.CouponFromSnapshot(snap)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrCouponRejected)
		}
		if err := c.checkGuestUsage(ctx, reads, snap, in.Guest.Email()); err != nil {
			return nil, err
		}
		prepared.coupon = coup
		prepared.couponSnap = snap
	}

	if in.PackagePriceCents != nil {
		p := booking.NewMoney(*in.PackagePriceCents)
		prepared.packagePrice = &p
	}

	return prepared, nil
}

func (c *bookingUseCaseImpl) checkGuestUsage(ctx context.Context, reads shared.CommandReads, snap *shared.CouponSnapshot, guestEmail string) error {
	if snap.MaxUsesPerGuest == nil {
		return nil
	}
	uses, err := reads.CouponUsesByGuest(ctx, snap.Code, guestEmail)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if uses >= *snap.MaxUsesPerGuest {
		return errs.Mark(coupon.ErrCouponExhausted, errs.ErrCouponRejected)
	}
	return nil
}

func (c *bookingUseCaseImpl) persistGroup(ctx context.Context, tx shared.Tx, group *booking.Group) (uuid.UUID, error) {
	leaderID, err := tx.Bookings().Create(ctx, tx.DB(), group.Leader)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, errs.ErrUnitUnavailable
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(group.Leader.Extras()) > 0 {
		if err := tx.Bookings().ReplaceExtras(ctx, tx.DB(), leaderID, group.Leader.Extras()); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	for _, m := range group.Members {
		if _, err := tx.Bookings().Create(ctx, tx.DB(), m); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, errs.ErrUnitUnavailable
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return leaderID, nil
}

func (c *bookingUseCaseImpl) redeemCoupon(ctx context.Context, tx shared.Tx, couponID uuid.UUID) error {
	ok, err := tx.Coupons().Redeem(ctx, tx.DB(), couponID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		// The cap filled up between validation and redemption.
		return errs.Mark(coupon.ErrCouponExhausted, errs.ErrCouponRejected)
	}
	return nil
}

func (c *bookingUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, event string, group *booking.Group) error {
	unitIDs := make([]uuid.UUID, 0, 1+len(group.Members))
	for _, b := range group.All() {
		unitIDs = append(unitIDs, b.UnitRef().ID())
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":  group.Leader.ID(),
		"guest_email": group.Leader.Guest().Email(),
		"unit_ids":    unitIDs,
		"total_cents": group.Total().Cents(),
		"type":        event,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", event, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// ensureAvailable is the in-transaction recheck. It mirrors the read-side
// resolver but fails with a sentinel naming the unit, and it runs under the
// advisory locks so a concurrent attempt for the same unit serializes behind
// it.
func ensureAvailable(ctx context.Context, reads shared.CommandReads, u *unit.Unit, stay booking.StayRange, excludeIDs []uuid.UUID) error {
	ref := u.Ref()

	stays, err := reads.OccupyingStays(ctx, ref, stay, excludeIDs)
	if err != nil {
		slog.Error("availability recheck failed", "unit", ref.String(), "error", err.Error())
		return errs.Mark(err, errs.ErrUnitUnavailable)
	}
	for _, s := range stays {
		existing, err := booking.NewStayRange(s.CheckIn, s.CheckOut)
		if err != nil {
			return errs.Wrap(errs.ErrUnitUnavailable, u.Name())
		}
		if existing.Overlaps(stay) {
			return errs.Wrap(errs.ErrUnitUnavailable, u.Name())
		}
	}

	blocked, err := reads.BlockedDates(ctx, ref, stay)
	if err != nil {
		slog.Error("blocked-date recheck failed", "unit", ref.String(), "error", err.Error())
		return errs.Mark(err, errs.ErrUnitUnavailable)
	}
	for _, day := range blocked {
		if stay.Contains(day) {
			return errs.Wrap(errs.ErrUnitUnavailable, u.Name())
		}
	}
	return nil
}

func sortedUnitIDs(units []*unit.Unit) []uuid.UUID {
	ids := make([]uuid.UUID, len(units))
	for i, u := range units {
		ids[i] = u.ID()
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
