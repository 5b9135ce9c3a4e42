//go:build unit

package booking_test

import (
	"testing"
	"time"

	"cabinstay/internal/domain/booking"
	"cabinstay/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from booking.Status
		to   booking.Status
		ok   bool
	}{
		{booking.StatusPending, booking.StatusConfirmed, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusNoShow, true},
		{booking.StatusPending, booking.StatusCheckedIn, false},
		{booking.StatusConfirmed, booking.StatusCheckedIn, true},
		{booking.StatusConfirmed, booking.StatusCancelled, true},
		{booking.StatusConfirmed, booking.StatusPending, false},
		{booking.StatusCheckedIn, booking.StatusCheckedOut, true},
		{booking.StatusCheckedIn, booking.StatusCancelled, false},
		{booking.StatusCheckedOut, booking.StatusPending, false},
		{booking.StatusCheckedOut, booking.StatusCheckedIn, false},
		{booking.StatusCancelled, booking.StatusPending, true},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
		{booking.StatusNoShow, booking.StatusPending, true},
	}
	for _, tt := range tests {
		name := tt.from.String() + " to " + tt.to.String()
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusOccupiesUnit(t *testing.T) {
	assert.True(t, booking.StatusPending.OccupiesUnit())
	assert.True(t, booking.StatusConfirmed.OccupiesUnit())
	assert.True(t, booking.StatusCheckedIn.OccupiesUnit())
	assert.True(t, booking.StatusCheckedOut.OccupiesUnit())
	assert.False(t, booking.StatusCancelled.OccupiesUnit())
	assert.False(t, booking.StatusNoShow.OccupiesUnit())
}

func TestBookingChangeStatus(t *testing.T) {
	t.Run("valid transition updates status and timestamp", func(t *testing.T) {
		group, err := builder.NewBookingBuilder().BuildGroup()
		require.NoError(t, err)
		b := group.Leader

		later := builder.FixedNow.Add(time.Minute)
		require.NoError(t, b.ChangeStatus(booking.StatusConfirmed, later))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, later, b.UpdatedAt())
	})

	t.Run("invalid transition is rejected", func(t *testing.T) {
		group, err := builder.NewBookingBuilder().BuildGroup()
		require.NoError(t, err)
		b := group.Leader

		err = b.ChangeStatus(booking.StatusCheckedOut, builder.FixedNow)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		group, err := builder.NewBookingBuilder().BuildGroup()
		require.NoError(t, err)

		err = group.Leader.ChangeStatus(booking.Status("teleported"), builder.FixedNow)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestBookingChangePayment(t *testing.T) {
	group, err := builder.NewBookingBuilder().BuildGroup()
	require.NoError(t, err)
	b := group.Leader

	require.NoError(t, b.ChangePayment(booking.PaymentPaid, builder.FixedNow))
	assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())

	err = b.ChangePayment(booking.PaymentStatus("iou"), builder.FixedNow)
	require.ErrorIs(t, err, booking.ErrInvalidPaymentState)
}

func TestBookingTotal(t *testing.T) {
	t.Run("total is subtotal plus extras minus discount", func(t *testing.T) {
		group, err := builder.NewBookingBuilder().
			WithExtraLine("Firewood Bundle", 2500, 2).
			WithCoupon(builder.NewCouponBuilder().WithFixed(3000).MustBuildDomain()).
			BuildGroup()
		require.NoError(t, err)

		b := group.Leader
		assert.Equal(t, int64(40000), b.RoomSubtotal().Cents())
		assert.Equal(t, int64(5000), b.ExtrasTotal().Cents())
		assert.Equal(t, int64(3000), b.DiscountAmount().Cents())
		assert.Equal(t, int64(42000), b.Total().Cents())
	})

	t.Run("discount never drives the total negative", func(t *testing.T) {
		group, err := builder.NewBookingBuilder().
			WithUnits(builder.NewUnitBuilder().WithRates(100, 100)).
			WithCoupon(builder.NewCouponBuilder().WithFixed(1000000).MustBuildDomain()).
			BuildGroup()
		require.NoError(t, err)

		assert.True(t, group.Leader.Total().IsZero())
	})
}

func TestExtrasTotal(t *testing.T) {
	lines := []booking.ExtraLine{
		{Name: "Firewood", UnitPrice: booking.NewMoney(2500), Quantity: 2},
		{Name: "Hot Tub", UnitPrice: booking.NewMoney(10000), Quantity: 1},
	}
	assert.Equal(t, int64(15000), booking.ExtrasTotal(lines).Cents())
	assert.True(t, booking.ExtrasTotal(nil).IsZero())
}
