//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"cabinstay/internal/domain/coupon"
	"cabinstay/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validationNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewCode(t *testing.T) {
	t.Run("codes are upper-cased", func(t *testing.T) {
		code, err := coupon.NewCode("  spring10 ")
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", code.String())
	})

	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"minimum length", "ABC", true},
		{"maximum length", "ABCDEFGHIJ1234567890", true},
		{"too short", "AB", false},
		{"too long", "ABCDEFGHIJ12345678901", false},
		{"punctuation", "HALF-OFF", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coupon.NewCode(tt.code)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
			}
		})
	}
}

func TestNewDiscount(t *testing.T) {
	t.Run("percentage bounds", func(t *testing.T) {
		_, err := coupon.NewPercentageDiscount(101)
		require.ErrorIs(t, err, coupon.ErrInvalidPercentOff)
		_, err = coupon.NewPercentageDiscount(-1)
		require.ErrorIs(t, err, coupon.ErrInvalidPercentOff)
		_, err = coupon.NewPercentageDiscount(0)
		require.NoError(t, err)
		_, err = coupon.NewPercentageDiscount(100)
		require.NoError(t, err)
	})

	t.Run("fixed cannot be negative", func(t *testing.T) {
		_, err := coupon.NewFixedDiscount(-1)
		require.ErrorIs(t, err, coupon.ErrInvalidDiscountValue)
	})

	t.Run("fixed rounds fractional cents", func(t *testing.T) {
		d, err := coupon.NewDiscount("fixed", 499.9999999)
		require.NoError(t, err)
		require.Equal(t, int64(500), d.AmountCents())

		d, err = coupon.NewDiscount("fixed", 2500.4)
		require.NoError(t, err)
		require.Equal(t, int64(2500), d.AmountCents())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := coupon.NewDiscount("bogo", 1)
		require.ErrorIs(t, err, coupon.ErrInvalidDiscountType)
	})
}

func TestCouponValidate(t *testing.T) {
	t.Run("active unconstrained coupon passes", func(t *testing.T) {
		c := builder.NewCouponBuilder().MustBuildDomain()
		require.NoError(t, c.Validate(validationNow, 40000, nil))
	})

	t.Run("inactive wins over everything else", func(t *testing.T) {
		c := builder.NewCouponBuilder().
			AsInactive().
			WithValidUntil(validationNow.AddDate(0, 0, -10)).
			WithMaxUses(1, 1).
			MustBuildDomain()
		require.ErrorIs(t, c.Validate(validationNow, 40000, nil), coupon.ErrCouponInactive)
	})

	t.Run("expiry is date-only: valid through the final day", func(t *testing.T) {
		endOfDay := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
		c := builder.NewCouponBuilder().
			WithValidUntil(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).
			MustBuildDomain()
		require.NoError(t, c.Validate(endOfDay, 40000, nil))

		nextDay := time.Date(2026, 3, 2, 0, 0, 1, 0, time.UTC)
		require.ErrorIs(t, c.Validate(nextDay, 40000, nil), coupon.ErrCouponExpired)
	})

	t.Run("expired outranks exhausted", func(t *testing.T) {
		c := builder.NewCouponBuilder().
			WithValidUntil(validationNow.AddDate(0, 0, -1)).
			WithMaxUses(5, 5).
			MustBuildDomain()
		require.ErrorIs(t, c.Validate(validationNow, 40000, nil), coupon.ErrCouponExpired)
	})

	t.Run("usage cap", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMaxUses(5, 5).MustBuildDomain()
		require.ErrorIs(t, c.Validate(validationNow, 40000, nil), coupon.ErrCouponExhausted)

		c = builder.NewCouponBuilder().WithMaxUses(5, 4).MustBuildDomain()
		require.NoError(t, c.Validate(validationNow, 40000, nil))
	})

	t.Run("minimum checks the pre-discount subtotal including extras", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithMinBookingCents(45000).MustBuildDomain()
		require.ErrorIs(t, c.Validate(validationNow, 40000, nil), coupon.ErrBelowMinimum)

		extras := []coupon.SelectedExtra{{ExtraID: uuid.New(), PriceCents: 2500, Quantity: 2}}
		require.ErrorIs(t, c.Validate(validationNow, 40000, extras), coupon.ErrBelowMinimum)

		extras = []coupon.SelectedExtra{{ExtraID: uuid.New(), PriceCents: 5000, Quantity: 1}}
		require.NoError(t, c.Validate(validationNow, 40000, extras))
	})

	t.Run("extras allow-list requires a matching selection", func(t *testing.T) {
		allowed := uuid.New()
		c := builder.NewCouponBuilder().
			WithScope("extras").
			WithExtraIDs(allowed).
			MustBuildDomain()

		other := []coupon.SelectedExtra{{ExtraID: uuid.New(), PriceCents: 1000, Quantity: 1}}
		require.ErrorIs(t, c.Validate(validationNow, 40000, other), coupon.ErrScopeMismatch)

		matching := []coupon.SelectedExtra{{ExtraID: allowed, PriceCents: 1000, Quantity: 1}}
		require.NoError(t, c.Validate(validationNow, 40000, matching))
	})

	t.Run("rooms-scope coupon ignores the allow-list", func(t *testing.T) {
		c := builder.NewCouponBuilder().
			WithScope("rooms").
			WithExtraIDs(uuid.New()).
			MustBuildDomain()
		require.NoError(t, c.Validate(validationNow, 40000, nil))
	})
}

func TestCouponDiscountCents(t *testing.T) {
	extras := []coupon.SelectedExtra{
		{ExtraID: uuid.New(), PriceCents: 2500, Quantity: 2},
		{ExtraID: uuid.New(), PriceCents: 10000, Quantity: 1},
	}

	t.Run("percentage over rooms scope", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithPercentage(10).WithScope("rooms").MustBuildDomain()
		assert.Equal(t, int64(4000), c.DiscountCents(40000, extras))
	})

	t.Run("percentage over extras scope", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithPercentage(10).WithScope("extras").MustBuildDomain()
		assert.Equal(t, int64(1500), c.DiscountCents(40000, extras))
	})

	t.Run("percentage over both", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithPercentage(10).WithScope("both").MustBuildDomain()
		assert.Equal(t, int64(5500), c.DiscountCents(40000, extras))
	})

	t.Run("zero percent yields zero", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithPercentage(0).MustBuildDomain()
		assert.Equal(t, int64(0), c.DiscountCents(40000, extras))
	})

	t.Run("percentage truncates fractional cents", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithPercentage(10).WithScope("rooms").MustBuildDomain()
		assert.Equal(t, int64(1), c.DiscountCents(15, nil))
	})

	t.Run("allow-list narrows the extras base", func(t *testing.T) {
		c := builder.NewCouponBuilder().
			WithPercentage(10).
			WithScope("extras").
			WithExtraIDs(extras[0].ExtraID).
			MustBuildDomain()
		assert.Equal(t, int64(500), c.DiscountCents(40000, extras))
	})

	t.Run("fixed discount is clamped to the full subtotal", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithFixed(100000).MustBuildDomain()
		assert.Equal(t, int64(55000), c.DiscountCents(40000, extras))
	})

	t.Run("clamp uses the full subtotal even with a narrow base", func(t *testing.T) {
		c := builder.NewCouponBuilder().
			WithFixed(100000).
			WithScope("extras").
			MustBuildDomain()
		assert.Equal(t, int64(55000), c.DiscountCents(40000, extras))
	})
}

func TestCouponRedeemable(t *testing.T) {
	assert.True(t, builder.NewCouponBuilder().MustBuildDomain().Redeemable())
	assert.True(t, builder.NewCouponBuilder().WithMaxUses(2, 1).MustBuildDomain().Redeemable())
	assert.False(t, builder.NewCouponBuilder().WithMaxUses(2, 2).MustBuildDomain().Redeemable())
}
