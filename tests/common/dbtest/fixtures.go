//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUnit(t *testing.T, db DBLike, code, name string, weekdayCents, weekendCents int64) uuid.UUID {
	t.Helper()

	unitID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO units (id, code, name, weekday_rate_cents, weekend_rate_cents, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT DO NOTHING",
		unitID, code, name, weekdayCents, weekendCents)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM units WHERE lower(code) = lower($1)", code).Scan(&unitID)
	}

	return unitID
}

func CreateTestExtra(t *testing.T, db DBLike, name string, priceCents int64) uuid.UUID {
	t.Helper()

	extraID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO extras (id, name, price_cents, is_active) VALUES ($1, $2, $3, true)",
		extraID, name, priceCents)
	require.NoError(t, err)

	return extraID
}

func CreateTestCoupon(t *testing.T, db DBLike, code, discountType string, value float64) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO coupons (id, code, discount_type, discount_value, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT DO NOTHING",
		couponID, code, discountType, value)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM coupons WHERE upper(code) = upper($1)", code).Scan(&couponID)
	}

	return couponID
}

func BlockDates(t *testing.T, db DBLike, unitID uuid.UUID, dates ...time.Time) {
	t.Helper()

	ctx := context.Background()
	for _, d := range dates {
		_, err := db.Exec(ctx,
			"INSERT INTO blocked_dates (unit_id, blocked_date) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			unitID, d)
		require.NoError(t, err)
	}
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO units (code, name, weekday_rate_cents, weekend_rate_cents) VALUES
		    ('CEDAR-01', 'Cedar Cabin', 10000, 15000),
		    ('BIRCH-02', 'Birch Cabin', 12000, 18000)
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO extras (name, price_cents) VALUES
		    ('Firewood Bundle', 2500),
		    ('Late Checkout', 5000)
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
