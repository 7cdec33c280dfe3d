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

	"vehicle-care-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, name string, role user.Role) uuid.UUID {
	t.Helper()

	id := uuid.New()
	email := strings.ToLower(name) + "+" + id.String()[:8] + "@example.com"
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, name, email, phone, role, status) VALUES ($1, $2, $3, $4, $5, 'active')",
		id, name, email, "9000000000", role.String())
	require.NoError(t, err)
	return id
}

func DeactivateUser(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET status = 'inactive' WHERE id = $1", id)
	require.NoError(t, err)
}

// PriceRow is one entry of a service price list, in list order.
type PriceRow struct {
	VehicleType string
	Price       int64
}

func CreateTestService(t *testing.T, db DBLike, name string, prices ...PriceRow) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	_, err := db.Exec(ctx, "INSERT INTO services (id, name, is_active) VALUES ($1, $2, true)", id, name)
	require.NoError(t, err)
	for i, p := range prices {
		_, err = db.Exec(ctx,
			"INSERT INTO service_prices (service_id, position, vehicle_type, price) VALUES ($1, $2, $3, $4)",
			id, i, p.VehicleType, p.Price)
		require.NoError(t, err)
	}
	return id
}

func CreateTestVehicle(t *testing.T, db DBLike, ownerID uuid.UUID, category, bodyType string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO vehicles (id, user_id, category, body_type, brand, model, plate_number)
		 VALUES ($1, $2, $3, $4, 'Maruti', 'Swift', 'KA01AB1234')`,
		id, ownerID, category, bodyType)
	require.NoError(t, err)
	return id
}

func CreateTestAddress(t *testing.T, db DBLike, ownerID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO addresses (id, user_id, label, line1, city, state, pincode, phone)
		 VALUES ($1, $2, 'Home', '12 MG Road', 'Bengaluru', 'Karnataka', '560001', '9876543210')`,
		id, ownerID)
	require.NoError(t, err)
	return id
}

// CreateTestSlot inserts a slot directly, bypassing declaration.
func CreateTestSlot(t *testing.T, db DBLike, date, tod, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO slots (id, slot_date, slot_time, status) VALUES ($1, $2::date, $3, $4)",
		id, date, tod, status)
	require.NoError(t, err)
	return id
}

func SlotStatus(t *testing.T, db DBLike, id uuid.UUID) (string, *uuid.UUID) {
	t.Helper()

	var (
		status    string
		bookingID *uuid.UUID
	)
	err := db.QueryRow(context.Background(),
		"SELECT status, booking_id FROM slots WHERE id = $1", id).Scan(&status, &bookingID)
	require.NoError(t, err)
	return status, bookingID
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table in the public schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
