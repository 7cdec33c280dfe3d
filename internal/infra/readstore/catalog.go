package readstore

import (
	"context"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/infra/repository"
	"vehicle-care-booking/internal/pkg/pgconv"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogReadStore serves the lookups both sides need: services with prices,
// vehicles, addresses, staff and slot keys.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

func (s *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	snap := &shared.ServiceSnapshot{ID: id}
	err := s.db.QueryRow(ctx, `SELECT name, is_active FROM services WHERE id = $1`, id).
		Scan(&snap.Name, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT vehicle_type, price FROM service_prices
		WHERE service_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load service prices", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p pricing.PriceEntry
		if err := rows.Scan(&p.VehicleType, &p.Price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service price", err)
		}
		snap.Prices = append(snap.Prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read service prices", err)
	}
	return snap, nil
}

func (s *CatalogReadStore) VehicleByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	var (
		ownerID  uuid.UUID
		category string
		bodyType pgtype.Text
	)
	err := s.db.QueryRow(ctx, `SELECT user_id, category, body_type FROM vehicles WHERE id = $1`, id).
		Scan(&ownerID, &category, &bodyType)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	cat, err := pricing.NewVehicleCategory(category)
	if err != nil {
		return nil, infra.WrapRepoErr("vehicle has unknown category", err)
	}
	bt, err := pricing.NewBodyType(pgconv.StringFromPgtype(bodyType))
	if err != nil {
		return nil, infra.WrapRepoErr("vehicle has unknown body type", err)
	}
	return &shared.VehicleSnapshot{ID: id, OwnerID: ownerID, Category: cat, BodyType: bt}, nil
}

// AddressByID only finds addresses owned by ownerID.
func (s *CatalogReadStore) AddressByID(ctx context.Context, id, ownerID uuid.UUID) (*booking.Address, error) {
	var (
		a                             booking.Address
		label, line2, landmark, phone pgtype.Text
	)
	err := s.db.QueryRow(ctx, `
		SELECT label, line1, line2, city, state, pincode, landmark, phone
		FROM addresses WHERE id = $1 AND user_id = $2`, id, ownerID).
		Scan(&label, &a.Line1, &line2, &a.City, &a.State, &a.Pincode, &landmark, &phone)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("address not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find address by ID", err)
	}
	a.Label = pgconv.StringFromPgtype(label)
	a.Line2 = pgconv.StringFromPgtype(line2)
	a.Landmark = pgconv.StringFromPgtype(landmark)
	a.Phone = pgconv.StringFromPgtype(phone)
	return &a, nil
}

func (s *CatalogReadStore) StaffByID(ctx context.Context, id uuid.UUID) (*booking.StaffSpec, error) {
	u, err := s.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	spec := booking.StaffSpecOf(u)
	return &spec, nil
}

func (s *CatalogReadStore) userByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		name, email, phone pgtype.Text
		role, status       string
	)
	err := s.db.QueryRow(ctx, `SELECT name, email, phone, role, status FROM users WHERE id = $1`, id).
		Scan(&name, &email, &phone, &role, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	r, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("user has unknown role", err)
	}
	st, err := user.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("user has unknown status", err)
	}
	return user.Reconstruct(id, pgconv.StringFromPgtype(name), pgconv.StringFromPgtype(email),
		pgconv.StringFromPgtype(phone), r, st), nil
}

func (s *CatalogReadStore) BookingByPaymentID(ctx context.Context, paymentID string) (*shared.PaidBooking, error) {
	var b shared.PaidBooking
	err := s.db.QueryRow(ctx, `SELECT id, user_id FROM bookings WHERE gateway_payment_id = $1`, paymentID).
		Scan(&b.ID, &b.UserID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found for payment", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by payment ID", err)
	}
	return &b, nil
}

func (s *CatalogReadStore) SlotByKey(ctx context.Context, key slot.Key) (*slot.Slot, error) {
	return repository.NewSlotRepository(s.db).FindByKey(ctx, key)
}
