//go:build unit

package commands_test

import (
	"testing"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/usecase/shared"
	"vehicle-care-booking/tests/common/fakestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// 10:00 in Asia/Kolkata on 2025-11-09.
var fixedNow = time.Date(2025, 11, 9, 4, 30, 0, 0, time.UTC)

type world struct {
	store     *fakestore.Store
	clock     *clock.MockClock
	cfg       config.Config
	loc       *time.Location
	customer  uuid.UUID
	serviceID uuid.UUID
	vehicleID uuid.UUID
	addressID uuid.UUID
	staffID   uuid.UUID
	slot      *slot.Slot
}

func newWorld(t *testing.T) *world {
	t.Helper()

	cfg := config.NewTestConfig()
	w := &world{
		store:     fakestore.New(),
		clock:     clock.NewMockClock(fixedNow),
		cfg:       cfg,
		loc:       cfg.Checkout.Location(),
		customer:  uuid.New(),
		serviceID: uuid.New(),
		vehicleID: uuid.New(),
		addressID: uuid.New(),
		staffID:   uuid.New(),
	}

	w.store.AddService(shared.ServiceSnapshot{
		ID:       w.serviceID,
		Name:     "Foam Wash",
		IsActive: true,
		Prices: []pricing.PriceEntry{
			{VehicleType: "hatchback", Price: 400},
			{VehicleType: "sedan", Price: 500},
			{VehicleType: "suv", Price: 700},
		},
	})
	w.store.AddVehicle(shared.VehicleSnapshot{
		ID:       w.vehicleID,
		OwnerID:  w.customer,
		Category: pricing.CategoryCar,
		BodyType: pricing.BodySedan,
	})
	w.store.AddAddress(w.addressID, w.customer, booking.Address{
		Label: "Home", Line1: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
	})
	w.store.AddStaff(w.staffID, user.RoleStaff, user.StatusActive)

	w.slot = w.openSlot(t, "2025-11-10", "10:00")
	return w
}

func (w *world) openSlot(t *testing.T, date, tod string) *slot.Slot {
	t.Helper()
	key, err := slot.ParseKey(date, tod)
	require.NoError(t, err)
	s := slot.NewSlot(key, fixedNow)
	require.NoError(t, s.SetStatus(slot.StatusAvailable, fixedNow))
	w.store.AddSlot(s)
	return s
}

func (w *world) intent() payment.Intent {
	addr := w.addressID
	return payment.Intent{
		ServiceID:   w.serviceID,
		VehicleID:   w.vehicleID,
		ScheduledAt: w.slot.Key().Instant(w.loc),
		AddressID:   &addr,
	}
}

// paidBooking stores a booking that holds w.slot, as if checkout had completed.
func (w *world) paidBooking(t *testing.T, mutate ...func(*booking.Booking)) *booking.Booking {
	t.Helper()
	addr := booking.Address{Line1: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"}
	b, err := booking.New(booking.Draft{
		UserID:      w.customer,
		ServiceID:   w.serviceID,
		ServiceName: "Foam Wash",
		VehicleID:   w.vehicleID,
		SlotID:      w.slot.ID(),
		Address:     addr,
		ScheduledAt: w.slot.Key().Instant(w.loc),
		Quote:       pricing.Quote{ServicePrice: 500, TotalAmount: 500, PaymentType: pricing.PaymentFull},
	}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, b.MarkPaid("order_x", "pay_"+b.ID().String()[:8], fixedNow))
	for _, m := range mutate {
		m(b)
	}
	w.store.AddBooking(b)

	s := w.store.Slot(w.slot.ID())
	require.NoError(t, s.Reserve(b.ID(), fixedNow))
	w.store.AddSlot(s)
	return b
}

func (w *world) assigned(t *testing.T) func(*booking.Booking) {
	return func(b *booking.Booking) {
		require.NoError(t, b.AssignStaff(booking.StaffSpec{ID: w.staffID, Role: user.RoleStaff, Status: user.StatusActive}, fixedNow))
	}
}

func sharedVehicle(id, owner uuid.UUID) shared.VehicleSnapshot {
	return shared.VehicleSnapshot{ID: id, OwnerID: owner, Category: pricing.CategoryCar, BodyType: pricing.BodyHatchback}
}

func infraConflict() error {
	return infra.WrapRepoErr("slot is booked", nil, infra.KindConflict)
}
