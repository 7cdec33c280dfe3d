package shared

import (
	"context"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Repositories handed out by a Tx are bound to that transaction.
type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	VehicleByID(ctx context.Context, id uuid.UUID) (*VehicleSnapshot, error)
	AddressByID(ctx context.Context, id, ownerID uuid.UUID) (*booking.Address, error)
	StaffByID(ctx context.Context, id uuid.UUID) (*booking.StaffSpec, error)
	BookingByPaymentID(ctx context.Context, paymentID string) (*PaidBooking, error)
	SlotByKey(ctx context.Context, key slot.Key) (*slot.Slot, error)
}

type SlotRepository interface {
	// UpsertUnavailable inserts slots that do not exist yet and reports how many were created.
	UpsertUnavailable(ctx context.Context, slots []*slot.Slot) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	FindByKey(ctx context.Context, key slot.Key) (*slot.Slot, error)
	// UpdateStatus never touches a booked slot; a booked target row is a conflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, status slot.Status, now time.Time) error
	UpdateStatusForDate(ctx context.Context, date slot.Date, status slot.Status, now time.Time) (int64, error)
	// Reserve flips available to booked in one conditional write.
	Reserve(ctx context.Context, id, bookingID uuid.UUID, now time.Time) error
	// Release flips booked to available only while bookingID still holds the slot.
	Release(ctx context.Context, id, bookingID uuid.UUID, now time.Time) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	// FindByID locks the row for the rest of the transaction.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, job OutboxJob) error
}
