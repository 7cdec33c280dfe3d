//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ServiceID     uuid.UUID
	ServiceName   string
	VehicleID     uuid.UUID
	SlotID        uuid.UUID
	Address       booking.Address
	ScheduledAt   time.Time
	PaymentType   pricing.PaymentType
	Status        booking.Status
	PaymentStatus booking.PaymentStatus
	Amount        int64
	AdvanceAmount *int64
	StaffID       *uuid.UUID
	Notes         []booking.Note
	Now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ServiceID:   uuid.New(),
		ServiceName: "Foam Wash",
		VehicleID:   uuid.New(),
		SlotID:      uuid.New(),
		Address: booking.Address{
			Label:   "Home",
			Line1:   "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560001",
			Phone:   "9876543210",
		},
		ScheduledAt:   time.Date(2025, 11, 10, 3, 30, 0, 0, time.UTC),
		PaymentType:   pricing.PaymentFull,
		Status:        booking.StatusPending,
		PaymentStatus: booking.PaymentPaid,
		Amount:        500,
		Now:           now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithStaff(id uuid.UUID) *BookingBuilder {
	b.StaffID = &id
	return b
}

func (b *BookingBuilder) WithAdvance(amount int64) *BookingBuilder {
	b.PaymentType = pricing.PaymentAdvance
	b.AdvanceAmount = &amount
	return b
}

// Build methods

// BuildDraft returns the materialization input for a fresh booking.
func (b *BookingBuilder) BuildDraft() booking.Draft {
	return booking.Draft{
		UserID:      b.UserID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		VehicleID:   b.VehicleID,
		SlotID:      b.SlotID,
		Address:     b.Address,
		ScheduledAt: b.ScheduledAt,
		Quote: pricing.Quote{
			ServicePrice:  b.Amount,
			TotalAmount:   b.Amount,
			AdvanceAmount: b.AdvanceAmount,
			PaymentType:   b.PaymentType,
		},
	}
}

func (b *BookingBuilder) BuildNew() (*booking.Booking, error) {
	return booking.New(b.BuildDraft(), b.Now)
}

// BuildDomain reconstructs a stored booking in the configured state.
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:               b.ID,
		Number:           booking.NewNumber(b.Now),
		UserID:           b.UserID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		VehicleID:        b.VehicleID,
		SlotID:           b.SlotID,
		Address:          b.Address,
		ScheduledAt:      b.ScheduledAt,
		PaymentType:      b.PaymentType,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		Amount:           b.Amount,
		TotalAmount:      b.Amount,
		AdvanceAmount:    b.AdvanceAmount,
		StaffID:          b.StaffID,
		Notes:            b.Notes,
		GatewayOrderID:   "order_" + b.ID.String()[:8],
		GatewayPaymentID: "pay_" + b.ID.String()[:8],
		CreatedAt:        b.Now,
		UpdatedAt:        b.Now,
	})
}
