package commands

import (
	"context"
	"encoding/json"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const OutboxKindBookingEvent = "booking_event"

type BookingEventPayload struct {
	Event         string     `json:"event"`
	BookingID     uuid.UUID  `json:"bookingId"`
	BookingNumber string     `json:"bookingNumber"`
	UserID        uuid.UUID  `json:"userId"`
	StaffID       *uuid.UUID `json:"staffId,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	ScheduledAt   time.Time  `json:"scheduledAt"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// enqueueEvent writes the event in the caller's transaction so it commits with the state change.
func enqueueEvent(ctx context.Context, tx shared.Tx, b *booking.Booking, ev booking.Event, now time.Time) error {
	payload, err := json.Marshal(BookingEventPayload{
		Event:         string(ev),
		BookingID:     b.ID(),
		BookingNumber: b.Number(),
		UserID:        b.UserID(),
		StaffID:       b.StaffID(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		ScheduledAt:   b.ScheduledAt(),
		OccurredAt:    now,
	})
	if err != nil {
		return errs.Wrap(err, "marshal booking event")
	}
	if err := tx.Outbox().Enqueue(ctx, shared.OutboxJob{
		Kind:    OutboxKindBookingEvent,
		Topic:   ev.Topic(),
		Payload: payload,
		RunAt:   now,
	}); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
