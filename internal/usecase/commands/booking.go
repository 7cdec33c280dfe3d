package commands

//go:generate go run go.uber.org/mock/mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type FeedbackRequest struct {
	Rating  int
	Comment string
}

type SetStatusRequest struct {
	Status string
	Note   string
}

// BookingCommands covers customer and admin transitions on a booking.
type BookingCommands interface {
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) error
	SubmitFeedback(ctx context.Context, bookingID, userID uuid.UUID, req FeedbackRequest) error
	AssignStaff(ctx context.Context, bookingID, staffID uuid.UUID) error
	UnassignStaff(ctx context.Context, bookingID uuid.UUID) error
	SetStatus(ctx context.Context, bookingID uuid.UUID, req SetStatusRequest) error
}

type bookingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk}
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadOwned(ctx, tx, bookingID, userID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = b.Cancel(now); err != nil {
			return err
		}
		if err = save(ctx, tx, b); err != nil {
			return err
		}
		if err = releaseSlot(ctx, tx, b, now); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, b, booking.EventCancelled, now)
	})
}

func (uc *bookingUseCaseImpl) SubmitFeedback(ctx context.Context, bookingID, userID uuid.UUID, req FeedbackRequest) error {
	now := uc.clock.Now()
	fb, err := booking.NewFeedback(req.Rating, req.Comment, now)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := loadOwned(ctx, tx, bookingID, userID)
		if derr != nil {
			return derr
		}
		b.SubmitFeedback(fb, now)
		if derr = save(ctx, tx, b); derr != nil {
			return derr
		}
		return enqueueEvent(ctx, tx, b, booking.EventFeedback, now)
	})
}

func (uc *bookingUseCaseImpl) AssignStaff(ctx context.Context, bookingID, staffID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staff, err := tx.Reads().StaffByID(ctx, staffID)
		if err != nil {
			return notFoundAs(err, ErrStaffNotFound)
		}
		b, err := load(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = b.AssignStaff(*staff, now); err != nil {
			// a non-staff account is reported the same as a missing one
			if errs.Is(err, booking.ErrNotStaff) {
				return errs.Mark(err, ErrStaffNotFound)
			}
			return err
		}
		if err = save(ctx, tx, b); err != nil {
			return err
		}
		slog.InfoContext(ctx, "staff assigned",
			"booking_id", b.ID(), "staff_id", staff.ID, "staff_name", staff.Name, "status", b.Status().String())
		return enqueueEvent(ctx, tx, b, booking.EventStaffAssigned, now)
	})
}

func (uc *bookingUseCaseImpl) UnassignStaff(ctx context.Context, bookingID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := load(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = b.UnassignStaff(now); err != nil {
			return err
		}
		if err = save(ctx, tx, b); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, b, booking.EventStaffUnassigned, now)
	})
}

func (uc *bookingUseCaseImpl) SetStatus(ctx context.Context, bookingID uuid.UUID, req SetStatusRequest) error {
	to, err := booking.NewStatus(req.Status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := load(ctx, tx, bookingID)
		if derr != nil {
			return derr
		}
		now := uc.clock.Now()
		if derr = b.AdminSetStatus(to, req.Note, now); derr != nil {
			return derr
		}
		if derr = save(ctx, tx, b); derr != nil {
			return derr
		}

		ev := booking.EventStatusChanged
		if to == booking.StatusCancelled {
			if derr = releaseSlot(ctx, tx, b, now); derr != nil {
				return derr
			}
			ev = booking.EventCancelled
		}
		return enqueueEvent(ctx, tx, b, ev, now)
	})
}

func load(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}
	return b, nil
}

// loadOwned hides other customers' bookings behind not found.
func loadOwned(ctx context.Context, tx shared.Tx, id, userID uuid.UUID) (*booking.Booking, error) {
	b, err := load(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(userID) {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func save(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.Bookings().Update(ctx, b); err != nil {
		return notFoundAs(err, ErrBookingNotFound)
	}
	return nil
}

// releaseSlot gives the slot back unless another booking already holds it.
func releaseSlot(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
	if b.SlotID() == uuid.Nil {
		return nil
	}
	err := tx.Slots().Release(ctx, b.SlotID(), b.ID(), now)
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindNotFound) {
		slog.InfoContext(ctx, "slot not held by cancelled booking, nothing to release",
			"booking_id", b.ID(), "slot_id", b.SlotID())
		return nil
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
