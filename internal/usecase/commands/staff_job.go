package commands

//go:generate go run go.uber.org/mock/mockgen -source=staff_job.go -destination=../../../tests/mock/commands/staff_job.go -package=commandsmock

import (
	"context"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CompleteJobRequest struct {
	PaymentReceived bool
	Note            string
}

// StaffJobCommands are transitions only the assigned staff member may make.
type StaffJobCommands interface {
	Complete(ctx context.Context, bookingID, staffID uuid.UUID, req CompleteJobRequest) error
	MarkCouldntReach(ctx context.Context, bookingID, staffID uuid.UUID, note string) error
}

type staffJobUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewStaffJobUseCase(uow shared.UnitOfWork, clk clock.Clock) StaffJobCommands {
	return &staffJobUseCaseImpl{uow: uow, clock: clk}
}

func (uc *staffJobUseCaseImpl) Complete(ctx context.Context, bookingID, staffID uuid.UUID, req CompleteJobRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := load(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = b.Complete(staffID, req.PaymentReceived, req.Note, now); err != nil {
			return err
		}
		if err = save(ctx, tx, b); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, b, booking.EventCompleted, now)
	})
}

func (uc *staffJobUseCaseImpl) MarkCouldntReach(ctx context.Context, bookingID, staffID uuid.UUID, note string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := load(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err = b.MarkCouldntReach(staffID, note, now); err != nil {
			return err
		}
		if err = save(ctx, tx, b); err != nil {
			return err
		}
		return enqueueEvent(ctx, tx, b, booking.EventCouldntReach, now)
	})
}
