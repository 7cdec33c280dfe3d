package commands

//go:generate go run go.uber.org/mock/mockgen -source=slot.go -destination=../../../tests/mock/commands/slot.go -package=commandsmock

import (
	"context"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DeclareSlotsRequest struct {
	Date      string
	StartTime string
	EndTime   string
}

type DeclareSlotsResult struct {
	Date     string
	Times    []string
	Created  int
	Existing int
}

type SlotCommands interface {
	DeclareSlots(ctx context.Context, req DeclareSlotsRequest) (*DeclareSlotsResult, error)
	SetSlotStatus(ctx context.Context, slotID uuid.UUID, status string) error
	BulkSetStatusForDate(ctx context.Context, date, status string) (int64, error)
}

type slotUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSlotUseCase(uow shared.UnitOfWork, clk clock.Clock) SlotCommands {
	return &slotUseCaseImpl{uow: uow, clock: clk}
}

func (uc *slotUseCaseImpl) DeclareSlots(ctx context.Context, req DeclareSlotsRequest) (*DeclareSlotsResult, error) {
	date, err := slot.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := slot.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := slot.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	times, err := slot.HourlyTimes(start, end)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	slots := make([]*slot.Slot, len(times))
	labels := make([]string, len(times))
	for i, t := range times {
		slots[i] = slot.NewSlot(slot.Key{Date: date, Time: t}, now)
		labels[i] = t.String()
	}

	var created int
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, derr := tx.Slots().UpsertUnavailable(ctx, slots)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeclareSlotsResult{
		Date:     date.String(),
		Times:    labels,
		Created:  created,
		Existing: len(slots) - created,
	}, nil
}

func (uc *slotUseCaseImpl) SetSlotStatus(ctx context.Context, slotID uuid.UUID, status string) error {
	target, err := slot.NewStatus(status)
	if err != nil {
		return err
	}
	if !target.IsAdminSettable() {
		return slot.ErrInvalidStatus
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, derr := tx.Slots().FindByID(ctx, slotID)
		if derr != nil {
			return notFoundAs(derr, ErrSlotNotFound)
		}
		now := uc.clock.Now()
		if derr = s.SetStatus(target, now); derr != nil {
			return derr
		}
		if derr = tx.Slots().UpdateStatus(ctx, slotID, target, now); derr != nil {
			// booked between the read and the write
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, slot.ErrSlotBooked)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (uc *slotUseCaseImpl) BulkSetStatusForDate(ctx context.Context, date, status string) (int64, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return 0, err
	}
	target, err := slot.NewStatus(status)
	if err != nil {
		return 0, err
	}
	if !target.IsAdminSettable() {
		return 0, slot.ErrInvalidStatus
	}

	var modified int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, derr := tx.Slots().UpdateStatusForDate(ctx, d, target, uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		modified = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return modified, nil
}
