package queries

//go:generate go run go.uber.org/mock/mockgen -source=slot.go -destination=../../../tests/mock/queries/slot.go -package=queriesmock

import (
	"context"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

const maxDaysAhead = 60

type SlotQueries interface {
	// ListAvailableDays ignores serviceID; every service shares one calendar.
	ListAvailableDays(ctx context.Context, serviceID *uuid.UUID, daysAhead int) ([]string, error)
	ListAvailableSlots(ctx context.Context, date string) ([]*AvailableSlotView, error)
	ListSlotsForDate(ctx context.Context, date string) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	store    SlotReadStore
	clock    clock.Clock
	checkout config.CheckoutConfig
}

func NewSlotQueries(store SlotReadStore, clk clock.Clock, cfg config.Config) SlotQueries {
	return &slotQueriesImpl{store: store, clock: clk, checkout: cfg.Checkout}
}

func (q *slotQueriesImpl) ListAvailableDays(ctx context.Context, _ *uuid.UUID, daysAhead int) ([]string, error) {
	if daysAhead == 0 {
		daysAhead = q.checkout.DaysAhead
	}
	daysAhead = patch.Clamp(daysAhead, 1, maxDaysAhead)

	today := slot.DateOf(q.clock.Now(), q.checkout.Location())
	dates, err := q.store.AvailableDates(ctx, today, today.AddDays(daysAhead))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out, nil
}

func (q *slotQueriesImpl) ListAvailableSlots(ctx context.Context, date string) ([]*AvailableSlotView, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return nil, err
	}
	slots, err := q.store.ListAvailableByDate(ctx, d)
	if err != nil {
		return nil, err
	}

	windows := slot.WithDisplayEnds(slots)
	out := make([]*AvailableSlotView, 0, len(windows))
	for _, w := range windows {
		out = append(out, &AvailableSlotView{
			ID:        w.Slot.ID(),
			Date:      w.Slot.Date().String(),
			StartTime: w.Slot.Time().String(),
			EndTime:   w.End.String(),
		})
	}
	return out, nil
}

func (q *slotQueriesImpl) ListSlotsForDate(ctx context.Context, date string) ([]*SlotView, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return nil, err
	}
	slots, err := q.store.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}

	out := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, &SlotView{
			ID:        s.ID(),
			Date:      s.Date().String(),
			Time:      s.Time().String(),
			Status:    s.Status().String(),
			BookingID: s.BookingID(),
			Booked:    s.IsBooked(),
		})
	}
	return out, nil
}
