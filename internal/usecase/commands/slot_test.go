//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_DeclareSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("success: declares hourly slots as unavailable", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		res, err := uc.DeclareSlots(ctx, commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "09:00", EndTime: "12:00"})
		require.NoError(t, err)

		want := &commands.DeclareSlotsResult{Date: "2025-11-12", Times: []string{"09:00", "10:00", "11:00"}, Created: 3}
		if diff := cmp.Diff(want, res); diff != "" {
			t.Errorf("DeclareSlots() mismatch (-want +got):\n%s", diff)
		}

		date, _ := slot.ParseDate("2025-11-12")
		for _, s := range w.store.SlotsOn(date) {
			assert.Equal(t, slot.StatusUnavailable, s.Status())
		}
	})

	t.Run("success: redeclaring keeps existing slots untouched", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		// w.slot is 2025-11-10 10:00 and already open
		res, err := uc.DeclareSlots(ctx, commands.DeclareSlotsRequest{Date: "2025-11-10", StartTime: "09:00", EndTime: "12:00"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Created)
		assert.Equal(t, 1, res.Existing)
		assert.Equal(t, slot.StatusAvailable, w.store.Slot(w.slot.ID()).Status())

		date, _ := slot.ParseDate("2025-11-10")
		assert.Len(t, w.store.SlotsOn(date), 3)
	})

	cases := []struct {
		name string
		req  commands.DeclareSlotsRequest
		want error
	}{
		{name: "bad date", req: commands.DeclareSlotsRequest{Date: "12-11-2025", StartTime: "09:00", EndTime: "10:00"}, want: slot.ErrInvalidDate},
		{name: "bad start", req: commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "9am", EndTime: "10:00"}, want: slot.ErrInvalidTime},
		{name: "bad end", req: commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "09:00", EndTime: "25:00"}, want: slot.ErrInvalidTime},
		{name: "inverted range", req: commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "12:00", EndTime: "09:00"}, want: slot.ErrInvalidRange},
		{name: "empty range", req: commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "09:00", EndTime: "09:00"}, want: slot.ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run("error: "+tc.name, func(t *testing.T) {
			w := newWorld(t)
			uc := commands.NewSlotUseCase(w.store, w.clock)

			_, err := uc.DeclareSlots(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("error: storage failure", func(t *testing.T) {
		w := newWorld(t)
		w.store.FailNext("UpsertUnavailable", errors.New("connection reset"))
		uc := commands.NewSlotUseCase(w.store, w.clock)

		_, err := uc.DeclareSlots(ctx, commands.DeclareSlotsRequest{Date: "2025-11-12", StartTime: "09:00", EndTime: "10:00"})
		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
	})
}

func TestSlot_SetSlotStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success: closes an open slot", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		require.NoError(t, uc.SetSlotStatus(ctx, w.slot.ID(), "unavailable"))
		assert.Equal(t, slot.StatusUnavailable, w.store.Slot(w.slot.ID()).Status())
	})

	t.Run("error: booked slots change only through their booking", func(t *testing.T) {
		w := newWorld(t)
		w.paidBooking(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		err := uc.SetSlotStatus(ctx, w.slot.ID(), "unavailable")
		assert.ErrorIs(t, err, slot.ErrSlotBooked)
		assert.Equal(t, slot.StatusBooked, w.store.Slot(w.slot.ID()).Status())
	})

	t.Run("error: booked slot at write time is a conflict", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)
		w.store.FailNext("UpdateStatus", infraConflict())

		err := uc.SetSlotStatus(ctx, w.slot.ID(), "unavailable")
		assert.True(t, errs.Is(err, slot.ErrSlotBooked))
	})

	t.Run("error: booked is not an admin target", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		assert.ErrorIs(t, uc.SetSlotStatus(ctx, w.slot.ID(), "booked"), slot.ErrInvalidStatus)
		assert.ErrorIs(t, uc.SetSlotStatus(ctx, w.slot.ID(), "closed"), slot.ErrInvalidStatus)
	})

	t.Run("error: unknown slot", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		err := uc.SetSlotStatus(ctx, uuid.New(), "available")
		assert.True(t, errs.Is(err, commands.ErrSlotNotFound))
	})
}

func TestSlot_BulkSetStatusForDate(t *testing.T) {
	ctx := context.Background()

	t.Run("success: skips booked slots and slots already in the target state", func(t *testing.T) {
		w := newWorld(t)
		w.paidBooking(t)
		w.openSlot(t, "2025-11-10", "11:00")
		w.openSlot(t, "2025-11-10", "12:00")
		other := w.openSlot(t, "2025-11-11", "09:00")
		uc := commands.NewSlotUseCase(w.store, w.clock)

		n, err := uc.BulkSetStatusForDate(ctx, "2025-11-10", "unavailable")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		assert.Equal(t, slot.StatusBooked, w.store.Slot(w.slot.ID()).Status())
		assert.Equal(t, slot.StatusAvailable, w.store.Slot(other.ID()).Status())

		n, err = uc.BulkSetStatusForDate(ctx, "2025-11-10", "unavailable")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("error: invalid input", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewSlotUseCase(w.store, w.clock)

		_, err := uc.BulkSetStatusForDate(ctx, "tomorrow", "available")
		assert.ErrorIs(t, err, slot.ErrInvalidDate)
		_, err = uc.BulkSetStatusForDate(ctx, "2025-11-10", "booked")
		assert.ErrorIs(t, err, slot.ErrInvalidStatus)
	})
}
