//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEvent(t *testing.T, w *world) commands.BookingEventPayload {
	t.Helper()
	jobs := w.store.Outbox()
	require.NotEmpty(t, jobs)
	var ev commands.BookingEventPayload
	require.NoError(t, json.Unmarshal(jobs[len(jobs)-1].Payload, &ev))
	return ev
}

func TestBooking_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success: cancels and frees the slot", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.Cancel(ctx, b.ID(), w.customer))

		assert.Equal(t, booking.StatusCancelled, w.store.Booking(b.ID()).Status())
		s := w.store.Slot(w.slot.ID())
		assert.Equal(t, slot.StatusAvailable, s.Status())
		assert.Nil(t, s.BookingID())
		assert.Equal(t, string(booking.EventCancelled), lastEvent(t, w).Event)
	})

	t.Run("success: a slot already held by another booking is left alone", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		other := uuid.New()
		s := w.store.Slot(w.slot.ID())
		require.NoError(t, s.Release(b.ID(), fixedNow))
		require.NoError(t, s.Reserve(other, fixedNow))
		w.store.AddSlot(s)

		uc := commands.NewBookingUseCase(w.store, w.clock)
		require.NoError(t, uc.Cancel(ctx, b.ID(), w.customer))

		got := w.store.Slot(w.slot.ID())
		assert.Equal(t, slot.StatusBooked, got.Status())
		assert.Equal(t, other, *got.BookingID())
	})

	t.Run("error: second cancel hits a terminal state", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.Cancel(ctx, b.ID(), w.customer))
		err := uc.Cancel(ctx, b.ID(), w.customer)
		assert.ErrorIs(t, err, booking.ErrTerminalState)
		assert.Len(t, w.store.Outbox(), 1)
	})

	t.Run("error: couldnt reach cannot be cancelled by the customer", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t, w.assigned(t), func(b *booking.Booking) {
			require.NoError(t, b.MarkCouldntReach(w.staffID, "", fixedNow))
		})
		uc := commands.NewBookingUseCase(w.store, w.clock)

		assert.ErrorIs(t, uc.Cancel(ctx, b.ID(), w.customer), booking.ErrInvalidTransition)
	})

	t.Run("error: another customer's booking is not found", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		err := uc.Cancel(ctx, b.ID(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
		assert.Equal(t, booking.StatusPending, w.store.Booking(b.ID()).Status())
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		w := newWorld(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		err := uc.Cancel(ctx, uuid.New(), w.customer)
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound))
	})

	t.Run("error: failed event write rolls the cancel back", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)
		w.store.FailNext("Enqueue", errors.New("connection reset"))

		err := uc.Cancel(ctx, b.ID(), w.customer)
		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
		assert.Equal(t, booking.StatusPending, w.store.Booking(b.ID()).Status())
		assert.Equal(t, slot.StatusBooked, w.store.Slot(w.slot.ID()).Status())
	})
}

func TestBooking_SubmitFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("success: stores rating and trimmed comment", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.SubmitFeedback(ctx, b.ID(), w.customer, commands.FeedbackRequest{Rating: 5, Comment: "  spotless  "}))

		fb := w.store.Booking(b.ID()).Feedback()
		require.NotNil(t, fb)
		assert.Equal(t, 5, fb.Rating())
		assert.Equal(t, "spotless", fb.Comment())
		assert.Equal(t, fixedNow, fb.SubmittedAt())
		assert.Equal(t, string(booking.EventFeedback), lastEvent(t, w).Event)
	})

	t.Run("error: rating out of range", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		for _, r := range []int{0, 6} {
			err := uc.SubmitFeedback(ctx, b.ID(), w.customer, commands.FeedbackRequest{Rating: r})
			assert.ErrorIs(t, err, booking.ErrInvalidRating)
		}
		assert.Nil(t, w.store.Booking(b.ID()).Feedback())
	})

	t.Run("error: only the owner may leave feedback", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		err := uc.SubmitFeedback(ctx, b.ID(), uuid.New(), commands.FeedbackRequest{Rating: 4})
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestBooking_AssignStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("success: assigning confirms a pending booking", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.AssignStaff(ctx, b.ID(), w.staffID))

		got := w.store.Booking(b.ID())
		assert.Equal(t, booking.StatusConfirmed, got.Status())
		require.NotNil(t, got.StaffID())
		assert.Equal(t, w.staffID, *got.StaffID())

		ev := lastEvent(t, w)
		assert.Equal(t, string(booking.EventStaffAssigned), ev.Event)
		assert.Equal(t, w.staffID, *ev.StaffID)
	})

	t.Run("success: unassigning returns a confirmed booking to pending", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t, w.assigned(t))
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.UnassignStaff(ctx, b.ID()))

		got := w.store.Booking(b.ID())
		assert.Equal(t, booking.StatusPending, got.Status())
		assert.Nil(t, got.StaffID())
		assert.Equal(t, string(booking.EventStaffUnassigned), lastEvent(t, w).Event)
	})

	cases := []struct {
		name  string
		setup func(w *world) uuid.UUID
		want  error
	}{
		{
			name: "inactive staff",
			setup: func(w *world) uuid.UUID {
				id := uuid.New()
				w.store.AddStaff(id, user.RoleStaff, user.StatusInactive)
				return id
			},
			want: booking.ErrStaffInactive,
		},
		{
			name: "customer account",
			setup: func(w *world) uuid.UUID {
				id := uuid.New()
				w.store.AddStaff(id, user.RoleCustomer, user.StatusActive)
				return id
			},
			want: commands.ErrStaffNotFound,
		},
		{
			name:  "unknown user",
			setup: func(*world) uuid.UUID { return uuid.New() },
			want:  commands.ErrStaffNotFound,
		},
	}
	for _, tc := range cases {
		t.Run("error: "+tc.name, func(t *testing.T) {
			w := newWorld(t)
			b := w.paidBooking(t)
			staff := tc.setup(w)
			uc := commands.NewBookingUseCase(w.store, w.clock)

			err := uc.AssignStaff(ctx, b.ID(), staff)
			assert.True(t, errs.Is(err, tc.want), "got %v", err)
			assert.Nil(t, w.store.Booking(b.ID()).StaffID())
			assert.Empty(t, w.store.Outbox())
		})
	}

	t.Run("error: completed bookings cannot be reassigned", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t, w.assigned(t), func(b *booking.Booking) {
			require.NoError(t, b.Complete(w.staffID, true, "", fixedNow))
		})
		uc := commands.NewBookingUseCase(w.store, w.clock)

		assert.ErrorIs(t, uc.AssignStaff(ctx, b.ID(), w.staffID), booking.ErrTerminalState)
		assert.ErrorIs(t, uc.UnassignStaff(ctx, b.ID()), booking.ErrTerminalState)
	})
}

func TestBooking_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success: admin edit records a note", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.SetStatus(ctx, b.ID(), commands.SetStatusRequest{Status: "couldnt_reach", Note: "phone off"}))

		got := w.store.Booking(b.ID())
		assert.Equal(t, booking.StatusCouldntReach, got.Status())
		require.Len(t, got.Notes(), 1)
		assert.Equal(t, "phone off", got.Notes()[0].Text)
		assert.Equal(t, user.RoleAdmin, got.Notes()[0].AddedBy)
		assert.Equal(t, string(booking.EventStatusChanged), lastEvent(t, w).Event)
		// the slot stays booked for anything but cancellation
		assert.Equal(t, slot.StatusBooked, w.store.Slot(w.slot.ID()).Status())
	})

	t.Run("success: cancelling through the admin path frees the slot", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		require.NoError(t, uc.SetStatus(ctx, b.ID(), commands.SetStatusRequest{Status: "cancelled"}))

		assert.Equal(t, slot.StatusAvailable, w.store.Slot(w.slot.ID()).Status())
		assert.Equal(t, string(booking.EventCancelled), lastEvent(t, w).Event)
	})

	t.Run("error: unknown status", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)

		assert.ErrorIs(t, uc.SetStatus(ctx, b.ID(), commands.SetStatusRequest{Status: "done"}), booking.ErrInvalidStatus)
	})

	t.Run("error: terminal bookings are frozen", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t, func(b *booking.Booking) { require.NoError(t, b.Cancel(fixedNow)) })
		uc := commands.NewBookingUseCase(w.store, w.clock)

		assert.ErrorIs(t, uc.SetStatus(ctx, b.ID(), commands.SetStatusRequest{Status: "pending"}), booking.ErrTerminalState)
	})

	t.Run("error: a failed release rolls the status change back", func(t *testing.T) {
		w := newWorld(t)
		b := w.paidBooking(t)
		uc := commands.NewBookingUseCase(w.store, w.clock)
		w.store.FailNext("Release", errors.New("connection reset"))

		err := uc.SetStatus(ctx, b.ID(), commands.SetStatusRequest{Status: "cancelled"})
		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
		assert.Equal(t, booking.StatusPending, w.store.Booking(b.ID()).Status())
		assert.Equal(t, slot.StatusBooked, w.store.Slot(w.slot.ID()).Status())
		assert.Empty(t, w.store.Outbox())
	})
}
