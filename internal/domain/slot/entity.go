package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotBooked      = errors.New("slot is booked and can only change through its booking")
	ErrNotAvailable    = errors.New("slot is not available")
	ErrBookingMismatch = errors.New("slot is not held by this booking")
)

type Slot struct {
	id        uuid.UUID
	key       Key
	status    Status
	bookingID *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewSlot declares a slot. Declared slots start unavailable until an admin opens them.
func NewSlot(key Key, now time.Time) *Slot {
	return &Slot{
		id:        uuid.New(),
		key:       key,
		status:    StatusUnavailable,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(id uuid.UUID, key Key, status Status, bookingID *uuid.UUID, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:        id,
		key:       key,
		status:    status,
		bookingID: bookingID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) Key() Key              { return s.key }
func (s *Slot) Date() Date            { return s.key.Date }
func (s *Slot) Time() TimeOfDay       { return s.key.Time }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) BookingID() *uuid.UUID { return s.bookingID }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }

func (s *Slot) IsAvailable() bool {
	return s.status == StatusAvailable
}

// IsBooked treats a lingering booking reference as booked even if status drifted.
func (s *Slot) IsBooked() bool {
	return s.status == StatusBooked || s.bookingID != nil
}

func (s *Slot) SetStatus(target Status, now time.Time) error {
	if !target.IsAdminSettable() {
		return ErrInvalidStatus
	}
	if s.status == StatusBooked {
		return ErrSlotBooked
	}
	s.status = target
	s.updatedAt = now
	return nil
}

func (s *Slot) Reserve(bookingID uuid.UUID, now time.Time) error {
	if s.status != StatusAvailable {
		return ErrNotAvailable
	}
	id := bookingID
	s.status = StatusBooked
	s.bookingID = &id
	s.updatedAt = now
	return nil
}

func (s *Slot) Release(bookingID uuid.UUID, now time.Time) error {
	if s.status != StatusBooked || s.bookingID == nil || *s.bookingID != bookingID {
		return ErrBookingMismatch
	}
	s.status = StatusAvailable
	s.bookingID = nil
	s.updatedAt = now
	return nil
}

// Window is a slot with the end time shown to customers.
type Window struct {
	Slot *Slot
	End  TimeOfDay
}

// WithDisplayEnds expects slots sorted by time. Each window ends where the next
// slot starts; the last one runs for an hour.
func WithDisplayEnds(slots []*Slot) []Window {
	out := make([]Window, len(slots))
	for i, s := range slots {
		end := s.Time().Add(slotStepMinute)
		if i+1 < len(slots) {
			end = slots[i+1].Time()
		}
		out[i] = Window{Slot: s, End: end}
	}
	return out
}
