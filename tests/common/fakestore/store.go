//go:build unit

// Package fakestore is an in-memory shared.UnitOfWork for use-case tests.
// Conditional writes (Reserve, Release, UpdateStatus) follow the same rules as
// the SQL repositories, and a failed Within rolls every change back.
package fakestore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotRow struct {
	id        uuid.UUID
	key       slot.Key
	status    slot.Status
	bookingID *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func (r slotRow) toSlot() *slot.Slot {
	var bid *uuid.UUID
	if r.bookingID != nil {
		v := *r.bookingID
		bid = &v
	}
	return slot.Reconstruct(r.id, r.key, r.status, bid, r.createdAt, r.updatedAt)
}

type addressKey struct {
	id    uuid.UUID
	owner uuid.UUID
}

type state struct {
	slots    map[uuid.UUID]slotRow
	bookings map[uuid.UUID]booking.ReconstructParams
	outbox   []shared.OutboxJob
}

func (s state) clone() state {
	return state{
		slots:    maps.Clone(s.slots),
		bookings: maps.Clone(s.bookings),
		outbox:   slices.Clone(s.outbox),
	}
}

type Store struct {
	mu    sync.Mutex
	state state

	services  map[uuid.UUID]shared.ServiceSnapshot
	vehicles  map[uuid.UUID]shared.VehicleSnapshot
	addresses map[addressKey]booking.Address
	staff     map[uuid.UUID]booking.StaffSpec

	// BeforeReserve runs inside Within just before a reservation is attempted.
	BeforeReserve func(slotID uuid.UUID)

	failures map[string]error
}

func New() *Store {
	return &Store{
		state: state{
			slots:    map[uuid.UUID]slotRow{},
			bookings: map[uuid.UUID]booking.ReconstructParams{},
		},
		services:  map[uuid.UUID]shared.ServiceSnapshot{},
		vehicles:  map[uuid.UUID]shared.VehicleSnapshot{},
		addresses: map[addressKey]booking.Address{},
		staff:     map[uuid.UUID]booking.StaffSpec{},
		failures:  map[string]error{},
	}
}

// FailNext makes the next call of the named repository write (for example
// "Create", "Release" or "Enqueue") return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Seeding helpers. They bypass transactions.

func (s *Store) AddService(svc shared.ServiceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) AddVehicle(v shared.VehicleSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *Store) AddAddress(id, owner uuid.UUID, a booking.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[addressKey{id: id, owner: owner}] = a
}

func (s *Store) AddStaff(id uuid.UUID, role user.Role, status user.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[id] = booking.StaffSpecOf(user.Reconstruct(id, "", "", "", role, status))
}

func (s *Store) AddSlot(sl *slot.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.slots[sl.ID()] = rowOf(sl)
}

func (s *Store) AddBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.bookings[b.ID()] = paramsOf(b)
}

// Inspection helpers.

func (s *Store) Slot(id uuid.UUID) *slot.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.slots[id]
	if !ok {
		return nil
	}
	return r.toSlot()
}

func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.bookings[id]
	if !ok {
		return nil
	}
	return booking.Reconstruct(p)
}

func (s *Store) Bookings() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*booking.Booking, 0, len(s.state.bookings))
	for _, p := range s.state.bookings {
		out = append(out, booking.Reconstruct(p))
	}
	return out
}

func (s *Store) SlotsOn(date slot.Date) []*slot.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*slot.Slot
	for _, r := range s.state.slots {
		if r.key.Date == date {
			out = append(out, r.toSlot())
		}
	}
	slices.SortFunc(out, func(a, b *slot.Slot) int { return int(a.Time()) - int(b.Time()) })
	return out
}

func (s *Store) Outbox() []shared.OutboxJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.outbox)
}

// Within serializes transactions and restores the previous state when fn fails.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.state.clone()
	if err := fn(ctx, &tx{s: s}); err != nil {
		s.state = saved
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{s: s}
}

type tx struct {
	s *Store
}

func (t *tx) Slots() shared.SlotRepository       { return &slotRepo{s: t.s} }
func (t *tx) Bookings() shared.BookingRepository { return &bookingRepo{s: t.s} }
func (t *tx) Outbox() shared.OutboxRepository    { return &outboxRepo{s: t.s} }
func (t *tx) Reads() shared.CommandReads         { return &reads{s: t.s, locked: true} }

func (s *Store) takeFailure(op string) error {
	err := s.failures[op]
	delete(s.failures, op)
	return err
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func conflict(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

type slotRepo struct {
	s *Store
}

func (r *slotRepo) UpsertUnavailable(_ context.Context, slots []*slot.Slot) (int, error) {
	if err := r.s.takeFailure("UpsertUnavailable"); err != nil {
		return 0, err
	}
	created := 0
	for _, sl := range slots {
		if r.findKey(sl.Key()) != nil {
			continue
		}
		r.s.state.slots[sl.ID()] = rowOf(sl)
		created++
	}
	return created, nil
}

func (r *slotRepo) findKey(key slot.Key) *slotRow {
	for _, row := range r.s.state.slots {
		if row.key == key {
			return &row
		}
	}
	return nil
}

func (r *slotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, ok := r.s.state.slots[id]
	if !ok {
		return nil, notFound("slot not found")
	}
	return row.toSlot(), nil
}

func (r *slotRepo) FindByKey(_ context.Context, key slot.Key) (*slot.Slot, error) {
	row := r.findKey(key)
	if row == nil {
		return nil, notFound("slot not found")
	}
	return row.toSlot(), nil
}

func (r *slotRepo) UpdateStatus(_ context.Context, id uuid.UUID, status slot.Status, now time.Time) error {
	if err := r.s.takeFailure("UpdateStatus"); err != nil {
		return err
	}
	row, ok := r.s.state.slots[id]
	if !ok {
		return notFound("slot not found")
	}
	if row.status == slot.StatusBooked || row.bookingID != nil {
		return conflict("slot is booked")
	}
	row.status = status
	row.updatedAt = now
	r.s.state.slots[id] = row
	return nil
}

func (r *slotRepo) UpdateStatusForDate(_ context.Context, date slot.Date, status slot.Status, now time.Time) (int64, error) {
	if err := r.s.takeFailure("UpdateStatusForDate"); err != nil {
		return 0, err
	}
	var n int64
	for id, row := range r.s.state.slots {
		if row.key.Date != date || row.status == slot.StatusBooked || row.bookingID != nil || row.status == status {
			continue
		}
		row.status = status
		row.updatedAt = now
		r.s.state.slots[id] = row
		n++
	}
	return n, nil
}

func (r *slotRepo) Reserve(_ context.Context, id, bookingID uuid.UUID, now time.Time) error {
	if hook := r.s.BeforeReserve; hook != nil {
		hook(id)
	}
	if err := r.s.takeFailure("Reserve"); err != nil {
		return err
	}
	row, ok := r.s.state.slots[id]
	if !ok {
		return notFound("slot not found")
	}
	if row.status != slot.StatusAvailable || row.bookingID != nil {
		return conflict("slot is not available")
	}
	bid := bookingID
	row.status = slot.StatusBooked
	row.bookingID = &bid
	row.updatedAt = now
	r.s.state.slots[id] = row
	return nil
}

func (r *slotRepo) Release(_ context.Context, id, bookingID uuid.UUID, now time.Time) error {
	if err := r.s.takeFailure("Release"); err != nil {
		return err
	}
	row, ok := r.s.state.slots[id]
	if !ok {
		return notFound("slot not found")
	}
	if row.bookingID == nil || *row.bookingID != bookingID {
		return conflict("slot is not held by this booking")
	}
	row.status = slot.StatusAvailable
	row.bookingID = nil
	row.updatedAt = now
	r.s.state.slots[id] = row
	return nil
}

// MarkBooked books a slot for another booking. It does not lock and is meant
// to be called from BeforeReserve to stand in for a competing writer.
func (s *Store) MarkBooked(id, bookingID uuid.UUID) {
	row := s.state.slots[id]
	bid := bookingID
	row.status = slot.StatusBooked
	row.bookingID = &bid
	s.state.slots[id] = row
}

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.s.takeFailure("Create"); err != nil {
		return err
	}
	if _, ok := r.s.state.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if pid := b.GatewayPaymentID(); pid != "" {
		for _, p := range r.s.state.bookings {
			if p.GatewayPaymentID == pid {
				return infra.WrapRepoErr("payment already booked", nil, infra.KindDuplicateKey)
			}
		}
	}
	r.s.state.bookings[b.ID()] = paramsOf(b)
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if err := r.s.takeFailure("Update"); err != nil {
		return err
	}
	if _, ok := r.s.state.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	r.s.state.bookings[b.ID()] = paramsOf(b)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	p, ok := r.s.state.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return booking.Reconstruct(p), nil
}

type outboxRepo struct {
	s *Store
}

func (r *outboxRepo) Enqueue(_ context.Context, job shared.OutboxJob) error {
	if err := r.s.takeFailure("Enqueue"); err != nil {
		return err
	}
	r.s.state.outbox = append(r.s.state.outbox, job)
	return nil
}

// reads takes the store lock itself unless it runs inside Within.
type reads struct {
	s      *Store
	locked bool
}

func (r *reads) lock() func() {
	if r.locked {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *reads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	defer r.lock()()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, notFound("service not found")
	}
	return &svc, nil
}

func (r *reads) VehicleByID(_ context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error) {
	defer r.lock()()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, notFound("vehicle not found")
	}
	return &v, nil
}

func (r *reads) AddressByID(_ context.Context, id, ownerID uuid.UUID) (*booking.Address, error) {
	defer r.lock()()
	a, ok := r.s.addresses[addressKey{id: id, owner: ownerID}]
	if !ok {
		return nil, notFound("address not found")
	}
	return &a, nil
}

func (r *reads) StaffByID(_ context.Context, id uuid.UUID) (*booking.StaffSpec, error) {
	defer r.lock()()
	st, ok := r.s.staff[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &st, nil
}

func (r *reads) BookingByPaymentID(_ context.Context, paymentID string) (*shared.PaidBooking, error) {
	defer r.lock()()
	for id, p := range r.s.state.bookings {
		if p.GatewayPaymentID == paymentID {
			return &shared.PaidBooking{ID: id, UserID: p.UserID}, nil
		}
	}
	return nil, notFound("booking not found")
}

func (r *reads) SlotByKey(_ context.Context, key slot.Key) (*slot.Slot, error) {
	defer r.lock()()
	for _, row := range r.s.state.slots {
		if row.key == key {
			return row.toSlot(), nil
		}
	}
	return nil, notFound("slot not found")
}

func rowOf(sl *slot.Slot) slotRow {
	var bid *uuid.UUID
	if sl.BookingID() != nil {
		v := *sl.BookingID()
		bid = &v
	}
	return slotRow{
		id:        sl.ID(),
		key:       sl.Key(),
		status:    sl.Status(),
		bookingID: bid,
		createdAt: sl.CreatedAt(),
		updatedAt: sl.UpdatedAt(),
	}
}

// paramsOf copies b so later mutations of b never leak into stored state.
func paramsOf(b *booking.Booking) booking.ReconstructParams {
	var staffID *uuid.UUID
	if b.StaffID() != nil {
		v := *b.StaffID()
		staffID = &v
	}
	var advance *int64
	if b.AdvanceAmount() != nil {
		v := *b.AdvanceAmount()
		advance = &v
	}
	var fb *booking.Feedback
	if b.Feedback() != nil {
		v := *b.Feedback()
		fb = &v
	}
	return booking.ReconstructParams{
		ID:               b.ID(),
		Number:           b.Number(),
		UserID:           b.UserID(),
		ServiceID:        b.ServiceID(),
		ServiceName:      b.ServiceName(),
		VehicleID:        b.VehicleID(),
		SlotID:           b.SlotID(),
		Address:          b.Address(),
		ScheduledAt:      b.ScheduledAt(),
		AddOns:           slices.Clone(b.AddOns()),
		PaymentType:      b.PaymentType(),
		Status:           b.Status(),
		PaymentStatus:    b.PaymentStatus(),
		Amount:           b.Amount(),
		TotalAmount:      b.TotalAmount(),
		AdvanceAmount:    advance,
		StaffID:          staffID,
		Notes:            slices.Clone(b.Notes()),
		Feedback:         fb,
		Coordinates:      b.Coordinates(),
		CouponCode:       b.CouponCode(),
		GatewayOrderID:   b.GatewayOrderID(),
		GatewayPaymentID: b.GatewayPaymentID(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}
