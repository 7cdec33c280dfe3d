package booking

import (
	"errors"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrTerminalState       = errors.New("booking is completed or cancelled and can no longer change")
	ErrInvalidTransition   = errors.New("booking cannot move to the requested status")
	ErrAlreadyPaid         = errors.New("booking is already paid")
	ErrNotAssignedStaff    = errors.New("booking is not assigned to this staff member")
	ErrNotStaff            = errors.New("user is not a staff member")
	ErrStaffInactive       = errors.New("cannot assign inactive staff member")
	ErrMissingIntentFields = errors.New("service, vehicle and schedule are required")
)

// Draft carries everything needed to materialize a paid booking.
type Draft struct {
	UserID      uuid.UUID
	ServiceID   uuid.UUID
	ServiceName string
	VehicleID   uuid.UUID
	SlotID      uuid.UUID
	Address     Address
	ScheduledAt time.Time
	AddOns      []string
	Coordinates *Coordinates
	CouponCode  string
	Quote       pricing.Quote
}

// StaffSpec is the view of a staff account needed to guard assignment.
type StaffSpec struct {
	ID     uuid.UUID
	Name   string
	Role   user.Role
	Status user.Status
}

func StaffSpecOf(u *user.User) StaffSpec {
	return StaffSpec{ID: u.ID(), Name: u.DisplayName(), Role: u.Role(), Status: u.Status()}
}

type Booking struct {
	id               uuid.UUID
	number           string
	userID           uuid.UUID
	serviceID        uuid.UUID
	serviceName      string
	vehicleID        uuid.UUID
	slotID           uuid.UUID
	address          Address
	scheduledAt      time.Time
	addOns           []string
	paymentType      pricing.PaymentType
	status           Status
	paymentStatus    PaymentStatus
	amount           int64
	totalAmount      int64
	advanceAmount    *int64
	staffID          *uuid.UUID
	notes            []Note
	feedback         *Feedback
	coordinates      *Coordinates
	couponCode       string
	gatewayOrderID   string
	gatewayPaymentID string
	createdAt        time.Time
	updatedAt        time.Time
}

func New(d Draft, now time.Time) (*Booking, error) {
	if d.UserID == uuid.Nil || d.ServiceID == uuid.Nil || d.VehicleID == uuid.Nil || d.ScheduledAt.IsZero() {
		return nil, ErrMissingIntentFields
	}
	if !d.Quote.PaymentType.IsValid() {
		return nil, pricing.ErrInvalidPaymentType
	}

	var advance *int64
	if d.Quote.AdvanceAmount != nil {
		v := *d.Quote.AdvanceAmount
		advance = &v
	}

	return &Booking{
		id:            uuid.New(),
		number:        NewNumber(now),
		userID:        d.UserID,
		serviceID:     d.ServiceID,
		serviceName:   strings.TrimSpace(d.ServiceName),
		vehicleID:     d.VehicleID,
		slotID:        d.SlotID,
		address:       d.Address,
		scheduledAt:   d.ScheduledAt,
		addOns:        append([]string(nil), d.AddOns...),
		paymentType:   d.Quote.PaymentType,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		amount:        d.Quote.ServicePrice,
		totalAmount:   d.Quote.TotalAmount,
		advanceAmount: advance,
		coordinates:   d.Coordinates,
		couponCode:    d.CouponCode,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	Number           string
	UserID           uuid.UUID
	ServiceID        uuid.UUID
	ServiceName      string
	VehicleID        uuid.UUID
	SlotID           uuid.UUID
	Address          Address
	ScheduledAt      time.Time
	AddOns           []string
	PaymentType      pricing.PaymentType
	Status           Status
	PaymentStatus    PaymentStatus
	Amount           int64
	TotalAmount      int64
	AdvanceAmount    *int64
	StaffID          *uuid.UUID
	Notes            []Note
	Feedback         *Feedback
	Coordinates      *Coordinates
	CouponCode       string
	GatewayOrderID   string
	GatewayPaymentID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:               p.ID,
		number:           p.Number,
		userID:           p.UserID,
		serviceID:        p.ServiceID,
		serviceName:      p.ServiceName,
		vehicleID:        p.VehicleID,
		slotID:           p.SlotID,
		address:          p.Address,
		scheduledAt:      p.ScheduledAt,
		addOns:           p.AddOns,
		paymentType:      p.PaymentType,
		status:           p.Status,
		paymentStatus:    p.PaymentStatus,
		amount:           p.Amount,
		totalAmount:      p.TotalAmount,
		advanceAmount:    p.AdvanceAmount,
		staffID:          p.StaffID,
		notes:            p.Notes,
		feedback:         p.Feedback,
		coordinates:      p.Coordinates,
		couponCode:       p.CouponCode,
		gatewayOrderID:   p.GatewayOrderID,
		gatewayPaymentID: p.GatewayPaymentID,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) Number() string                   { return b.number }
func (b *Booking) UserID() uuid.UUID                { return b.userID }
func (b *Booking) ServiceID() uuid.UUID             { return b.serviceID }
func (b *Booking) ServiceName() string              { return b.serviceName }
func (b *Booking) VehicleID() uuid.UUID             { return b.vehicleID }
func (b *Booking) SlotID() uuid.UUID                { return b.slotID }
func (b *Booking) Address() Address                 { return b.address }
func (b *Booking) ScheduledAt() time.Time           { return b.scheduledAt }
func (b *Booking) AddOns() []string                 { return b.addOns }
func (b *Booking) PaymentType() pricing.PaymentType { return b.paymentType }
func (b *Booking) Status() Status                   { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus     { return b.paymentStatus }
func (b *Booking) Amount() int64                    { return b.amount }
func (b *Booking) TotalAmount() int64               { return b.totalAmount }
func (b *Booking) AdvanceAmount() *int64            { return b.advanceAmount }
func (b *Booking) StaffID() *uuid.UUID              { return b.staffID }
func (b *Booking) Notes() []Note                    { return b.notes }
func (b *Booking) Feedback() *Feedback              { return b.feedback }
func (b *Booking) Coordinates() *Coordinates        { return b.coordinates }
func (b *Booking) CouponCode() string               { return b.couponCode }
func (b *Booking) GatewayOrderID() string           { return b.gatewayOrderID }
func (b *Booking) GatewayPaymentID() string         { return b.gatewayPaymentID }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) IsAssignedTo(staffID uuid.UUID) bool {
	return b.staffID != nil && *b.staffID == staffID
}

// MarkPaid records the gateway references. Payment becomes paid exactly once.
func (b *Booking) MarkPaid(orderID, paymentID string, now time.Time) error {
	if b.paymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	b.paymentStatus = PaymentPaid
	b.gatewayOrderID = orderID
	b.gatewayPaymentID = paymentID
	b.updatedAt = now
	return nil
}

// ApplyCapturedAmount books what the gateway captured. Advance payments take the
// captured amount as is; for full payments it reports a mismatch with the total
// and leaves the total alone.
func (b *Booking) ApplyCapturedAmount(captured int64) (mismatch bool) {
	if captured <= 0 {
		return false
	}
	if b.paymentType == pricing.PaymentAdvance {
		v := captured
		b.advanceAmount = &v
		return false
	}
	return captured != b.totalAmount
}

func (b *Booking) AssignStaff(staff StaffSpec, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	if staff.Role != user.RoleStaff {
		return ErrNotStaff
	}
	if staff.Status != user.StatusActive {
		return ErrStaffInactive
	}
	id := staff.ID
	b.staffID = &id
	if b.status == StatusPending {
		b.status = StatusConfirmed
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) UnassignStaff(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	b.staffID = nil
	if b.status == StatusConfirmed {
		b.status = StatusPending
	}
	b.updatedAt = now
	return nil
}

// Cancel is the customer path. The caller releases the slot.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	if !b.status.IsOpen() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// Complete closes the job. Only the assigned staff member may call it.
func (b *Booking) Complete(staffID uuid.UUID, paymentReceived bool, note string, now time.Time) error {
	if err := b.closeJob(staffID, StatusCompleted, note, now); err != nil {
		return err
	}
	if paymentReceived {
		b.paymentStatus = PaymentPaid
	}
	return nil
}

func (b *Booking) MarkCouldntReach(staffID uuid.UUID, note string, now time.Time) error {
	return b.closeJob(staffID, StatusCouldntReach, note, now)
}

func (b *Booking) closeJob(staffID uuid.UUID, to Status, note string, now time.Time) error {
	if !b.IsAssignedTo(staffID) {
		return ErrNotAssignedStaff
	}
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	if !b.status.IsOpen() {
		return ErrInvalidTransition
	}
	b.status = to
	b.addNote(note, user.RoleStaff, now)
	b.updatedAt = now
	return nil
}

// AdminSetStatus is the admin direct edit: any valid status from a non-terminal one.
// Moving to cancelled obliges the caller to release the slot.
func (b *Booking) AdminSetStatus(to Status, note string, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	b.status = to
	b.addNote(note, user.RoleAdmin, now)
	b.updatedAt = now
	return nil
}

func (b *Booking) SubmitFeedback(fb Feedback, now time.Time) {
	b.feedback = &fb
	b.updatedAt = now
}

func (b *Booking) addNote(text string, by user.Role, at time.Time) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.notes = append(b.notes, Note{Text: text, AddedBy: by, AddedAt: at})
}
