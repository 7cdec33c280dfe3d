package queries

//go:generate go run go.uber.org/mock/mockgen -source=types.go -destination=../../../tests/mock/queries/types.go -package=queriesmock

import (
	"context"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrJobForbidden    = errs.New("job is not assigned to this staff member")
	ErrInvalidFilter   = errs.New("invalid filter")
	ErrServiceNotFound = errs.New("service not found")
	ErrVehicleNotFound = errs.New("vehicle not found")
)

// Read models (DTO for read side)
type SlotView struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Status    string     `json:"status"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
	Booked    bool       `json:"booked"`
}

type AvailableSlotView struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

type FeedbackView struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type BookingView struct {
	ID              uuid.UUID            `json:"id"`
	BookingNumber   string               `json:"bookingNumber"`
	UserID          uuid.UUID            `json:"userId"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail,omitempty"`
	CustomerPhone   string               `json:"customerPhone,omitempty"`
	ServiceID       uuid.UUID            `json:"serviceId"`
	ServiceName     string               `json:"serviceName"`
	VehicleID       uuid.UUID            `json:"vehicleId"`
	VehicleCategory string               `json:"vehicleCategory,omitempty"`
	VehicleBodyType string               `json:"vehicleBodyType,omitempty"`
	VehicleBrand    string               `json:"vehicleBrand,omitempty"`
	VehicleModel    string               `json:"vehicleModel,omitempty"`
	PlateNumber     string               `json:"plateNumber,omitempty"`
	SlotID          uuid.UUID            `json:"slotId"`
	SlotDate        string               `json:"slotDate,omitempty"`
	SlotTime        string               `json:"slotTime,omitempty"`
	DisplayTime     string               `json:"displayTime,omitempty"`
	Address         booking.Address      `json:"address"`
	FullAddress     string               `json:"fullAddress"`
	ScheduledAt     time.Time            `json:"scheduledAt"`
	AddOns          []string             `json:"addOns"`
	PaymentType     string               `json:"paymentType"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"paymentStatus"`
	Amount          int64                `json:"amount"`
	TotalAmount     int64                `json:"totalAmount"`
	AdvanceAmount   *int64               `json:"advanceAmount,omitempty"`
	StaffID         *uuid.UUID           `json:"staffId,omitempty"`
	StaffName       string               `json:"staffName,omitempty"`
	Notes           []booking.Note       `json:"notes"`
	Feedback        *FeedbackView        `json:"feedback,omitempty"`
	Coordinates     *booking.Coordinates `json:"coordinates,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// BookingPage is one page of a list plus the totals a client needs to page further.
type BookingPage struct {
	Data       []*BookingView `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// BookingListParams is the raw list input from a handler.
type BookingListParams struct {
	Status   string
	StaffID  *uuid.UUID
	Search   string
	FromDate string
	ToDate   string
	Page     int
	Limit    int
}

// BookingFilter is what the read store understands. Nil fields do not filter.
type BookingFilter struct {
	UserID        *uuid.UUID
	StaffID       *uuid.UUID
	Statuses      []booking.Status
	ServiceSearch string
	BookingID     *uuid.UUID
	From          *time.Time
	To            *time.Time
	Ascending     bool
	Limit         int
	Offset        int
}

type SlotReadStore interface {
	ListByDate(ctx context.Context, date slot.Date) ([]*slot.Slot, error)
	ListAvailableByDate(ctx context.Context, date slot.Date) ([]*slot.Slot, error)
	// AvailableDates returns distinct dates in [from, to] holding at least one available slot, ascending.
	AvailableDates(ctx context.Context, from, to slot.Date) ([]slot.Date, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, f BookingFilter) ([]*BookingView, int, error)
}

type CatalogReadStore interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error)
	VehicleByID(ctx context.Context, id uuid.UUID) (*shared.VehicleSnapshot, error)
}
