//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-care-booking/internal/domain/booking"
	reqdto "vehicle-care-booking/internal/handler/dto/request"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	ServiceID     uuid.UUID
	VehicleID     uuid.UUID
	AddressID     *uuid.UUID
	ScheduledDate string
	ScheduledTime string
	PaymentType   string
	Amount        int64
	OrderID       string
	PaymentID     string
	Signature     string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	addr := uuid.New()
	return &CheckoutBuilder{
		ServiceID:     uuid.New(),
		VehicleID:     uuid.New(),
		AddressID:     &addr,
		ScheduledDate: "2025-11-10",
		ScheduledTime: "10:00",
		PaymentType:   "full",
		Amount:        500,
		OrderID:       "order_Nq2x7K1",
		PaymentID:     "pay_Nq2x9Lm",
		Signature:     "5f0c7a1e",
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

// Build methods

func (b *CheckoutBuilder) BuildCreateSessionRequestDTO() reqdto.CreateSessionRequest {
	return reqdto.CreateSessionRequest{
		BookingData: reqdto.BookingDataRequest{
			ServiceID:     b.ServiceID,
			ServiceName:   "Foam Wash",
			VehicleID:     b.VehicleID,
			ScheduledDate: b.ScheduledDate,
			ScheduledTime: b.ScheduledTime,
			AddressID:     b.AddressID,
			AddOns:        []string{},
		},
		PaymentType: b.PaymentType,
		Amount:      b.Amount,
	}
}

func (b *CheckoutBuilder) BuildVerifyRequestDTO() reqdto.VerifyPaymentRequest {
	return reqdto.VerifyPaymentRequest{OrderID: b.OrderID, PaymentID: b.PaymentID, Signature: b.Signature}
}

func (b *CheckoutBuilder) BuildSessionResult(now time.Time) *commands.SessionResult {
	return &commands.SessionResult{
		SessionID: "cs_" + b.OrderID,
		OrderID:   b.OrderID,
		Amount:    b.Amount,
		Currency:  "INR",
		ExpiresAt: now.Add(15 * time.Minute),
	}
}

// BuildBookingView returns a read model as the booking read store would produce it.
func (b *BookingBuilder) BuildBookingView() *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID,
		BookingNumber: booking.NewNumber(b.Now),
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		VehicleID:     b.VehicleID,
		SlotID:        b.SlotID,
		Address:       b.Address,
		FullAddress:   b.Address.FullAddress(),
		ScheduledAt:   b.ScheduledAt,
		AddOns:        []string{},
		PaymentType:   b.PaymentType.String(),
		Status:        b.Status.String(),
		PaymentStatus: string(b.PaymentStatus),
		Amount:        b.Amount,
		TotalAmount:   b.Amount,
		AdvanceAmount: b.AdvanceAmount,
		StaffID:       b.StaffID,
		Notes:         []booking.Note{},
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}
