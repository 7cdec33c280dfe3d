package payment

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrMissingIntent = errors.New("booking data not found in payment order")
	ErrInvalidIntent = errors.New("serviceId, vehicleId and scheduledAt are required in bookingData")
)

// Metadata keys written onto the gateway order.
const (
	MetaUserID      = "userId"
	MetaPaymentType = "paymentType"
	MetaAmountPaid  = "amountPaid"
	MetaBookingData = "bookingData"
)

// Intent is the booking request carried by a gateway order. It is never stored locally.
type Intent struct {
	ServiceID   uuid.UUID            `json:"serviceId"`
	ServiceName string               `json:"serviceName,omitempty"`
	VehicleID   uuid.UUID            `json:"vehicleId"`
	ScheduledAt time.Time            `json:"scheduledAt"`
	AddressID   *uuid.UUID           `json:"addressId,omitempty"`
	Address     *booking.Address     `json:"address,omitempty"`
	AddOns      []string             `json:"addOns"`
	Coordinates *booking.Coordinates `json:"coordinates,omitempty"`
	CouponCode  string               `json:"couponCode,omitempty"`
}

func (i Intent) Validate() error {
	if i.ServiceID == uuid.Nil || i.VehicleID == uuid.Nil || i.ScheduledAt.IsZero() {
		return ErrInvalidIntent
	}
	return nil
}

// Envelope is the intent plus the checkout terms attached to it.
type Envelope struct {
	UserID      uuid.UUID
	PaymentType pricing.PaymentType
	AmountPaid  int64
	Intent      Intent
}

func EncodeMetadata(e Envelope) (map[string]string, error) {
	data, err := json.Marshal(e.Intent)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		MetaUserID:      e.UserID.String(),
		MetaPaymentType: e.PaymentType.String(),
		MetaAmountPaid:  strconv.FormatInt(e.AmountPaid, 10),
		MetaBookingData: string(data),
	}, nil
}

// DecodeMetadata rebuilds the envelope from gateway notes. A missing payment type
// means full payment; amountPaid is optional.
func DecodeMetadata(notes map[string]string) (Envelope, error) {
	raw := strings.TrimSpace(notes[MetaBookingData])
	if raw == "" {
		return Envelope{}, ErrMissingIntent
	}
	var intent Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return Envelope{}, ErrMissingIntent
	}
	if err := intent.Validate(); err != nil {
		return Envelope{}, err
	}

	pt, err := pricing.NewPaymentType(notes[MetaPaymentType])
	if err != nil {
		return Envelope{}, err
	}

	env := Envelope{PaymentType: pt, Intent: intent}
	if uid, err := uuid.Parse(notes[MetaUserID]); err == nil {
		env.UserID = uid
	}
	if amt := strings.TrimSpace(notes[MetaAmountPaid]); amt != "" {
		if f, err := strconv.ParseFloat(amt, 64); err == nil && f > 0 {
			env.AmountPaid = int64(f + 0.5)
		}
	}
	return env, nil
}
