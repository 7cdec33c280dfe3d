package request

import (
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AddressRequest struct {
	Label    string `json:"label" binding:"max=50"`
	Line1    string `json:"line1" binding:"required,max=200"`
	Line2    string `json:"line2" binding:"max=200"`
	City     string `json:"city" binding:"required,max=100"`
	State    string `json:"state" binding:"required,max=100"`
	Pincode  string `json:"pincode" binding:"required,max=10"`
	Landmark string `json:"landmark" binding:"max=200"`
	Phone    string `json:"phone" binding:"max=20"`
}

type CoordinatesRequest struct {
	Latitude  float64 `json:"lat" binding:"min=-90,max=90"`
	Longitude float64 `json:"lng" binding:"min=-180,max=180"`
}

// BookingDataRequest is the booking intent sent at checkout. The schedule is
// either an RFC 3339 scheduledAt or a date/time pair in the business time zone.
type BookingDataRequest struct {
	ServiceID     uuid.UUID           `json:"serviceId" binding:"required"`
	ServiceName   string              `json:"serviceName" binding:"max=200"`
	VehicleID     uuid.UUID           `json:"vehicleId" binding:"required"`
	ScheduledAt   *time.Time          `json:"scheduledAt"`
	ScheduledDate string              `json:"scheduledDate" binding:"omitempty,yyyymmdd"`
	ScheduledTime string              `json:"scheduledTime" binding:"omitempty,hhmm"`
	AddressID     *uuid.UUID          `json:"addressId"`
	Address       *AddressRequest     `json:"address" binding:"omitempty"`
	AddOns        []string            `json:"addOns" binding:"max=20,dive,max=100"`
	Coordinates   *CoordinatesRequest `json:"coordinates" binding:"omitempty"`
	CouponCode    string              `json:"couponCode" binding:"max=50"`
}

type CreateSessionRequest struct {
	BookingData BookingDataRequest `json:"bookingData" binding:"required"`
	PaymentType string             `json:"paymentType" binding:"omitempty,oneof=full advance"`
	Amount      int64              `json:"amount" binding:"required,gt=0"`
}

func (r CreateSessionRequest) ToCommand() (commands.CreateSessionRequest, error) {
	d := r.BookingData
	intent := payment.Intent{
		ServiceID:   d.ServiceID,
		ServiceName: strings.TrimSpace(d.ServiceName),
		VehicleID:   d.VehicleID,
		AddressID:   d.AddressID,
		AddOns:      d.AddOns,
		CouponCode:  strings.TrimSpace(d.CouponCode),
	}
	if intent.AddOns == nil {
		intent.AddOns = []string{}
	}
	if d.ScheduledAt != nil {
		intent.ScheduledAt = *d.ScheduledAt
	}
	if d.Address != nil {
		var addr booking.Address
		if err := copier.Copy(&addr, d.Address); err != nil {
			return commands.CreateSessionRequest{}, err
		}
		intent.Address = &addr
	}
	if d.Coordinates != nil {
		intent.Coordinates = &booking.Coordinates{Latitude: d.Coordinates.Latitude, Longitude: d.Coordinates.Longitude}
	}
	return commands.CreateSessionRequest{
		Intent:        intent,
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: d.ScheduledTime,
		PaymentType:   r.PaymentType,
		Amount:        r.Amount,
	}, nil
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required,max=64"`
	PaymentID string `json:"paymentId" binding:"required,max=64"`
	Signature string `json:"signature" binding:"required,max=256"`
}

func (r VerifyPaymentRequest) ToCommand() commands.VerifyRequest {
	return commands.VerifyRequest{
		OrderID:   strings.TrimSpace(r.OrderID),
		PaymentID: strings.TrimSpace(r.PaymentID),
		Signature: strings.TrimSpace(r.Signature),
	}
}

type PaymentFailureRequest struct {
	SessionID    string `json:"sessionId" binding:"required,max=64"`
	ErrorCode    string `json:"errorCode" binding:"max=100"`
	ErrorMessage string `json:"errorMessage" binding:"max=500"`
}

func (r PaymentFailureRequest) ToCommand() commands.FailureRequest {
	return commands.FailureRequest{
		SessionID:    strings.TrimSpace(r.SessionID),
		ErrorCode:    r.ErrorCode,
		ErrorMessage: r.ErrorMessage,
	}
}
