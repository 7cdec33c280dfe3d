package shared

import (
	"time"

	"vehicle-care-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

type ServiceSnapshot struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
	Prices   []pricing.PriceEntry
}

func (s ServiceSnapshot) Spec() pricing.ServiceSpec {
	return pricing.ServiceSpec{ID: s.ID, Name: s.Name, Prices: s.Prices}
}

type VehicleSnapshot struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Category pricing.VehicleCategory
	BodyType pricing.BodyType
}

func (v VehicleSnapshot) Spec() *pricing.VehicleSpec {
	return &pricing.VehicleSpec{ID: v.ID, Category: v.Category, BodyType: v.BodyType}
}

// PaidBooking identifies the booking a gateway payment already produced.
type PaidBooking struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

type OutboxJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// ClaimedJob is an outbox row locked for delivery.
type ClaimedJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}
