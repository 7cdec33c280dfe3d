package pricing

import "strings"

type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentAdvance PaymentType = "advance"
)

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentFull, PaymentAdvance:
		return true
	default:
		return false
	}
}

// NewPaymentType defaults an empty value to full payment.
func NewPaymentType(s string) (PaymentType, error) {
	if s == "" {
		return PaymentFull, nil
	}
	p := PaymentType(strings.ToLower(s))
	if !p.IsValid() {
		return "", ErrInvalidPaymentType
	}
	return p, nil
}

type VehicleCategory string

const (
	CategoryCar  VehicleCategory = "car"
	CategoryBike VehicleCategory = "bike"
)

func (c VehicleCategory) String() string {
	return string(c)
}

func (c VehicleCategory) IsValid() bool {
	switch c {
	case CategoryCar, CategoryBike:
		return true
	default:
		return false
	}
}

func NewVehicleCategory(s string) (VehicleCategory, error) {
	c := VehicleCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidVehicle
	}
	return c, nil
}

type BodyType string

const (
	BodySedan      BodyType = "sedan"
	BodySUV        BodyType = "suv"
	BodyHatchback  BodyType = "hatchback"
	BodyLuxury     BodyType = "luxury"
	BodySuperBike  BodyType = "super-bike"
	BodySportsBike BodyType = "sports-bike"
	BodyCruiser    BodyType = "cruiser"
	BodyScooty     BodyType = "scooty"
	BodyScooter    BodyType = "scooter"
	BodyMotorcycle BodyType = "motorcycle"
)

func (b BodyType) String() string {
	return string(b)
}

func (b BodyType) IsValid() bool {
	switch b {
	case BodySedan, BodySUV, BodyHatchback, BodyLuxury,
		BodySuperBike, BodySportsBike, BodyCruiser, BodyScooty, BodyScooter, BodyMotorcycle:
		return true
	default:
		return false
	}
}

// NewBodyType allows an empty body type; vehicles without one price by category.
func NewBodyType(s string) (BodyType, error) {
	b := BodyType(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return "", nil
	}
	if !b.IsValid() {
		return "", ErrInvalidVehicle
	}
	return b, nil
}
