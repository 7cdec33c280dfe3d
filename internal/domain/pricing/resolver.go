package pricing

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrInvalidVehicle     = errors.New("invalid vehicle category or body type")
	ErrNoPrice            = errors.New("service has no valid price, please contact support")
)

const DefaultAdvanceRatio = 0.30

// PriceEntry is one row of a service's per-vehicle-type price list, in whole rupees.
type PriceEntry struct {
	VehicleType string
	Price       int64
}

type ServiceSpec struct {
	ID     uuid.UUID
	Name   string
	Prices []PriceEntry
}

type VehicleSpec struct {
	ID       uuid.UUID
	Category VehicleCategory
	BodyType BodyType
}

type Quote struct {
	ServicePrice  int64
	AddOnsTotal   int64
	Discount      int64
	TaxAmount     int64
	TotalAmount   int64
	AdvanceAmount *int64
	PaymentType   PaymentType
	CouponCode    string
}

// Payable is what the customer is charged now.
func (q Quote) Payable() int64 {
	if q.PaymentType == PaymentAdvance && q.AdvanceAmount != nil {
		return *q.AdvanceAmount
	}
	return q.TotalAmount
}

type Resolver struct {
	advanceRatio float64
}

func NewResolver(advanceRatio float64) *Resolver {
	if advanceRatio <= 0 || advanceRatio > 1 {
		advanceRatio = DefaultAdvanceRatio
	}
	return &Resolver{advanceRatio: advanceRatio}
}

// Quote is pure: the same catalog state always yields the same quote.
func (r *Resolver) Quote(svc ServiceSpec, vehicle *VehicleSpec, pt PaymentType, couponCode string) (Quote, error) {
	if !pt.IsValid() {
		return Quote{}, ErrInvalidPaymentType
	}
	price, ok := SelectPrice(svc.Prices, vehicle)
	if !ok || price <= 0 {
		return Quote{}, ErrNoPrice
	}

	// add-ons and coupons are not priced yet
	var addOns, discount int64
	subtotal := price + addOns - discount
	var tax int64
	total := subtotal + tax

	q := Quote{
		ServicePrice: price,
		AddOnsTotal:  addOns,
		Discount:     discount,
		TaxAmount:    tax,
		TotalAmount:  total,
		PaymentType:  pt,
		CouponCode:   strings.TrimSpace(couponCode),
	}
	if pt == PaymentAdvance {
		adv := int64(math.Round(float64(total) * r.advanceRatio))
		q.AdvanceAmount = &adv
	}
	return q, nil
}

// SelectPrice picks a price by body type, then category, then a substring match
// in either direction, then the first entry.
func SelectPrice(prices []PriceEntry, vehicle *VehicleSpec) (int64, bool) {
	if len(prices) == 0 {
		return 0, false
	}
	if vehicle == nil {
		return prices[0].Price, true
	}

	body := strings.ToLower(vehicle.BodyType.String())
	category := strings.ToLower(vehicle.Category.String())

	for _, want := range []string{body, category} {
		if want == "" {
			continue
		}
		for _, p := range prices {
			if strings.ToLower(strings.TrimSpace(p.VehicleType)) == want {
				return p.Price, true
			}
		}
	}

	for _, p := range prices {
		vt := strings.ToLower(strings.TrimSpace(p.VehicleType))
		if vt == "" {
			continue
		}
		for _, want := range []string{body, category} {
			if want != "" && (strings.Contains(vt, want) || strings.Contains(want, vt)) {
				return p.Price, true
			}
		}
	}

	return prices[0].Price, true
}
