package queries

//go:generate go run go.uber.org/mock/mockgen -source=pricing.go -destination=../../../tests/mock/queries/pricing.go -package=queriesmock

import (
	"context"

	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/config"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	ServiceID   uuid.UUID
	VehicleID   *uuid.UUID
	PaymentType string
	CouponCode  string
}

type QuoteView struct {
	ServicePrice  int64  `json:"servicePrice"`
	AddOnsTotal   int64  `json:"addOnsTotal"`
	Discount      int64  `json:"discount"`
	TaxAmount     int64  `json:"taxAmount"`
	TotalAmount   int64  `json:"totalAmount"`
	AdvanceAmount *int64 `json:"advanceAmount,omitempty"`
	PayableAmount int64  `json:"payableAmount"`
	PaymentType   string `json:"paymentType"`
	CouponApplied string `json:"couponApplied,omitempty"`
}

type PricingQueries interface {
	Quote(ctx context.Context, userID uuid.UUID, req QuoteRequest) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	store    CatalogReadStore
	resolver *pricing.Resolver
}

func NewPricingQueries(store CatalogReadStore, cfg config.Config) PricingQueries {
	return &pricingQueriesImpl{store: store, resolver: pricing.NewResolver(cfg.Checkout.AdvanceRatio)}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, userID uuid.UUID, req QuoteRequest) (*QuoteView, error) {
	pt, err := pricing.NewPaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}

	svc, err := q.store.ServiceByID(ctx, req.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	var vehicle *pricing.VehicleSpec
	if req.VehicleID != nil {
		v, verr := q.store.VehicleByID(ctx, *req.VehicleID)
		if verr != nil {
			if infra.IsKind(verr, infra.KindNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, verr
		}
		if v.OwnerID != userID {
			return nil, ErrVehicleNotFound
		}
		vehicle = v.Spec()
	}

	quote, err := q.resolver.Quote(svc.Spec(), vehicle, pt, req.CouponCode)
	if err != nil {
		return nil, err
	}
	return &QuoteView{
		ServicePrice:  quote.ServicePrice,
		AddOnsTotal:   quote.AddOnsTotal,
		Discount:      quote.Discount,
		TaxAmount:     quote.TaxAmount,
		TotalAmount:   quote.TotalAmount,
		AdvanceAmount: quote.AdvanceAmount,
		PayableAmount: quote.Payable(),
		PaymentType:   quote.PaymentType.String(),
		CouponApplied: quote.CouponCode,
	}, nil
}
