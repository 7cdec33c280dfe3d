package commands

//go:generate go run go.uber.org/mock/mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Intent payment.Intent
	// ScheduledDate and ScheduledTime are used when Intent.ScheduledAt is zero.
	ScheduledDate string
	ScheduledTime string
	PaymentType   string
	Amount        int64
}

type SessionResult struct {
	SessionID string
	OrderID   string
	Amount    int64
	Currency  string
	ExpiresAt time.Time
}

type SessionStatus struct {
	SessionID string
	OrderID   string
	ExpiresAt time.Time
	Expired   bool
}

type FailureRequest struct {
	SessionID    string
	ErrorCode    string
	ErrorMessage string
}

type FailureResult struct {
	Success   bool
	Message   string
	ErrorCode string
	OrderID   string
}

// CheckoutCommands opens gateway orders. The booking intent travels on the order;
// nothing about it is persisted here.
type CheckoutCommands interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*SessionResult, error)
	GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionStatus, error)
	HandleFailure(ctx context.Context, userID uuid.UUID, req FailureRequest) (*FailureResult, error)
}

type checkoutUseCaseImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	sessions SessionStore
	metrics  Recorder
	resolver *pricing.Resolver
	checkout config.CheckoutConfig
	gwConfig config.GatewayConfig
	clock    clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	sessions SessionStore,
	metrics Recorder,
	cfg config.Config,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:      uow,
		gateway:  gateway,
		sessions: sessions,
		metrics:  metrics,
		resolver: pricing.NewResolver(cfg.Checkout.AdvanceRatio),
		checkout: cfg.Checkout,
		gwConfig: cfg.Gateway,
		clock:    clk,
	}
}

func (uc *checkoutUseCaseImpl) CreateSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*SessionResult, error) {
	res, err := uc.createSession(ctx, userID, req)
	uc.metrics.CheckoutSession(outcome(err))
	return res, err
}

func (uc *checkoutUseCaseImpl) createSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*SessionResult, error) {
	if req.Amount <= 0 {
		return nil, errs.Wrap(ErrInvalidInput, "amount must be positive")
	}
	loc := uc.checkout.Location()
	intent, err := resolveSchedule(req, loc)
	if err != nil {
		return nil, err
	}
	if err = intent.Validate(); err != nil {
		return nil, err
	}
	pt, err := pricing.NewPaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}

	if !uc.allow(ctx, userID) {
		return nil, ErrRateLimited
	}

	reads := uc.uow.CommandReads()

	// advisory only; reconciliation repeats this check atomically
	key := slot.KeyFromInstant(intent.ScheduledAt, loc)
	s, err := reads.SlotByKey(ctx, key)
	if err != nil {
		return nil, notFoundAs(err, ErrSlotNotFound)
	}
	if !s.IsAvailable() {
		return nil, ErrSlotUnavailable
	}

	svc, quote, err := quoteIntent(ctx, reads, uc.resolver, userID, intent, pt)
	if err != nil {
		return nil, err
	}
	if req.Amount > quote.Payable() {
		return nil, ErrAmountExceedsPayable
	}
	// reconciliation rebuilds the booking from this address after the money has moved
	if _, err = resolveAddress(ctx, reads, userID, intent); err != nil {
		return nil, err
	}
	if !uc.gwConfig.Configured() {
		return nil, ErrGatewayNotConfigured
	}

	intent.ServiceName = svc.Name
	intent.ScheduledAt = intent.ScheduledAt.UTC()
	if intent.AddOns == nil {
		intent.AddOns = []string{}
	}

	notes, err := payment.EncodeMetadata(payment.Envelope{
		UserID:      userID,
		PaymentType: pt,
		AmountPaid:  req.Amount,
		Intent:      intent,
	})
	if err != nil {
		return nil, errs.Wrap(err, "encode order metadata")
	}

	now := uc.clock.Now()
	order, err := uc.gateway.CreateOrder(ctx, payment.OrderRequest{
		AmountMinor: payment.ToMinorUnits(req.Amount),
		Currency:    uc.currency(),
		Receipt:     payment.NewReceipt(now),
		Notes:       notes,
	})
	if err != nil {
		slog.ErrorContext(ctx, "gateway order creation failed",
			"user_id", userID, "error", err.Error())
		return nil, errs.Mark(err, ErrOrderCreationFailed)
	}

	session := payment.Session{
		ID:        payment.NewSessionID(),
		OrderID:   order.ID,
		UserID:    userID.String(),
		ExpiresAt: now.Add(uc.checkout.SessionTTL),
	}
	if serr := uc.sessions.Save(ctx, session, uc.checkout.SessionTTL); serr != nil {
		slog.WarnContext(ctx, "failed to index checkout session",
			"session_id", session.ID, "order_id", order.ID, "error", serr.Error())
	}

	currency := order.Currency
	if currency == "" {
		currency = uc.currency()
	}
	return &SessionResult{
		SessionID: session.ID,
		OrderID:   order.ID,
		Amount:    req.Amount,
		Currency:  currency,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *checkoutUseCaseImpl) GetSession(ctx context.Context, userID uuid.UUID, sessionID string) (*SessionStatus, error) {
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errs.Is(err, payment.ErrSessionNotFound) {
			return nil, errs.Mark(err, ErrSessionNotFound)
		}
		return nil, err
	}
	if s.UserID != userID.String() {
		return nil, ErrSessionNotFound
	}
	return &SessionStatus{
		SessionID: s.ID,
		OrderID:   s.OrderID,
		ExpiresAt: s.ExpiresAt,
		Expired:   s.Expired(uc.clock.Now()),
	}, nil
}

// HandleFailure changes nothing: no booking exists until a payment is verified.
func (uc *checkoutUseCaseImpl) HandleFailure(ctx context.Context, userID uuid.UUID, req FailureRequest) (*FailureResult, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, errs.Wrap(ErrInvalidInput, "sessionId is required")
	}

	res := &FailureResult{
		Success:   false,
		Message:   req.ErrorMessage,
		ErrorCode: req.ErrorCode,
	}
	if res.Message == "" {
		res.Message = "Payment failed"
	}
	if s, err := uc.sessions.Get(ctx, req.SessionID); err == nil && s.UserID == userID.String() {
		res.OrderID = s.OrderID
	}

	slog.InfoContext(ctx, "payment failure reported",
		"user_id", userID, "session_id", req.SessionID, "order_id", res.OrderID, "error_code", req.ErrorCode)
	return res, nil
}

func (uc *checkoutUseCaseImpl) currency() string {
	if uc.gwConfig.Currency == "" {
		return "INR"
	}
	return uc.gwConfig.Currency
}

// allow fails open: a broken limiter must not block payments.
func (uc *checkoutUseCaseImpl) allow(ctx context.Context, userID uuid.UUID) bool {
	if uc.checkout.SessionLimit <= 0 {
		return true
	}
	ok, err := uc.sessions.Allow(ctx, userID, uc.checkout.SessionLimit, uc.checkout.SessionWindow)
	if err != nil {
		slog.WarnContext(ctx, "checkout rate limiter unavailable", "error", err.Error())
		return true
	}
	return ok
}

func resolveSchedule(req CreateSessionRequest, loc *time.Location) (payment.Intent, error) {
	intent := req.Intent
	if !intent.ScheduledAt.IsZero() || (req.ScheduledDate == "" && req.ScheduledTime == "") {
		return intent, nil
	}
	key, err := slot.ParseKey(req.ScheduledDate, req.ScheduledTime)
	if err != nil {
		return payment.Intent{}, err
	}
	intent.ScheduledAt = key.Instant(loc)
	return intent, nil
}

// quoteIntent prices an intent from current catalog state. The vehicle must belong to userID.
func quoteIntent(
	ctx context.Context,
	reads shared.CommandReads,
	resolver *pricing.Resolver,
	userID uuid.UUID,
	intent payment.Intent,
	pt pricing.PaymentType,
) (*shared.ServiceSnapshot, pricing.Quote, error) {
	svc, err := reads.ServiceByID(ctx, intent.ServiceID)
	if err != nil {
		return nil, pricing.Quote{}, notFoundAs(err, ErrServiceNotFound)
	}
	if !svc.IsActive {
		return nil, pricing.Quote{}, ErrServiceNotFound
	}

	var vehicle *pricing.VehicleSpec
	if intent.VehicleID != uuid.Nil {
		v, verr := reads.VehicleByID(ctx, intent.VehicleID)
		if verr != nil {
			return nil, pricing.Quote{}, notFoundAs(verr, ErrVehicleNotFound)
		}
		if v.OwnerID != userID {
			return nil, pricing.Quote{}, ErrVehicleNotFound
		}
		vehicle = v.Spec()
	}

	quote, err := resolver.Quote(svc.Spec(), vehicle, pt, intent.CouponCode)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return svc, quote, nil
}

// resolveAddress returns the saved address owned by userID, or the inline one.
func resolveAddress(ctx context.Context, reads shared.CommandReads, userID uuid.UUID, intent payment.Intent) (booking.Address, error) {
	switch {
	case intent.AddressID != nil:
		a, err := reads.AddressByID(ctx, *intent.AddressID, userID)
		if err != nil {
			return booking.Address{}, notFoundAs(err, ErrAddressNotFound)
		}
		return *a, nil
	case intent.Address != nil && !intent.Address.IsZero():
		return *intent.Address, nil
	default:
		return booking.Address{}, errs.Wrap(ErrInvalidInput, "address is required")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errs.IsAny(err, ErrSlotUnavailable, ErrSlotTaken):
		return ResultConflict
	case errs.Is(err, ErrRateLimited):
		return ResultRateLimited
	case errs.IsAny(err, ErrOrderCreationFailed, ErrGatewayNotConfigured, payment.ErrGatewayUnavailable):
		return ResultUpstream
	case errs.Is(err, ErrDatabaseOperationFailed):
		return ResultError
	default:
		return ResultRejected
	}
}
