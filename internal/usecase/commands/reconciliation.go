package commands

//go:generate go run go.uber.org/mock/mockgen -source=reconciliation.go -destination=../../../tests/mock/commands/reconciliation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

type VerifyResult struct {
	Success   bool
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Replayed  bool
}

// ReconciliationCommands is the only path that creates a paid booking.
type ReconciliationCommands interface {
	Verify(ctx context.Context, userID uuid.UUID, req VerifyRequest) (*VerifyResult, error)
}

type reconciliationUseCaseImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	metrics  Recorder
	resolver *pricing.Resolver
	checkout config.CheckoutConfig
	gwConfig config.GatewayConfig
	clock    clock.Clock
}

func NewReconciliationUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	metrics Recorder,
	cfg config.Config,
	clk clock.Clock,
) ReconciliationCommands {
	return &reconciliationUseCaseImpl{
		uow:      uow,
		gateway:  gateway,
		metrics:  metrics,
		resolver: pricing.NewResolver(cfg.Checkout.AdvanceRatio),
		checkout: cfg.Checkout,
		gwConfig: cfg.Gateway,
		clock:    clk,
	}
}

func (uc *reconciliationUseCaseImpl) Verify(ctx context.Context, userID uuid.UUID, req VerifyRequest) (*VerifyResult, error) {
	res, err := uc.verify(ctx, userID, req)
	switch {
	case err != nil:
		uc.metrics.PaymentVerification(outcome(err))
	case res.Replayed:
		uc.metrics.PaymentVerification(ResultReplayed)
	default:
		uc.metrics.PaymentVerification(ResultSuccess)
	}
	return res, err
}

func (uc *reconciliationUseCaseImpl) verify(ctx context.Context, userID uuid.UUID, req VerifyRequest) (*VerifyResult, error) {
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" || strings.TrimSpace(req.Signature) == "" {
		return nil, errs.Wrap(ErrInvalidInput, "orderId, paymentId and signature are required")
	}
	if !uc.gwConfig.Configured() {
		return nil, ErrGatewayNotConfigured
	}
	if err := payment.VerifySignature(uc.gwConfig.KeySecret, req.OrderID, req.PaymentID, req.Signature); err != nil {
		slog.WarnContext(ctx, "payment signature mismatch",
			"user_id", userID, "order_id", req.OrderID, "payment_id", req.PaymentID)
		return nil, errs.Mark(err, ErrPaymentVerification)
	}

	reads := uc.uow.CommandReads()
	if res, ok, err := uc.replay(ctx, reads, userID, req); err != nil || ok {
		return res, err
	}

	pay, order, err := uc.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if !pay.Status.IsSettled() {
		return nil, errs.Mark(errs.Wrapf(payment.ErrNotCaptured, "payment status %s", pay.Status), ErrPaymentVerification)
	}
	if pay.OrderID != "" && pay.OrderID != order.ID {
		return nil, errs.Wrap(ErrPaymentVerification, "payment does not belong to order")
	}

	env, err := payment.DecodeMetadata(order.Notes)
	if err != nil {
		return nil, err
	}
	if env.UserID != uuid.Nil && env.UserID != userID {
		return nil, ErrPaymentOwnerMismatch
	}

	draft, err := uc.draft(ctx, reads, userID, env)
	if err != nil {
		return nil, err
	}

	captured := payment.FromMinorUnits(pay.AmountMinor)
	if captured <= 0 {
		captured = env.AmountPaid
	}

	key := slot.KeyFromInstant(draft.ScheduledAt, uc.checkout.Location())
	var bookingID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, terr := tx.Slots().FindByKey(ctx, key)
		if terr != nil {
			return notFoundAs(terr, ErrSlotNotFound)
		}
		if !s.IsAvailable() {
			return ErrSlotTaken
		}

		draft.SlotID = s.ID()
		now := uc.clock.Now()
		b, terr := booking.New(draft, now)
		if terr != nil {
			return terr
		}
		if b.ApplyCapturedAmount(captured) {
			slog.WarnContext(ctx, "captured amount differs from booking total",
				"order_id", order.ID, "paid", captured, "expected", b.TotalAmount())
		}
		if terr = b.MarkPaid(order.ID, pay.ID, now); terr != nil {
			return terr
		}

		if terr = tx.Bookings().Create(ctx, b); terr != nil {
			if infra.IsKind(terr, infra.KindDuplicateKey) {
				return errs.Mark(terr, errReplay)
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if terr = tx.Slots().Reserve(ctx, s.ID(), b.ID(), now); terr != nil {
			if infra.IsAnyKind(terr, infra.KindConflict, infra.KindNotFound) {
				uc.metrics.SlotReservation(ResultConflict)
				return errs.Mark(terr, ErrSlotTaken)
			}
			return errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		uc.metrics.SlotReservation(ResultSuccess)

		bookingID = b.ID()
		return enqueueEvent(ctx, tx, b, booking.EventCreated, now)
	})

	switch {
	case err == nil:
	case errs.Is(err, errReplay):
		if res, ok, rerr := uc.replay(ctx, reads, userID, req); rerr != nil || ok {
			return res, rerr
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	case errs.Is(err, ErrSlotTaken):
		slog.WarnContext(ctx, "slot taken after payment; refund required",
			"user_id", userID, "order_id", order.ID, "payment_id", pay.ID, "slot", key.String())
		return nil, err
	default:
		return nil, err
	}

	slog.InfoContext(ctx, "booking materialized",
		"booking_id", bookingID, "order_id", order.ID, "payment_id", pay.ID)
	return &VerifyResult{
		Success:   true,
		BookingID: bookingID,
		OrderID:   order.ID,
		PaymentID: pay.ID,
	}, nil
}

// errReplay marks a unique violation on the payment id.
var errReplay = errs.New("payment already materialized")

func (uc *reconciliationUseCaseImpl) replay(ctx context.Context, reads shared.CommandReads, userID uuid.UUID, req VerifyRequest) (*VerifyResult, bool, error) {
	paid, err := reads.BookingByPaymentID(ctx, req.PaymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if paid.UserID != userID {
		slog.WarnContext(ctx, "payment replay by another user",
			"booking_id", paid.ID, "payment_id", req.PaymentID, "user_id", userID)
		return nil, true, ErrPaymentOwnerMismatch
	}
	slog.InfoContext(ctx, "payment verification replayed", "booking_id", paid.ID, "payment_id", req.PaymentID)
	return &VerifyResult{
		Success:   true,
		BookingID: paid.ID,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Replayed:  true,
	}, true, nil
}

// fetch asks the gateway for the payment and the order in parallel. Both are required.
func (uc *reconciliationUseCaseImpl) fetch(ctx context.Context, req VerifyRequest) (*payment.Payment, *payment.Order, error) {
	var (
		pay   *payment.Payment
		order *payment.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.gateway.FetchPayment(gctx, req.PaymentID)
		pay = p
		return err
	})
	g.Go(func() error {
		o, err := uc.gateway.FetchOrder(gctx, req.OrderID)
		order = o
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "gateway lookup failed",
			"order_id", req.OrderID, "payment_id", req.PaymentID, "error", err.Error())
		if errs.Is(err, payment.ErrGatewayUnavailable) {
			return nil, nil, err
		}
		return nil, nil, errs.Mark(err, ErrPaymentVerification)
	}
	return pay, order, nil
}

// draft rebuilds the booking from the intent against current catalog state.
func (uc *reconciliationUseCaseImpl) draft(ctx context.Context, reads shared.CommandReads, userID uuid.UUID, env payment.Envelope) (booking.Draft, error) {
	intent := env.Intent
	svc, quote, err := quoteIntent(ctx, reads, uc.resolver, userID, intent, env.PaymentType)
	if err != nil {
		return booking.Draft{}, err
	}

	addr, err := resolveAddress(ctx, reads, userID, intent)
	if err != nil {
		return booking.Draft{}, err
	}

	return booking.Draft{
		UserID:      userID,
		ServiceID:   intent.ServiceID,
		ServiceName: svc.Name,
		VehicleID:   intent.VehicleID,
		Address:     addr,
		ScheduledAt: intent.ScheduledAt,
		AddOns:      intent.AddOns,
		Coordinates: intent.Coordinates,
		CouponCode:  intent.CouponCode,
		Quote:       quote,
	}, nil
}
