package commands

//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

import (
	"context"
	"time"

	"vehicle-care-booking/internal/domain/payment"

	"github.com/google/uuid"
)

// PaymentGateway is the external orders/payments API. Transport failures are
// marked payment.ErrGatewayUnavailable, refusals payment.ErrGatewayRejected.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error)
	FetchOrder(ctx context.Context, orderID string) (*payment.Order, error)
}

// SessionStore keeps the advisory session index and the per-user checkout budget.
type SessionStore interface {
	Save(ctx context.Context, s payment.Session, ttl time.Duration) error
	// Get returns payment.ErrSessionNotFound when the session is unknown or expired from the index.
	Get(ctx context.Context, sessionID string) (*payment.Session, error)
	Allow(ctx context.Context, userID uuid.UUID, limit int, window time.Duration) (bool, error)
}

// Recorder counts checkout outcomes.
type Recorder interface {
	CheckoutSession(result string)
	PaymentVerification(result string)
	SlotReservation(result string)
}

type NopRecorder struct{}

func (NopRecorder) CheckoutSession(string)     {}
func (NopRecorder) PaymentVerification(string) {}
func (NopRecorder) SlotReservation(string)     {}

// Outcome labels shared by the recorder.
const (
	ResultSuccess     = "success"
	ResultReplayed    = "replayed"
	ResultRejected    = "rejected"
	ResultConflict    = "conflict"
	ResultUpstream    = "upstream_error"
	ResultRateLimited = "rate_limited"
	ResultError       = "error"
)
