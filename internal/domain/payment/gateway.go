package payment

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrNotCaptured      = errors.New("payment not completed")
	ErrSessionNotFound  = errors.New("checkout session not found")
)

// State is the gateway's view of a payment.
type State string

const (
	StateCreated    State = "created"
	StateAuthorized State = "authorized"
	StateCaptured   State = "captured"
	StateRefunded   State = "refunded"
	StateFailed     State = "failed"
)

// IsSettled reports whether money has moved far enough to book against.
func (s State) IsSettled() bool {
	return s == StateCaptured || s == StateAuthorized
}

type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
	Receipt     string
	Status      string
	Notes       map[string]string
}

type Payment struct {
	ID          string
	OrderID     string
	AmountMinor int64
	Currency    string
	Status      State
	Method      string
}

// Sign returns hex(HMAC-SHA256(secret, orderID|paymentID)).
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, orderID, paymentID, signature string) error {
	expected := Sign(secret, orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// ToMinorUnits converts whole rupees to paise.
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}

// FromMinorUnits converts paise to rupees, rounding half up.
func FromMinorUnits(minor int64) int64 {
	return (minor + 50) / 100
}

// NewReceipt builds RCP + last 8 digits of unix millis + 4 hex chars.
func NewReceipt(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "RCP" + ms + randomHex(2)
}

// NewSessionID returns sess_ followed by 24 hex chars.
func NewSessionID() string {
	return "sess_" + randomHex(12)
}

func randomHex(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Session is the advisory record returned to the client after opening an order.
type Session struct {
	ID        string    `json:"sessionId"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Gateway client failures, split by whether retrying later could help.
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
)
