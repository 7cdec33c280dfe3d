//go:build unit || e2e

package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"vehicle-care-booking/internal/domain/payment"
)

type order struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

type paymentRecord struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

// Server is an in-memory orders/payments API speaking the same JSON as the real gateway.
type Server struct {
	*httptest.Server

	secret string

	mu       sync.Mutex
	seq      int
	orders   map[string]*order
	payments map[string]*paymentRecord
	failNext int
}

func NewServer(t *testing.T, keySecret string) *Server {
	t.Helper()

	s := &Server{
		secret:   keySecret,
		orders:   map[string]*order{},
		payments: map[string]*paymentRecord{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/orders", s.createOrder)
	mux.HandleFunc("GET /v1/orders/{id}", s.getOrder)
	mux.HandleFunc("GET /v1/payments/{id}", s.getPayment)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next n requests answer 503.
func (s *Server) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Pay settles orderID for its full amount and returns the payment id with a valid signature.
func (s *Server) Pay(orderID string) (paymentID, signature string) {
	return s.PayWithStatus(orderID, string(payment.StateCaptured))
}

func (s *Server) PayWithStatus(orderID, status string) (paymentID, signature string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return "", ""
	}
	s.seq++
	id := fmt.Sprintf("pay_test%06d", s.seq)
	s.payments[id] = &paymentRecord{
		ID:       id,
		OrderID:  orderID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Status:   status,
		Method:   "upi",
	}
	o.Status = "paid"
	return id, payment.Sign(s.secret, orderID, id)
}

// Order returns a copy of a created order.
func (s *Server) Order(orderID string) (amount int64, notes map[string]string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return 0, nil, false
	}
	cp := make(map[string]string, len(o.Notes))
	for k, v := range o.Notes {
		cp[k] = v
	}
	return o.Amount, cp, true
}

func (s *Server) failing(w http.ResponseWriter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext <= 0 {
		return false
	}
	s.failNext--
	w.WriteHeader(http.StatusServiceUnavailable)
	return true
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	if s.failing(w) {
		return
	}
	var body order
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST_ERROR", "invalid order")
		return
	}

	s.mu.Lock()
	s.seq++
	body.ID = fmt.Sprintf("order_test%06d", s.seq)
	body.Status = "created"
	s.orders[body.ID] = &body
	resp := body
	s.mu.Unlock()

	writeJSON(w, resp)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	if s.failing(w) {
		return
	}
	s.mu.Lock()
	o, ok := s.orders[r.PathValue("id")]
	var resp order
	if ok {
		resp = *o
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "BAD_REQUEST_ERROR", "order does not exist")
		return
	}
	writeJSON(w, resp)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	if s.failing(w) {
		return
	}
	id := r.PathValue("id")
	s.mu.Lock()
	p, ok := s.payments[id]
	var resp paymentRecord
	if ok {
		resp = *p
	}
	s.mu.Unlock()
	if !ok || !strings.HasPrefix(id, "pay_") {
		writeError(w, http.StatusNotFound, "BAD_REQUEST_ERROR", "payment does not exist")
		return
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "description": desc},
	})
}
