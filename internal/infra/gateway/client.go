package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Client talks to a Razorpay-style orders/payments REST API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	maxRetries uint64
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type orderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	Notes    notes  `json:"notes"`
}

type paymentResponse struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// notes decodes an object of strings. The API sends [] when an order has no notes.
type notes map[string]string

func (n *notes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*n = map[string]string{}
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
		default:
			b, err := json.Marshal(t)
			if err != nil {
				return err
			}
			out[k] = string(b)
		}
	}
	*n = out
	return nil
}

// CreateOrder is not retried; a timed out create may still have produced an order.
func (c *Client) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	body := orderBody{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders", body, &resp); err != nil {
		return nil, err
	}
	return resp.toOrder(), nil
}

func (c *Client) FetchOrder(ctx context.Context, orderID string) (*payment.Order, error) {
	var resp orderResponse
	if err := c.retry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/v1/orders/"+url.PathEscape(orderID), nil, &resp)
	}); err != nil {
		return nil, err
	}
	return resp.toOrder(), nil
}

func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error) {
	var resp paymentResponse
	if err := c.retry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &resp)
	}); err != nil {
		return nil, err
	}
	return &payment.Payment{
		ID:          resp.ID,
		OrderID:     resp.OrderID,
		AmountMinor: resp.Amount,
		Currency:    resp.Currency,
		Status:      payment.State(resp.Status),
		Method:      resp.Method,
	}, nil
}

func (r orderResponse) toOrder() *payment.Order {
	return &payment.Order{
		ID:          r.ID,
		AmountMinor: r.Amount,
		Currency:    r.Currency,
		Receipt:     r.Receipt,
		Status:      r.Status,
		Notes:       r.Notes,
	}
}

// retry re-runs op on ErrGatewayUnavailable with exponential backoff.
func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !errs.Is(err, payment.ErrGatewayUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "gateway call failed, retrying",
			"wait_ms", wait.Milliseconds(), "error", err.Error())
	})
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "encode gateway request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Wrap(err, "build gateway request")
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "%s %s", method, path), payment.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "read gateway response"), payment.ErrGatewayUnavailable)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return errs.Mark(errs.Newf("gateway %s %s: status %d", method, path, resp.StatusCode), payment.ErrGatewayUnavailable)
	case resp.StatusCode >= 400:
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		return errs.Mark(
			errs.Newf("gateway %s %s: status %d: %s %s", method, path, resp.StatusCode, e.Error.Code, e.Error.Description),
			payment.ErrGatewayRejected,
		)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errs.Mark(errs.Wrap(err, "decode gateway response"), payment.ErrGatewayRejected)
	}
	return nil
}
