//go:build unit

package metrics_test

import (
	"net/http"
	"strings"
	"testing"

	"vehicle-care-booking/internal/infra/metrics"
	"vehicle-care-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.CheckoutSession("success")
	m.CheckoutSession("success")
	m.CheckoutSession("rate_limited")
	m.PaymentVerification("replayed")
	m.SlotReservation("conflict")
	m.OutboxDispatched("error")

	expected := `
# HELP checkout_sessions_total Checkout session attempts by result.
# TYPE checkout_sessions_total counter
checkout_sessions_total{result="rate_limited"} 1
checkout_sessions_total{result="success"} 2
# HELP slot_reservations_total Conditional slot reservations by result.
# TYPE slot_reservations_total counter
slot_reservations_total{result="conflict"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"checkout_sessions_total", "slot_reservations_total")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "payment_verifications_total", "outbox_jobs_dispatched_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/bookings/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	httptest.PerformRequest(t, r, http.MethodGet, "/api/bookings/1", nil, "")
	httptest.PerformRequest(t, r, http.MethodGet, "/api/bookings/2", nil, "")
	httptest.PerformRequest(t, r, http.MethodGet, "/nowhere", nil, "")

	expected := `
# HELP http_requests_total HTTP requests by route, method and status.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/api/bookings/:id",status="200"} 2
http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"))
}
