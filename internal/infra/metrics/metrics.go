package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics owns the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	checkoutSessions     *prometheus.CounterVec
	paymentVerifications *prometheus.CounterVec
	slotReservations     *prometheus.CounterVec
	outboxDispatched     *prometheus.CounterVec
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		checkoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session attempts by result.",
		}, []string{"result"}),
		paymentVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Payment verification attempts by result.",
		}, []string{"result"}),
		slotReservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_reservations_total",
			Help: "Conditional slot reservations by result.",
		}, []string{"result"}),
		outboxDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_jobs_dispatched_total",
			Help: "Outbox jobs handed to the broker by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.checkoutSessions,
		m.paymentVerifications,
		m.slotReservations,
		m.outboxDispatched,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) CheckoutSession(result string) {
	m.checkoutSessions.WithLabelValues(result).Inc()
}

func (m *Metrics) PaymentVerification(result string) {
	m.paymentVerifications.WithLabelValues(result).Inc()
}

func (m *Metrics) SlotReservation(result string) {
	m.slotReservations.WithLabelValues(result).Inc()
}

func (m *Metrics) OutboxDispatched(result string) {
	m.outboxDispatched.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
