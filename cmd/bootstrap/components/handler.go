package components

import (
	"vehicle-care-booking/internal/handler"
	"vehicle-care-booking/internal/handler/api"
	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/infra/cache"
	"vehicle-care-booking/internal/infra/metrics"
	"vehicle-care-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewBookingHandler,
		api.NewStaffJobHandler,
		api.NewCheckoutHandler,
		NewHealthHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
		NewHandlers,
		NewObservability,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHealthHandler(pool *pgxpool.Pool, sessions *cache.SessionStore) *api.HealthHandler {
	return api.NewHealthHandler(map[string]api.Pinger{
		"postgres": pool,
		"redis":    sessions,
	})
}

type handlerParams struct {
	fx.In

	Health   *api.HealthHandler
	Slot     *api.SlotHandler
	Booking  *api.BookingHandler
	StaffJob *api.StaffJobHandler
	Checkout *api.CheckoutHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Health:   p.Health,
		Slot:     p.Slot,
		Booking:  p.Booking,
		StaffJob: p.StaffJob,
		Checkout: p.Checkout,
	}
}

func NewObservability(logger *middleware.Logger, limiter *middleware.RateLimiter, m *metrics.Metrics) handler.Observability {
	return handler.Observability{
		Logger:      logger,
		RateLimiter: limiter,
		Metrics:     m.Middleware(),
		Registry:    m.Registry(),
	}
}
