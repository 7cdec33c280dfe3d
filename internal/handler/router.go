package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/handler/api"
	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *api.HealthHandler
	Slot     *api.SlotHandler
	Booking  *api.BookingHandler
	StaffJob *api.StaffJobHandler
	Checkout *api.CheckoutHandler
}

// Observability is the ambient middleware and metrics registry.
type Observability struct {
	Logger      *middleware.Logger
	RateLimiter *middleware.RateLimiter
	Metrics     gin.HandlerFunc
	Registry    *prometheus.Registry
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, obs Observability) {
	middleware.RegisterValidators()
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, authMiddleware, obs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(obs.Logger.LoggingMiddleware())
	if obs.Metrics != nil {
		engine.Use(obs.Metrics)
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, obs Observability) {
	engine.GET("/health", h.Health.Check)
	if obs.Registry != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limit := obs.RateLimiter.Middleware()

	apiGroup := engine.Group("/api")
	{
		slots := apiGroup.Group("/slots")
		slots.Use(limit)
		addRoutes(slots, []route{
			{Method: http.MethodGet, Path: "/days", Handler: h.Slot.AvailableDays},
			{Method: http.MethodGet, Path: "", Handler: h.Slot.AvailableSlots},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth(), limit)
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "/quote", Handler: h.Booking.Quote},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetMine},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			{Method: http.MethodPost, Path: "/:id/feedback", Handler: h.Booking.SubmitFeedback},
		})

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.RequireAuth(), limit)
		addRoutes(checkout, []route{
			{Method: http.MethodPost, Path: "/sessions", Handler: h.Checkout.CreateSession},
			{Method: http.MethodGet, Path: "/sessions/:id", Handler: h.Checkout.GetSession},
			{Method: http.MethodPost, Path: "/verify", Handler: h.Checkout.Verify},
			{Method: http.MethodPost, Path: "/failure", Handler: h.Checkout.Failure},
		})

		staff := apiGroup.Group("/staff")
		staff.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleStaff), limit)
		addRoutes(staff, []route{
			{Method: http.MethodGet, Path: "/jobs", Handler: h.StaffJob.List},
			{Method: http.MethodGet, Path: "/jobs/history", Handler: h.StaffJob.History},
			{Method: http.MethodGet, Path: "/jobs/:id", Handler: h.StaffJob.Get},
			{Method: http.MethodPost, Path: "/jobs/:id/complete", Handler: h.StaffJob.Complete},
			{Method: http.MethodPost, Path: "/jobs/:id/couldnt-reach", Handler: h.StaffJob.CouldntReach},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/slots", Handler: h.Slot.ListForDate},
			{Method: http.MethodPost, Path: "/slots", Handler: h.Slot.Declare},
			{Method: http.MethodPatch, Path: "/slots/status", Handler: h.Slot.BulkSetStatus},
			{Method: http.MethodPatch, Path: "/slots/:id", Handler: h.Slot.SetStatus},
			{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/bookings/:id/assign", Handler: h.Booking.AssignStaff},
			{Method: http.MethodDelete, Path: "/bookings/:id/assign", Handler: h.Booking.UnassignStaff},
			{Method: http.MethodPatch, Path: "/bookings/:id/status", Handler: h.Booking.SetStatus},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
