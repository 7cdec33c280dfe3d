package middleware

import (
	"log/slog"
	"slices"

	"vehicle-care-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browsers hide response headers unless exposed; clients read these for
// log correlation and checkout backoff.
var alwaysExposed = []string{requestIDHeader, "Retry-After"}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := slices.Clone(cfg.ExposeHeaders)
	for _, h := range alwaysExposed {
		if !slices.Contains(expose, h) {
			expose = append(expose, h)
		}
	}

	slog.Info("cors configured", "allow_origins", cfg.AllowOrigins, "expose_headers", expose)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     append(slices.Clone(cfg.AllowHeaders), requestIDHeader),
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
