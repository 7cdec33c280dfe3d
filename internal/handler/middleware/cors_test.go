//go:build unit

package middleware_test

import (
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"

	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware_ExposesTracingHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}

	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := stdhttptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := stdhttptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, "X-Request-Id")
	assert.Contains(t, exposed, "Retry-After")
}
