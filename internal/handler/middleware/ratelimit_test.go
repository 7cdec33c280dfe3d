//go:build unit

package middleware_test

import (
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"

	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(users map[string]uuid.UUID) *gin.Engine {
		// refill is slow enough that only the burst matters during a test
		limiter := middleware.NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 2})
		r := gin.New()
		r.GET("/ping", func(c *gin.Context) {
			if id, ok := users[c.GetHeader("X-User")]; ok {
				c.Set("user_id", id)
			}
			c.Next()
		}, limiter.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		r := newRouter(nil)

		for i := 0; i < 2; i++ {
			rec := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ping", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Too many requests")
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "1"})
	})

	t.Run("authenticated users get their own bucket", func(t *testing.T) {
		users := map[string]uuid.UUID{"a": uuid.New(), "b": uuid.New()}
		r := newRouter(users)

		do := func(who string) int {
			req := stdhttptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("X-User", who)
			rec := stdhttptest.NewRecorder()
			r.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusNoContent, do("a"))
		assert.Equal(t, http.StatusNoContent, do("a"))
		assert.Equal(t, http.StatusTooManyRequests, do("a"))
		assert.Equal(t, http.StatusNoContent, do("b"), "b shares an ip with a but not a bucket")
	})
}
