//go:build unit

package api_test

import (
	"net/http"
	"strings"

	"vehicle-care-booking/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for the JWT middleware. The bearer token names the role,
// e.g. "Bearer staff"; any other token is a customer.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		role := user.RoleCustomer
		switch strings.TrimPrefix(h, "Bearer ") {
		case "staff":
			role = user.RoleStaff
		case "admin":
			role = user.RoleAdmin
		}
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}
