//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/pkg/jwt"
	"vehicle-care-booking/tests/common/httptest"
	usecasemock "vehicle-care-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	auth := middleware.NewAuthMiddleware(s.mockValidator)

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": string(role)})
	}
	s.router.GET("/me", auth.RequireAuth(), whoami)
	s.router.GET("/staff", auth.RequireAuth(), auth.RequireRole(user.RoleStaff), whoami)
	s.router.GET("/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), whoami)
	s.router.GET("/misconfigured", auth.RequireRole(user.RoleAdmin), whoami)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: identity reaches the handler", func() {
		id := uuid.New()
		s.mockValidator.EXPECT().ValidateToken("good").Return(id, user.RoleCustomer, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id.String(), body["id"])
		s.Equal("customer", body["role"])
	})

	s.Run("error: 401 without a bearer token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 for an expired token", func() {
		s.mockValidator.EXPECT().ValidateToken("stale").Return(uuid.Nil, user.Role(""), jwt.ErrExpiredToken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "stale")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRole() {
	cases := []struct {
		name   string
		path   string
		role   user.Role
		expect int
	}{
		{"staff on staff routes", "/staff", user.RoleStaff, http.StatusOK},
		{"customer on staff routes", "/staff", user.RoleCustomer, http.StatusForbidden},
		{"admin on admin routes", "/admin", user.RoleAdmin, http.StatusOK},
		{"staff on admin routes", "/admin", user.RoleStaff, http.StatusForbidden},
		// roles are not ranked
		{"admin on staff routes", "/staff", user.RoleAdmin, http.StatusForbidden},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockValidator.EXPECT().ValidateToken("tok").Return(uuid.New(), tc.role, nil).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "tok")
			if tc.expect == http.StatusOK {
				httptest.AssertSuccessResponse(s.T(), rec, tc.expect, nil)
			} else {
				httptest.AssertErrorResponse(s.T(), rec, tc.expect, "Insufficient permissions")
			}
		})
	}

	s.Run("error: 500 when mounted without RequireAuth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/misconfigured", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
