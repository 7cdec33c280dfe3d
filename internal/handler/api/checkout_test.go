//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/handler/api"
	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/tests/common/builder"
	"vehicle-care-booking/tests/common/httptest"
	"vehicle-care-booking/tests/common/testutil"
	commandsmock "vehicle-care-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockCheck *commandsmock.MockCheckoutCommands
	mockRecon *commandsmock.MockReconciliationCommands
	userID    uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheck = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockRecon = commandsmock.NewMockReconciliationCommands(s.mockCtrl)
	s.userID = uuid.New()
	h := api.NewCheckoutHandler(s.mockCheck, s.mockRecon)

	auth := fakeAuth(s.userID)
	s.router.POST("/checkout/sessions", auth, h.CreateSession)
	s.router.GET("/checkout/sessions/:id", auth, h.GetSession)
	s.router.POST("/checkout/verify", auth, h.Verify)
	s.router.POST("/checkout/failure", auth, h.Failure)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

type testCaseCheckout struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateSession
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestCreateSession() {
	url := "/checkout/sessions"
	b := builder.NewCheckoutBuilder()
	reqBody := b.BuildCreateSessionRequestDTO()
	result := b.BuildSessionResult(time.Date(2025, 11, 9, 4, 30, 0, 0, time.UTC))

	bookingData := func(key string, value any) func(m map[string]any) {
		return func(m map[string]any) {
			testutil.Field(key, value)(m["bookingData"].(map[string]any))
		}
	}

	validation := []testCaseCheckout{
		{name: "amount must be positive", mutate: testutil.Field("amount", 0), expectCode: http.StatusBadRequest},
		{name: "missing amount", mutate: testutil.Field("amount", nil), expectCode: http.StatusBadRequest},
		{name: "unknown payment type", mutate: testutil.Field("paymentType", "later"), expectCode: http.StatusBadRequest},
		{name: "advance payment type", mutate: testutil.Field("paymentType", "advance"), expectCode: http.StatusCreated},
		{name: "empty payment type", mutate: testutil.Field("paymentType", ""), expectCode: http.StatusCreated},
		{name: "missing serviceId", mutate: bookingData("serviceId", nil), expectCode: http.StatusBadRequest},
		{name: "missing vehicleId", mutate: bookingData("vehicleId", nil), expectCode: http.StatusBadRequest},
		{name: "malformed date", mutate: bookingData("scheduledDate", "10/11/2025"), expectCode: http.StatusBadRequest},
		{name: "malformed time", mutate: bookingData("scheduledTime", "10am"), expectCode: http.StatusBadRequest},
		{name: "rfc3339 schedule", mutate: bookingData("scheduledAt", "2025-11-10T10:00:00+05:30"), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 Created with the gateway order", func() {
		s.mockCheck.EXPECT().CreateSession(gomock.Any(), s.userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, req commands.CreateSessionRequest) (*commands.SessionResult, error) {
				s.Equal(b.ServiceID, req.Intent.ServiceID)
				s.Equal("2025-11-10", req.ScheduledDate)
				s.Equal("10:00", req.ScheduledTime)
				s.Equal(int64(500), req.Amount)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.OrderID, body["orderId"])
		s.Equal("INR", body["currency"])
		s.EqualValues(result.ExpiresAt.Unix(), body["expiresAt"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockCheck.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "token")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"slot booked", commands.ErrSlotUnavailable, http.StatusConflict, "booked by another user"},
			{"slot missing", commands.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
			{"service missing", commands.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
			{"amount too high", commands.ErrAmountExceedsPayable, http.StatusBadRequest, "exceeds payable"},
			{"rate limited", commands.ErrRateLimited, http.StatusTooManyRequests, "Too many checkout attempts"},
			{"gateway outage", errs.Mark(errs.Wrap(payment.ErrGatewayUnavailable, "create order"), commands.ErrOrderCreationFailed), http.StatusBadGateway, "unavailable"},
			{"gateway refusal", errs.Wrap(commands.ErrOrderCreationFailed, "gateway said no"), http.StatusBadRequest, "Failed to create payment order"},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheck.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetSession
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestGetSession() {
	s.Run("success: returns the advisory status", func() {
		exp := time.Date(2025, 11, 9, 4, 45, 0, 0, time.UTC)
		s.mockCheck.EXPECT().GetSession(gomock.Any(), s.userID, "cs_1").
			Return(&commands.SessionStatus{SessionID: "cs_1", OrderID: "order_1", ExpiresAt: exp, Expired: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/checkout/sessions/cs_1", nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(true, body["expired"])
		s.Equal("order_1", body["orderId"])
	})

	s.Run("error: 404 for unknown sessions", func() {
		s.mockCheck.EXPECT().GetSession(gomock.Any(), gomock.Any(), "cs_x").Return(nil, commands.ErrSessionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/checkout/sessions/cs_x", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Checkout session not found")
	})
}

// ================================================================================
// TestVerify
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestVerify() {
	url := "/checkout/verify"
	reqBody := builder.NewCheckoutBuilder().BuildVerifyRequestDTO()

	s.Run("success: returns the booking id", func() {
		bookingID := uuid.New()
		s.mockRecon.EXPECT().Verify(gomock.Any(), s.userID, commands.VerifyRequest{
			OrderID: reqBody.OrderID, PaymentID: reqBody.PaymentID, Signature: reqBody.Signature,
		}).Return(&commands.VerifyResult{Success: true, BookingID: bookingID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bookingID.String(), body["bookingId"])
		s.Equal(true, body["success"])
		s.NotContains(body, "replayed")
	})

	s.Run("success: replays are flagged", func() {
		s.mockRecon.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.VerifyResult{Success: true, BookingID: uuid.New(), Replayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(true, body["replayed"])
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"orderId", "paymentId", "signature"} {
			s.Run(field, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil)), "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"slot taken after payment", commands.ErrSlotTaken, http.StatusConflict, "contact support for a refund"},
			{"bad signature", commands.ErrPaymentVerification, http.StatusBadRequest, "Payment verification failed"},
			{"other customer's payment", commands.ErrPaymentOwnerMismatch, http.StatusForbidden, "does not belong"},
			{"order without intent", payment.ErrMissingIntent, http.StatusBadRequest, "Booking data not found"},
			{"gateway outage", errs.Mark(payment.ErrGatewayUnavailable, commands.ErrPaymentVerification), http.StatusBadGateway, "unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockRecon.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestFailure
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestFailure() {
	url := "/checkout/failure"

	s.Run("success: echoes the user-facing message", func() {
		s.mockCheck.EXPECT().HandleFailure(gomock.Any(), s.userID, commands.FailureRequest{SessionID: "cs_1", ErrorCode: "BAD_REQUEST_ERROR"}).
			Return(&commands.FailureResult{Success: false, Message: "Payment failed", ErrorCode: "BAD_REQUEST_ERROR", OrderID: "order_1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"sessionId": " cs_1 ", "errorCode": "BAD_REQUEST_ERROR"}, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Payment failed", body["message"])
		s.Equal("order_1", body["meta"].(map[string]any)["orderId"])
	})

	s.Run("error: 400 Bad Request without a session id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"errorCode": "X"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
