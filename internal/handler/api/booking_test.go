//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/handler/api"
	"vehicle-care-booking/internal/handler/middleware"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"
	"vehicle-care-booking/tests/common/builder"
	"vehicle-care-booking/tests/common/httptest"
	commandsmock "vehicle-care-booking/tests/mock/commands"
	queriesmock "vehicle-care-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	mockPricing  *queriesmock.MockPricingQueries
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockPricing = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.userID = uuid.New()
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries, s.mockPricing)

	auth := fakeAuth(s.userID)
	s.router.POST("/bookings/quote", auth, h.Quote)
	s.router.GET("/bookings", auth, h.ListMine)
	s.router.GET("/bookings/:id", auth, h.GetMine)
	s.router.POST("/bookings/:id/cancel", auth, h.Cancel)
	s.router.POST("/bookings/:id/feedback", auth, h.SubmitFeedback)

	s.router.GET("/admin/bookings", auth, h.List)
	s.router.GET("/admin/bookings/:id", auth, h.Get)
	s.router.POST("/admin/bookings/:id/assign", auth, h.AssignStaff)
	s.router.DELETE("/admin/bookings/:id/assign", auth, h.UnassignStaff)
	s.router.PATCH("/admin/bookings/:id/status", auth, h.SetStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *BookingHandlerTestSuite) TestQuote() {
	url := "/bookings/quote"
	serviceID := uuid.New()

	s.Run("success: returns the payable amount", func() {
		adv := int64(150)
		s.mockPricing.EXPECT().Quote(gomock.Any(), s.userID, queries.QuoteRequest{ServiceID: serviceID, PaymentType: "advance", CouponCode: "FIRST10"}).
			Return(&queries.QuoteView{ServicePrice: 500, TotalAmount: 500, AdvanceAmount: &adv, PayableAmount: 150, PaymentType: "advance"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"serviceId": serviceID, "paymentType": "advance", "couponCode": " FIRST10 "}, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.EqualValues(150, body["payableAmount"])
		s.EqualValues(150, body["advanceAmount"])
		s.EqualValues(500, body["totalAmount"])
	})

	s.Run("error: 400 without a service", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"paymentType": "full"}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 for an unknown vehicle", func() {
		s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrVehicleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"serviceId": serviceID, "vehicleId": uuid.New()}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Vehicle not found")
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	s.Run("success: passes filters through and drops admin-only ones", func() {
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.UserID = s.userID }).BuildBookingView()
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID, queries.BookingListParams{
			Status: "confirmed,completed", FromDate: "2025-11-01", Page: 2, Limit: 5,
		}).Return(&queries.BookingPage{Data: []*queries.BookingView{view}, Total: 6, Page: 2, Limit: 5, TotalPages: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?status=confirmed,completed&fromDate=2025-11-01&page=2&limit=5&search=wash&staffId="+uuid.NewString(), nil, "token")

		var body struct {
			Data       []map[string]any `json:"data"`
			Total      int              `json:"total"`
			TotalPages int              `json:"totalPages"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(6, body.Total)
		s.Equal(2, body.TotalPages)
		s.Require().Len(body.Data, 1)
		s.Equal(view.ID.String(), body.Data[0]["id"])
	})

	s.Run("error: 400 on malformed query", func() {
		for _, q := range []string{"page=-1", "limit=500", "fromDate=01-11-2025"} {
			s.Run(q, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?"+q, nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 400 on an unknown status", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvalidFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?status=lost", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter")
	})
}

// ================================================================================
// TestGetMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetMine() {
	s.Run("success", func() {
		view := builder.NewBookingBuilder().BuildBookingView()
		s.mockQueries.EXPECT().GetMine(gomock.Any(), s.userID, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.BookingNumber, body["bookingNumber"])
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 for someone else's booking", func() {
		s.mockQueries.EXPECT().GetMine(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.NewString(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	s.Run("success: returns the cancelled booking", func() {
		view := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildBookingView()
		gomock.InOrder(
			s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.userID).Return(nil),
			s.mockQueries.EXPECT().GetMine(gomock.Any(), s.userID, view.ID).Return(view, nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body["status"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"terminal booking", booking.ErrTerminalState, http.StatusConflict, "can no longer change"},
			{"unknown booking", commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
			{"database", commands.ErrDatabaseOperationFailed, http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+uuid.NewString()+"/cancel", nil, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestSubmitFeedback
// ================================================================================

func (s *BookingHandlerTestSuite) TestSubmitFeedback() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/feedback"

	s.Run("success", func() {
		s.mockCommands.EXPECT().SubmitFeedback(gomock.Any(), id, s.userID, commands.FeedbackRequest{Rating: 5, Comment: "spotless"}).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetMine(gomock.Any(), s.userID, id).Return(builder.NewBookingBuilder().BuildBookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"rating": 5, "comment": "spotless"}, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on rating out of range", func() {
		for _, rating := range []int{0, 6} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"rating": rating}, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: 409 before completion", func() {
		s.mockCommands.EXPECT().SubmitFeedback(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(booking.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"rating": 4}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// Admin desk
// ================================================================================

func (s *BookingHandlerTestSuite) TestAdminList() {
	s.Run("success: staff and search filters reach the query", func() {
		staff := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), queries.BookingListParams{StaffID: &staff, Search: "foam"}).
			Return(&queries.BookingPage{Data: []*queries.BookingView{}, Page: 1, Limit: 20}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings?staffId="+staff.String()+"&search=foam", nil, "admin")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body["data"])
	})

	s.Run("error: 400 on malformed staff id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings?staffId=bob", nil, "admin")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *BookingHandlerTestSuite) TestAssignStaff() {
	id := uuid.New()
	url := "/admin/bookings/" + id.String() + "/assign"
	staff := uuid.New()

	s.Run("success: returns the confirmed booking", func() {
		view := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithStaff(staff).BuildBookingView()
		s.mockCommands.EXPECT().AssignStaff(gomock.Any(), id, staff).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"staffId": staff}, "admin")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body["status"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"unknown staff", commands.ErrStaffNotFound, http.StatusNotFound, "Staff member not found"},
			{"not staff", booking.ErrNotStaff, http.StatusBadRequest, "not a staff member"},
			{"inactive staff", booking.ErrStaffInactive, http.StatusBadRequest, "inactive staff"},
			{"terminal booking", booking.ErrTerminalState, http.StatusConflict, "can no longer change"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AssignStaff(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"staffId": staff}, "admin")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("success: unassign returns the booking to pending", func() {
		s.mockCommands.EXPECT().UnassignStaff(gomock.Any(), id).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(builder.NewBookingBuilder().BuildBookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "admin")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pending", body["status"])
	})
}

func (s *BookingHandlerTestSuite) TestSetStatus() {
	id := uuid.New()
	url := "/admin/bookings/" + id.String() + "/status"

	s.Run("success", func() {
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), id, commands.SetStatusRequest{Status: "couldnt_reach", Note: "no answer"}).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(builder.NewBookingBuilder().BuildBookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "couldnt_reach", "note": "no answer"}, "admin")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on an unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "archived"}, "admin")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 500 when the reload fails", func() {
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), id, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, errors.New("read replica lag")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, "admin")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
