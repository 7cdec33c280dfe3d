//go:build unit

package api_test

import (
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

type StaffJobHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockStaffJobCommands
	mockQueries  *queriesmock.MockBookingQueries
	staffID      uuid.UUID
}

func (s *StaffJobHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockStaffJobCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.staffID = uuid.New()
	h := api.NewStaffJobHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(s.staffID)
	s.router.GET("/staff/jobs", auth, h.List)
	s.router.GET("/staff/jobs/history", auth, h.History)
	s.router.GET("/staff/jobs/:id", auth, h.Get)
	s.router.POST("/staff/jobs/:id/complete", auth, h.Complete)
	s.router.POST("/staff/jobs/:id/couldnt-reach", auth, h.CouldntReach)
}

func (s *StaffJobHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestStaffJobHandlerSuite(t *testing.T) {
	suite.Run(t, new(StaffJobHandlerTestSuite))
}

func (s *StaffJobHandlerTestSuite) TestList() {
	s.Run("success: scoped to the caller", func() {
		s.mockQueries.EXPECT().ListJobs(gomock.Any(), s.staffID, queries.BookingListParams{Status: "confirmed"}).
			Return(&queries.BookingPage{Data: []*queries.BookingView{}, Page: 1, Limit: 20}, nil).Times(1)

		// a staffId filter cannot widen the scope
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/jobs?status=confirmed&staffId="+uuid.NewString(), nil, "staff")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: history", func() {
		s.mockQueries.EXPECT().WorkHistory(gomock.Any(), s.staffID, gomock.Any()).
			Return(&queries.BookingPage{Data: []*queries.BookingView{}, Page: 1, Limit: 20}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/jobs/history", nil, "staff")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/jobs", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *StaffJobHandlerTestSuite) TestGet() {
	s.Run("error: 403 for someone else's job", func() {
		s.mockQueries.EXPECT().GetJob(gomock.Any(), s.staffID, gomock.Any()).Return(nil, queries.ErrJobForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/jobs/"+uuid.NewString(), nil, "staff")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not assigned to you")
	})
}

func (s *StaffJobHandlerTestSuite) TestComplete() {
	id := uuid.New()
	url := "/staff/jobs/" + id.String() + "/complete"

	s.Run("success: returns the completed job", func() {
		view := builder.NewBookingBuilder().WithStatus(booking.StatusCompleted).WithStaff(s.staffID).BuildBookingView()
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, s.staffID, commands.CompleteJobRequest{PaymentReceived: true, Note: "cash"}).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetJob(gomock.Any(), s.staffID, id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"paymentReceived": true, "note": "cash"}, "staff")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("completed", body["status"])
	})

	s.Run("success: body is optional", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, s.staffID, commands.CompleteJobRequest{}).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetJob(gomock.Any(), s.staffID, id).Return(builder.NewBookingBuilder().BuildBookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "staff")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 when not assigned", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, s.staffID, gomock.Any()).Return(booking.ErrNotAssignedStaff).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "staff")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not assigned to you")
	})

	s.Run("error: 409 when already closed", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), id, s.staffID, gomock.Any()).Return(booking.ErrTerminalState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "staff")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *StaffJobHandlerTestSuite) TestCouldntReach() {
	id := uuid.New()
	url := "/staff/jobs/" + id.String() + "/couldnt-reach"

	s.Run("success", func() {
		s.mockCommands.EXPECT().MarkCouldntReach(gomock.Any(), id, s.staffID, "gate locked").Return(nil).Times(1)
		s.mockQueries.EXPECT().GetJob(gomock.Any(), s.staffID, id).
			Return(builder.NewBookingBuilder().WithStatus(booking.StatusCouldntReach).BuildBookingView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"note": "gate locked"}, "staff")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("couldnt_reach", body["status"])
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/staff/jobs/x/couldnt-reach", map[string]any{}, "staff")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
