//go:build e2e

package slot_test

import (
	"net/http"
	"testing"

	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/handler/dto/response"
	"vehicle-care-booking/tests/common/dbtest"
	"vehicle-care-booking/tests/common/httptest"
	"vehicle-care-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	adminSlotsURL = "/api/admin/slots"
	slotsURL      = "/api/slots"
	daysURL       = "/api/slots/days"
)

type SlotSuite struct {
	e2e.SharedSuite
}

func TestSlotSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SlotSuite))
}

func (s *SlotSuite) adminToken() string {
	t := s.T()
	id := dbtest.CreateTestUser(t, s.DB, "Admin", user.RoleAdmin)
	return s.JWT.GenerateToken(t, id, user.RoleAdmin)
}

func (s *SlotSuite) adminSlots(token, date string) []response.SlotResponse {
	t := s.T()
	rec := httptest.PerformRequest(t, s.Router, http.MethodGet, adminSlotsURL+"?date="+date, nil, token)
	var out []response.SlotResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &out)
	return out
}

// =============================================================================
// TestDeclare - hourly declaration is idempotent and starts closed
// =============================================================================

func (s *SlotSuite) TestDeclare() {
	s.Run("Normal case: declares hourly slots that start unavailable", func() {
		t := s.T()
		token := s.adminToken()
		date := s.Tomorrow()

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			map[string]string{"date": date, "startTime": "09:00", "endTime": "12:00"}, token)
		var res response.DeclareSlotsResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &res)
		require.Equal(t, []string{"09:00", "10:00", "11:00"}, res.Times)
		require.Equal(t, 3, res.Created)

		slots := s.adminSlots(token, date)
		require.Len(t, slots, 3)
		for _, sl := range slots {
			require.Equal(t, "unavailable", sl.Status)
		}

		// customers see nothing until an admin opens slots
		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, slotsURL+"?date="+date, nil, "")
		var open []response.AvailableSlotResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &open)
		require.Empty(t, open)
	})

	s.Run("Normal case: redeclaring an overlapping range keeps existing slots", func() {
		t := s.T()
		token := s.adminToken()
		date := s.Tomorrow()
		dbtest.CreateTestSlot(t, s.DB, date, "10:00", "available")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			map[string]string{"date": date, "startTime": "09:00", "endTime": "12:00"}, token)
		var res response.DeclareSlotsResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &res)
		require.Equal(t, 2, res.Created)
		require.Equal(t, 1, res.Existing)

		for _, sl := range s.adminSlots(token, date) {
			if sl.Time == "10:00" {
				require.Equal(t, "available", sl.Status, "existing slot keeps its status")
			}
		}
	})

	s.Run("Error case: inverted range", func() {
		t := s.T()
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			map[string]string{"date": s.Tomorrow(), "startTime": "12:00", "endTime": "09:00"}, s.adminToken())
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "End time")
	})
}

// =============================================================================
// TestStatus - admin edits never touch booked slots
// =============================================================================

func (s *SlotSuite) TestStatus() {
	s.Run("Normal case: opening a slot makes it bookable", func() {
		t := s.T()
		token := s.adminToken()
		date := s.Tomorrow()
		id := dbtest.CreateTestSlot(t, s.DB, date, "09:00", "unavailable")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPatch, adminSlotsURL+"/"+id.String(),
			map[string]string{"status": "available"}, token)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, slotsURL+"?date="+date, nil, "")
		var open []response.AvailableSlotResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &open)
		require.Len(t, open, 1)
		require.Equal(t, "09:00", open[0].StartTime)
		require.Equal(t, "10:00", open[0].EndTime)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, daysURL, nil, "")
		var days response.AvailableDaysResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &days)
		require.Contains(t, days.Days, date)
	})

	s.Run("Error case: booked slots cannot be edited, bulk edits skip them", func() {
		t := s.T()
		w := s.SeedWorld(t)
		date := s.Tomorrow()
		booked := dbtest.CreateTestSlot(t, s.DB, date, "09:00", "available")
		dbtest.CreateTestSlot(t, s.DB, date, "10:00", "available")
		s.BookSlot(t, w, date, "09:00")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPatch, adminSlotsURL+"/"+booked.String(),
			map[string]string{"status": "unavailable"}, w.AdminToken)
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "")

		rec = httptest.PerformRequest(t, s.Router, http.MethodPatch, adminSlotsURL+"/status",
			map[string]string{"date": date, "status": "unavailable"}, w.AdminToken)
		var bulk response.BulkSlotStatusResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &bulk)
		require.EqualValues(t, 1, bulk.Modified)

		status, holder := dbtest.SlotStatus(t, s.DB, booked)
		require.Equal(t, "booked", status)
		require.NotNil(t, holder)
	})

	s.Run("Error case: booked is not an admin target", func() {
		t := s.T()
		id := dbtest.CreateTestSlot(t, s.DB, s.Tomorrow(), "09:00", "available")
		rec := httptest.PerformRequest(t, s.Router, http.MethodPatch, adminSlotsURL+"/"+id.String(),
			map[string]string{"status": "booked"}, s.adminToken())
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "")
	})
}
