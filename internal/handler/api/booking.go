package api

import (
	"net/http"

	reqdto "vehicle-care-booking/internal/handler/dto/request"
	resdto "vehicle-care-booking/internal/handler/dto/response"
	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler serves both the customer's own bookings and the admin desk.
type BookingHandler struct {
	cmds    commands.BookingCommands
	q       queries.BookingQueries
	pricing queries.PricingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, pricing queries.PricingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, pricing: pricing}
}

// @Summary Preview price
// @Description Authoritative price for a service and vehicle; nothing is reserved
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.QuoteRequest
	if !bindJSON(c, &req, false) {
		return
	}
	view, err := h.pricing.Quote(c.Request.Context(), userID, req.ToQuery())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return
	}
	params := q.ToParams()
	params.StaffID = nil
	params.Search = ""
	page, err := h.q.ListMine(c.Request.Context(), userID, params)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Get my booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) GetMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.GetMine(c.Request.Context(), userID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel my booking
// @Description Allowed from pending or confirmed; the slot is released
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, userID); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondMine(c, userID, id)
}

// @Summary Submit feedback
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.FeedbackRequest true "Feedback"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/feedback [post]
func (h *BookingHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.FeedbackRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.cmds.SubmitFeedback(c.Request.Context(), id, userID, req.ToCommand()); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondMine(c, userID, id)
}

func (h *BookingHandler) respondMine(c *gin.Context, userID, id uuid.UUID) {
	view, err := h.q.GetMine(c.Request.Context(), userID, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings (admin)
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param staffId query string false "Assigned staff ID"
// @Param search query string false "Service name or booking ID"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var q reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return
	}
	page, err := h.q.List(c.Request.Context(), q.ToParams())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Get booking (admin)
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respond(c, id)
}

// @Summary Assign staff (admin)
// @Description A pending booking becomes confirmed
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AssignStaffRequest true "Staff"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/assign [post]
func (h *BookingHandler) AssignStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.AssignStaffRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.cmds.AssignStaff(c.Request.Context(), id, req.StaffID); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, id)
}

// @Summary Unassign staff (admin)
// @Description A confirmed booking returns to pending
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/assign [delete]
func (h *BookingHandler) UnassignStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.UnassignStaff(c.Request.Context(), id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, id)
}

// @Summary Set booking status (admin)
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.SetBookingStatusRequest true "Status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/bookings/{id}/status [patch]
func (h *BookingHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.SetBookingStatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.cmds.SetStatus(c.Request.Context(), id, req.ToCommand()); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, id)
}

func (h *BookingHandler) respond(c *gin.Context, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
