package api

import (
	"context"
	"net/http"

	reqdto "vehicle-care-booking/internal/handler/dto/request"
	resdto "vehicle-care-booking/internal/handler/dto/response"
	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffJobHandler struct {
	cmds commands.StaffJobCommands
	q    queries.BookingQueries
}

func NewStaffJobHandler(cmds commands.StaffJobCommands, q queries.BookingQueries) *StaffJobHandler {
	return &StaffJobHandler{cmds: cmds, q: q}
}

// @Summary List my assigned jobs
// @Description Sorted by scheduled time, earliest first
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param search query string false "Service name or booking ID"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/staff/jobs [get]
func (h *StaffJobHandler) List(c *gin.Context) {
	h.list(c, h.q.ListJobs)
}

// @Summary Work history
// @Description Completed jobs, most recent first
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param search query string false "Service name or booking ID"
// @Param fromDate query string false "From date (YYYY-MM-DD)"
// @Param toDate query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/staff/jobs/history [get]
func (h *StaffJobHandler) History(c *gin.Context) {
	h.list(c, h.q.WorkHistory)
}

type jobLister func(ctx context.Context, staffID uuid.UUID, p queries.BookingListParams) (*queries.BookingPage, error)

func (h *StaffJobHandler) list(c *gin.Context, fn jobLister) {
	staffID, ok := requireUserID(c)
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
	page, err := fn(c.Request.Context(), staffID, params)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Get assigned job
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/staff/jobs/{id} [get]
func (h *StaffJobHandler) Get(c *gin.Context) {
	staffID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respond(c, staffID, id)
}

// @Summary Complete job
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteJobRequest false "Completion details"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/staff/jobs/{id}/complete [post]
func (h *StaffJobHandler) Complete(c *gin.Context) {
	staffID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CompleteJobRequest
	if !bindJSON(c, &req, true) {
		return
	}
	if err := h.cmds.Complete(c.Request.Context(), id, staffID, req.ToCommand()); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, staffID, id)
}

// @Summary Mark customer unreachable
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CouldntReachRequest false "Note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/staff/jobs/{id}/couldnt-reach [post]
func (h *StaffJobHandler) CouldntReach(c *gin.Context) {
	staffID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CouldntReachRequest
	if !bindJSON(c, &req, true) {
		return
	}
	if err := h.cmds.MarkCouldntReach(c.Request.Context(), id, staffID, req.Note); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respond(c, staffID, id)
}

func (h *StaffJobHandler) respond(c *gin.Context, staffID, id uuid.UUID) {
	view, err := h.q.GetJob(c.Request.Context(), staffID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
