package api

import (
	"net/http"

	reqdto "vehicle-care-booking/internal/handler/dto/request"
	resdto "vehicle-care-booking/internal/handler/dto/response"
	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary List bookable days
// @Description Dates from today in the business time zone that still hold an available slot
// @Tags slots
// @Produce json
// @Param serviceId query string false "Service ID"
// @Param daysAhead query int false "Days to look ahead (1-60)"
// @Success 200 {object} resdto.AvailableDaysResponse
// @Failure 400 {object} httperr.Response
// @Router /api/slots/days [get]
func (h *SlotHandler) AvailableDays(c *gin.Context) {
	var q reqdto.AvailableDaysQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return
	}
	days, err := h.q.ListAvailableDays(c.Request.Context(), q.ServiceUUID(), q.DaysAhead)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailableDaysResponse{Days: days})
}

// @Summary List available slots
// @Description Available slots on a date with a display end time
// @Tags slots
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.AvailableSlotResponse
// @Failure 400 {object} httperr.Response
// @Router /api/slots [get]
func (h *SlotHandler) AvailableSlots(c *gin.Context) {
	var q reqdto.SlotsByDateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return
	}
	views, err := h.q.ListAvailableSlots(c.Request.Context(), q.Date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailableSlotViews(views))
}

// @Summary List slots for a date (admin)
// @Tags admin-slots
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/slots [get]
func (h *SlotHandler) ListForDate(c *gin.Context) {
	var q reqdto.SlotsByDateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, validationDetail(err))
		return
	}
	views, err := h.q.ListSlotsForDate(c.Request.Context(), q.Date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Declare slots (admin)
// @Description Creates hourly slots over [startTime, endTime); existing slots are left untouched
// @Tags admin-slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DeclareSlotsRequest true "Declare slots request"
// @Success 201 {object} resdto.DeclareSlotsResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/slots [post]
func (h *SlotHandler) Declare(c *gin.Context) {
	var req reqdto.DeclareSlotsRequest
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := h.cmds.DeclareSlots(c.Request.Context(), req.ToCommand())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromDeclareSlotsResult(res))
}

// @Summary Set slot status (admin)
// @Tags admin-slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.SetSlotStatusRequest true "Status"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/slots/{id} [patch]
func (h *SlotHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.SetSlotStatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	if err := h.cmds.SetSlotStatus(c.Request.Context(), id, req.Status); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: "Slot updated"})
}

// @Summary Set status of every unbooked slot on a date (admin)
// @Tags admin-slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkSlotStatusRequest true "Date and status"
// @Success 200 {object} resdto.BulkSlotStatusResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/slots/status [patch]
func (h *SlotHandler) BulkSetStatus(c *gin.Context) {
	var req reqdto.BulkSlotStatusRequest
	if !bindJSON(c, &req, false) {
		return
	}
	n, err := h.cmds.BulkSetStatusForDate(c.Request.Context(), req.Date, req.Status)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BulkSlotStatusResponse{Date: req.Date, Status: req.Status, Modified: n})
}
