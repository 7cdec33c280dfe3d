package api

import (
	"net/http"

	reqdto "vehicle-care-booking/internal/handler/dto/request"
	resdto "vehicle-care-booking/internal/handler/dto/response"
	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
	recon    commands.ReconciliationCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands, recon commands.ReconciliationCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, recon: recon}
}

// @Summary Open a checkout session
// @Description Prices the booking intent and opens a gateway order carrying it. Nothing is reserved.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSessionRequest true "Checkout request"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout/sessions [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateSessionRequest
	if !bindJSON(c, &req, false) {
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, nil)
		return
	}
	res, err := h.checkout.CreateSession(c.Request.Context(), userID, cmd)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSessionResult(res))
}

// @Summary Get checkout session
// @Description Advisory status; expiry is not enforced at verification
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionStatusResponse
// @Failure 404 {object} httperr.Response
// @Router /api/checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	s, err := h.checkout.GetSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionStatus(s))
}

// @Summary Verify payment
// @Description Checks the signature and gateway state, then creates the paid booking and reserves its slot
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Gateway callback fields"
// @Success 200 {object} resdto.VerifyResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout/verify [post]
func (h *CheckoutHandler) Verify(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.VerifyPaymentRequest
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := h.recon.Verify(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifyResult(res))
}

// @Summary Report payment failure
// @Description Changes nothing; echoes a user-facing message
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PaymentFailureRequest true "Failure details"
// @Success 200 {object} resdto.FailureResponse
// @Failure 400 {object} httperr.Response
// @Router /api/checkout/failure [post]
func (h *CheckoutHandler) Failure(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.PaymentFailureRequest
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := h.checkout.HandleFailure(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFailureResult(res))
}
