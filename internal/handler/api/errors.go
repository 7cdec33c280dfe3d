package api

import (
	"net/http"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/handler/httperr"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	msgSlotTaken      = "This slot has been booked by another user. Please select a different slot."
	msgSlotTakenPaid  = "This slot was taken while your payment was processing. Please contact support for a refund."
	msgInternal       = "Internal server error"
	msgInvalidRequest = "Invalid request"
)

type errorRule struct {
	target  error
	status  int
	message string
}

// Order matters: the first rule whose target matches wins. Wrapped gateway
// outages are checked before the markers that also sit on them.
var errorRules = []errorRule{
	{commands.ErrSlotTaken, http.StatusConflict, msgSlotTakenPaid},
	{payment.ErrGatewayUnavailable, http.StatusBadGateway, "Payment gateway is unavailable. Please try again."},
	{commands.ErrRateLimited, http.StatusTooManyRequests, "Too many checkout attempts. Please wait and try again."},

	{commands.ErrSlotUnavailable, http.StatusConflict, msgSlotTaken},
	{slot.ErrNotAvailable, http.StatusConflict, msgSlotTaken},
	{slot.ErrSlotBooked, http.StatusConflict, "Booked slots can only change through their booking"},
	{slot.ErrBookingMismatch, http.StatusConflict, "Slot is not held by this booking"},
	{booking.ErrTerminalState, http.StatusConflict, "Booking is completed or cancelled and can no longer change"},
	{booking.ErrInvalidTransition, http.StatusConflict, "Booking cannot move to the requested status"},
	{booking.ErrAlreadyPaid, http.StatusConflict, "Booking is already paid"},

	{commands.ErrPaymentOwnerMismatch, http.StatusForbidden, "Payment does not belong to this user"},
	{booking.ErrNotAssignedStaff, http.StatusForbidden, "This job is not assigned to you"},
	{queries.ErrJobForbidden, http.StatusForbidden, "This job is not assigned to you"},

	{commands.ErrSlotNotFound, http.StatusNotFound, "Slot not found for the selected date and time"},
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
	{queries.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
	{commands.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
	{queries.ErrVehicleNotFound, http.StatusNotFound, "Vehicle not found"},
	{commands.ErrAddressNotFound, http.StatusNotFound, "Address not found"},
	{commands.ErrStaffNotFound, http.StatusNotFound, "Staff member not found"},
	{commands.ErrSessionNotFound, http.StatusNotFound, "Checkout session not found"},

	{commands.ErrAmountExceedsPayable, http.StatusBadRequest, "Requested amount exceeds payable amount"},
	{commands.ErrGatewayNotConfigured, http.StatusBadRequest, "Payment gateway is not configured"},
	{commands.ErrOrderCreationFailed, http.StatusBadRequest, "Failed to create payment order. Please try again."},
	{commands.ErrPaymentVerification, http.StatusBadRequest, "Payment verification failed"},
	{payment.ErrMissingIntent, http.StatusBadRequest, "Booking data not found in payment order"},
	{payment.ErrInvalidIntent, http.StatusBadRequest, "serviceId, vehicleId and scheduledAt are required"},
	{booking.ErrMissingIntentFields, http.StatusBadRequest, "Service, vehicle and schedule are required"},
	{booking.ErrNotStaff, http.StatusBadRequest, "User is not a staff member"},
	{booking.ErrStaffInactive, http.StatusBadRequest, "Cannot assign inactive staff member"},
	{booking.ErrInvalidStatus, http.StatusBadRequest, "Invalid booking status"},
	{booking.ErrInvalidRating, http.StatusBadRequest, "Rating must be between 1 and 5"},
	{slot.ErrInvalidDate, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"},
	{slot.ErrInvalidTime, http.StatusBadRequest, "Invalid time, expected HH:MM"},
	{slot.ErrInvalidRange, http.StatusBadRequest, "End time must be after start time"},
	{slot.ErrInvalidStatus, http.StatusBadRequest, "Invalid slot status"},
	{pricing.ErrInvalidPaymentType, http.StatusBadRequest, "Invalid payment type"},
	{pricing.ErrInvalidVehicle, http.StatusBadRequest, "Invalid vehicle category or body type"},
	{pricing.ErrNoPrice, http.StatusBadRequest, "Service has no valid price, please contact support"},
	{queries.ErrInvalidFilter, http.StatusBadRequest, "Invalid filter"},
	{commands.ErrInvalidInput, http.StatusBadRequest, msgInvalidRequest},
}

func statusFor(err error) (int, string) {
	for _, r := range errorRules {
		if errs.Is(err, r.target) {
			return r.status, r.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// abortWithUseCaseError renders a use-case error through the rule table.
func abortWithUseCaseError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	httperr.AbortWithError(c, status, err, msg, nil)
}
