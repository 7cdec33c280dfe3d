package commands

import (
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/errs"
)

var (
	ErrInvalidInput            = errs.New("invalid request")
	ErrSlotNotFound            = errs.New("slot not found for the selected date and time")
	ErrSlotUnavailable         = errs.New("slot has been booked by another user")
	ErrSlotTaken               = errs.New("slot was taken before payment completed")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrServiceNotFound         = errs.New("service not found")
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrAddressNotFound         = errs.New("address not found")
	ErrStaffNotFound           = errs.New("staff member not found")
	ErrSessionNotFound         = errs.New("checkout session not found")
	ErrAmountExceedsPayable    = errs.New("requested amount exceeds payable amount")
	ErrPaymentOwnerMismatch    = errs.New("payment belongs to a different user")
	ErrGatewayNotConfigured    = errs.New("payment gateway is not configured")
	ErrOrderCreationFailed     = errs.New("failed to create payment order")
	ErrPaymentVerification     = errs.New("payment verification failed")
	ErrRateLimited             = errs.New("too many checkout attempts")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// notFoundAs maps a repository miss onto a use-case sentinel and marks anything else as a database failure.
func notFoundAs(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
