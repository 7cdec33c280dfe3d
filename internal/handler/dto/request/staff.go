package request

import "vehicle-care-booking/internal/usecase/commands"

type CompleteJobRequest struct {
	PaymentReceived bool   `json:"paymentReceived"`
	Note            string `json:"note" binding:"max=1000"`
}

func (r CompleteJobRequest) ToCommand() commands.CompleteJobRequest {
	return commands.CompleteJobRequest{PaymentReceived: r.PaymentReceived, Note: r.Note}
}

type CouldntReachRequest struct {
	Note string `json:"note" binding:"max=1000"`
}
