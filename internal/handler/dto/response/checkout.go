package response

import "vehicle-care-booking/internal/usecase/commands"

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	ExpiresAt int64  `json:"expiresAt"`
}

func FromSessionResult(r *commands.SessionResult) *SessionResponse {
	return &SessionResponse{
		SessionID: r.SessionID,
		OrderID:   r.OrderID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		ExpiresAt: r.ExpiresAt.Unix(),
	}
}

type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId"`
	ExpiresAt int64  `json:"expiresAt"`
	Expired   bool   `json:"expired"`
}

func FromSessionStatus(s *commands.SessionStatus) *SessionStatusResponse {
	return &SessionStatusResponse{
		SessionID: s.SessionID,
		OrderID:   s.OrderID,
		ExpiresAt: s.ExpiresAt.Unix(),
		Expired:   s.Expired,
	}
}

const VerifiedMessage = "Payment received. Once slot assigned to a staff we'll let you know."

type VerifyResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
	Replayed  bool   `json:"replayed,omitempty"`
}

func FromVerifyResult(r *commands.VerifyResult) *VerifyResponse {
	return &VerifyResponse{
		Success:   r.Success,
		BookingID: r.BookingID.String(),
		Message:   VerifiedMessage,
		Replayed:  r.Replayed,
	}
}

type FailureMeta struct {
	ErrorCode string `json:"errorCode,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}

type FailureResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Meta    FailureMeta `json:"meta"`
}

func FromFailureResult(r *commands.FailureResult) *FailureResponse {
	return &FailureResponse{
		Success: r.Success,
		Message: r.Message,
		Meta:    FailureMeta{ErrorCode: r.ErrorCode, OrderID: r.OrderID},
	}
}
