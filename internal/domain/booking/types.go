package booking

type Status string

const (
	StatusPending      Status = "pending"
	StatusConfirmed    Status = "confirmed"
	StatusCancelled    Status = "cancelled"
	StatusCompleted    Status = "completed"
	StatusCouldntReach Status = "couldnt_reach"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusCouldntReach:
		return true
	default:
		return false
	}
}

// IsTerminal reports states with no outbound transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsOpen reports states from which customers can cancel and staff can close a job.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusConfirmed
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

// Event names a booking state change published through the outbox.
type Event string

const (
	EventCreated         Event = "created"
	EventStaffAssigned   Event = "staff_assigned"
	EventStaffUnassigned Event = "staff_unassigned"
	EventCancelled       Event = "cancelled"
	EventCompleted       Event = "completed"
	EventCouldntReach    Event = "couldnt_reach"
	EventStatusChanged   Event = "status_changed"
	EventFeedback        Event = "feedback_submitted"
)

func (e Event) Topic() string {
	return "booking." + string(e)
}
