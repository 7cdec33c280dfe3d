package slot

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBooked      Status = "booked"
	StatusUnavailable Status = "unavailable"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusUnavailable:
		return true
	default:
		return false
	}
}

// IsAdminSettable reports whether an admin may move a slot to s directly.
// Booked is reachable only through reservation.
func (s Status) IsAdminSettable() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
