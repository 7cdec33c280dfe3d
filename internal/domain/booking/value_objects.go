package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/user"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	MinRating = 1
	MaxRating = 5
)

type Note struct {
	Text    string    `json:"note"`
	AddedBy user.Role `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// Address is the snapshot copied into a booking when it is created.
type Address struct {
	Label    string `json:"label,omitempty"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// FullAddress renders "line1[, line2], city, state - pincode".
func (a Address) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, ", ")
	if pin := strings.TrimSpace(a.Pincode); pin != "" {
		if s != "" {
			s += " - "
		}
		s += pin
	}
	return s
}

func (a Address) IsZero() bool {
	return a == Address{}
}

type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type Feedback struct {
	rating      int
	comment     string
	submittedAt time.Time
}

func NewFeedback(rating int, comment string, at time.Time) (Feedback, error) {
	if rating < MinRating || rating > MaxRating {
		return Feedback{}, ErrInvalidRating
	}
	return Feedback{rating: rating, comment: strings.TrimSpace(comment), submittedAt: at}, nil
}

func ReconstructFeedback(rating int, comment string, at time.Time) Feedback {
	return Feedback{rating: rating, comment: comment, submittedAt: at}
}

func (f Feedback) Rating() int            { return f.rating }
func (f Feedback) Comment() string        { return f.comment }
func (f Feedback) SubmittedAt() time.Time { return f.submittedAt }

// NewNumber builds BK<yyyymmdd><last 5 digits of unix millis>.
func NewNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 5 {
		ms = ms[len(ms)-5:]
	}
	return fmt.Sprintf("BK%s%s", now.Format("20060102"), ms)
}
