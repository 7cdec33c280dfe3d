package response

import (
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"
)

type SlotResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Status    string  `json:"status"`
	BookingID *string `json:"bookingId,omitempty"`
	Booked    bool    `json:"booked"`
}

func FromSlotViews(vs []*queries.SlotView) []*SlotResponse {
	res := make([]*SlotResponse, len(vs))
	for i, v := range vs {
		res[i] = &SlotResponse{
			ID:     v.ID.String(),
			Date:   v.Date,
			Time:   v.Time,
			Status: v.Status,
			Booked: v.Booked,
		}
		if v.BookingID != nil {
			s := v.BookingID.String()
			res[i].BookingID = &s
		}
	}
	return res
}

type AvailableSlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func FromAvailableSlotViews(vs []*queries.AvailableSlotView) []*AvailableSlotResponse {
	res := make([]*AvailableSlotResponse, len(vs))
	for i, v := range vs {
		res[i] = &AvailableSlotResponse{
			ID:        v.ID.String(),
			Date:      v.Date,
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
		}
	}
	return res
}

type AvailableDaysResponse struct {
	Days []string `json:"days"`
}

type DeclareSlotsResponse struct {
	Date     string   `json:"date"`
	Times    []string `json:"times"`
	Created  int      `json:"created"`
	Existing int      `json:"existing"`
}

func FromDeclareSlotsResult(r *commands.DeclareSlotsResult) *DeclareSlotsResponse {
	return &DeclareSlotsResponse{Date: r.Date, Times: r.Times, Created: r.Created, Existing: r.Existing}
}

type BulkSlotStatusResponse struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Modified int64  `json:"modified"`
}
