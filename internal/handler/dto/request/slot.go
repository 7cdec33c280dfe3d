package request

import (
	"strings"

	"vehicle-care-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type DeclareSlotsRequest struct {
	Date      string `json:"date" binding:"required,yyyymmdd"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

func (r DeclareSlotsRequest) ToCommand() commands.DeclareSlotsRequest {
	return commands.DeclareSlotsRequest{
		Date:      strings.TrimSpace(r.Date),
		StartTime: strings.TrimSpace(r.StartTime),
		EndTime:   strings.TrimSpace(r.EndTime),
	}
}

// booked is reachable only through checkout, so it is not accepted here.
type SetSlotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available unavailable"`
}

type BulkSlotStatusRequest struct {
	Date   string `json:"date" binding:"required,yyyymmdd"`
	Status string `json:"status" binding:"required,oneof=available unavailable"`
}

type AvailableDaysQuery struct {
	ServiceID string `form:"serviceId" binding:"omitempty,uuid"`
	DaysAhead int    `form:"daysAhead" binding:"omitempty,min=0"`
}

func (q AvailableDaysQuery) ServiceUUID() *uuid.UUID {
	if q.ServiceID == "" {
		return nil
	}
	id, err := uuid.Parse(q.ServiceID)
	if err != nil {
		return nil
	}
	return &id
}

type SlotsByDateQuery struct {
	Date string `form:"date" binding:"required,yyyymmdd"`
}
