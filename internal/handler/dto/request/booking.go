package request

import (
	"strings"

	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingListQuery binds the list filters shared by customer, admin and staff lists.
// Status accepts a comma separated set.
type BookingListQuery struct {
	Status   string `form:"status"`
	StaffID  string `form:"staffId" binding:"omitempty,uuid"`
	Search   string `form:"search" binding:"max=100"`
	FromDate string `form:"fromDate" binding:"omitempty,yyyymmdd"`
	ToDate   string `form:"toDate" binding:"omitempty,yyyymmdd"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q BookingListQuery) ToParams() queries.BookingListParams {
	p := queries.BookingListParams{
		Status:   strings.TrimSpace(q.Status),
		Search:   strings.TrimSpace(q.Search),
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if id, err := uuid.Parse(q.StaffID); err == nil {
		p.StaffID = &id
	}
	return p
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

func (r FeedbackRequest) ToCommand() commands.FeedbackRequest {
	return commands.FeedbackRequest{Rating: r.Rating, Comment: r.Comment}
}

type AssignStaffRequest struct {
	StaffID uuid.UUID `json:"staffId" binding:"required"`
}

type SetBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed couldnt_reach"`
	Note   string `json:"note" binding:"max=1000"`
}

func (r SetBookingStatusRequest) ToCommand() commands.SetStatusRequest {
	return commands.SetStatusRequest{Status: r.Status, Note: r.Note}
}

type QuoteRequest struct {
	ServiceID   uuid.UUID  `json:"serviceId" binding:"required"`
	VehicleID   *uuid.UUID `json:"vehicleId"`
	PaymentType string     `json:"paymentType" binding:"omitempty,oneof=full advance"`
	CouponCode  string     `json:"couponCode" binding:"max=50"`
}

func (r QuoteRequest) ToQuery() queries.QuoteRequest {
	return queries.QuoteRequest{
		ServiceID:   r.ServiceID,
		VehicleID:   r.VehicleID,
		PaymentType: r.PaymentType,
		CouponCode:  strings.TrimSpace(r.CouponCode),
	}
}
