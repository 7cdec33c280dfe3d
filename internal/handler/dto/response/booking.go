package response

import (
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type AddressResponse struct {
	Label    string `json:"label,omitempty"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type NoteResponse struct {
	Note    string `json:"note"`
	AddedBy string `json:"addedBy"`
	AddedAt int64  `json:"addedAt"`
}

type FeedbackResponse struct {
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	SubmittedAt int64  `json:"submittedAt"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type VehicleResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category,omitempty"`
	BodyType    string `json:"bodyType,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	PlateNumber string `json:"plateNumber,omitempty"`
}

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	BookingNumber string               `json:"bookingNumber"`
	Customer      CustomerResponse     `json:"customer"`
	ServiceID     string               `json:"serviceId"`
	ServiceName   string               `json:"serviceName"`
	Vehicle       VehicleResponse      `json:"vehicle"`
	SlotID        string               `json:"slotId"`
	SlotDate      string               `json:"slotDate,omitempty"`
	SlotTime      string               `json:"slotTime,omitempty"`
	DisplayTime   string               `json:"displayTime,omitempty"`
	ScheduledAt   int64                `json:"scheduledAt"`
	Address       AddressResponse      `json:"address"`
	FullAddress   string               `json:"fullAddress"`
	AddOns        []string             `json:"addOns"`
	PaymentType   string               `json:"paymentType"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus"`
	Amount        int64                `json:"amount"`
	TotalAmount   int64                `json:"totalAmount"`
	AdvanceAmount *int64               `json:"advanceAmount,omitempty"`
	StaffID       *string              `json:"staffId,omitempty"`
	StaffName     string               `json:"staffName,omitempty"`
	Notes         []NoteResponse       `json:"notes"`
	Feedback      *FeedbackResponse    `json:"feedback,omitempty"`
	Coordinates   *CoordinatesResponse `json:"coordinates,omitempty"`
	CreatedAt     int64                `json:"createdAt"`
	UpdatedAt     int64                `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:            v.ID.String(),
		BookingNumber: v.BookingNumber,
		Customer: CustomerResponse{
			ID:    v.UserID.String(),
			Name:  v.CustomerName,
			Email: v.CustomerEmail,
			Phone: v.CustomerPhone,
		},
		ServiceID:   v.ServiceID.String(),
		ServiceName: v.ServiceName,
		Vehicle: VehicleResponse{
			ID:          v.VehicleID.String(),
			Category:    v.VehicleCategory,
			BodyType:    v.VehicleBodyType,
			Brand:       v.VehicleBrand,
			Model:       v.VehicleModel,
			PlateNumber: v.PlateNumber,
		},
		SlotID:        v.SlotID.String(),
		SlotDate:      v.SlotDate,
		SlotTime:      v.SlotTime,
		DisplayTime:   v.DisplayTime,
		ScheduledAt:   v.ScheduledAt.Unix(),
		FullAddress:   v.FullAddress,
		AddOns:        v.AddOns,
		PaymentType:   v.PaymentType,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		Amount:        v.Amount,
		TotalAmount:   v.TotalAmount,
		AdvanceAmount: v.AdvanceAmount,
		StaffName:     v.StaffName,
		Notes:         make([]NoteResponse, len(v.Notes)),
		CreatedAt:     v.CreatedAt.Unix(),
		UpdatedAt:     v.UpdatedAt.Unix(),
	}
	// field names line up one to one with the domain snapshot
	_ = copier.Copy(&res.Address, &v.Address)
	if res.AddOns == nil {
		res.AddOns = []string{}
	}
	if v.StaffID != nil {
		s := v.StaffID.String()
		res.StaffID = &s
	}
	for i, n := range v.Notes {
		res.Notes[i] = NoteResponse{Note: n.Text, AddedBy: n.AddedBy.String(), AddedAt: n.AddedAt.Unix()}
	}
	if v.Feedback != nil {
		res.Feedback = &FeedbackResponse{
			Rating:      v.Feedback.Rating,
			Comment:     v.Feedback.Comment,
			SubmittedAt: v.Feedback.SubmittedAt.Unix(),
		}
	}
	if v.Coordinates != nil {
		res.Coordinates = &CoordinatesResponse{Lat: v.Coordinates.Latitude, Lng: v.Coordinates.Longitude}
	}
	return res
}

type BookingPageResponse struct {
	Data       []*BookingResponse `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

func FromBookingPage(p *queries.BookingPage) *BookingPageResponse {
	res := &BookingPageResponse{
		Data:       make([]*BookingResponse, len(p.Data)),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
	for i, v := range p.Data {
		res.Data[i] = FromBookingView(v)
	}
	return res
}

type QuoteResponse struct {
	ServicePrice  int64  `json:"servicePrice"`
	AddOnsTotal   int64  `json:"addOnsTotal"`
	Discount      int64  `json:"discount"`
	TaxAmount     int64  `json:"taxAmount"`
	TotalAmount   int64  `json:"totalAmount"`
	AdvanceAmount *int64 `json:"advanceAmount,omitempty"`
	PayableAmount int64  `json:"payableAmount"`
	PaymentType   string `json:"paymentType"`
	CouponApplied string `json:"couponApplied,omitempty"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	var res QuoteResponse
	_ = copier.Copy(&res, v)
	return &res
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
