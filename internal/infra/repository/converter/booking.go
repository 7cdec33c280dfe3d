package converter

import (
	"encoding/json"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/pricing"
	"vehicle-care-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the column order shared by BookingRow.Dest and every booking SELECT.
const BookingColumns = `id, booking_number, user_id, service_id, service_name, vehicle_id, slot_id,
	address, scheduled_at, add_ons, payment_type, status, payment_status,
	amount, total_amount, advance_amount, staff_id, notes,
	feedback_rating, feedback_comment, feedback_at, latitude, longitude,
	coupon_code, gateway_order_id, gateway_payment_id, created_at, updated_at`

// BookingRow mirrors one bookings row.
type BookingRow struct {
	ID               uuid.UUID
	Number           string
	UserID           uuid.UUID
	ServiceID        uuid.UUID
	ServiceName      string
	VehicleID        uuid.UUID
	SlotID           pgtype.UUID
	Address          []byte
	ScheduledAt      pgtype.Timestamptz
	AddOns           []string
	PaymentType      string
	Status           string
	PaymentStatus    string
	Amount           int64
	TotalAmount      int64
	AdvanceAmount    pgtype.Int8
	StaffID          pgtype.UUID
	Notes            []byte
	FeedbackRating   pgtype.Int4
	FeedbackComment  pgtype.Text
	FeedbackAt       pgtype.Timestamptz
	Latitude         pgtype.Float8
	Longitude        pgtype.Float8
	CouponCode       pgtype.Text
	GatewayOrderID   pgtype.Text
	GatewayPaymentID pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// Dest returns scan targets in BookingColumns order.
func (r *BookingRow) Dest() []any {
	return []any{
		&r.ID, &r.Number, &r.UserID, &r.ServiceID, &r.ServiceName, &r.VehicleID, &r.SlotID,
		&r.Address, &r.ScheduledAt, &r.AddOns, &r.PaymentType, &r.Status, &r.PaymentStatus,
		&r.Amount, &r.TotalAmount, &r.AdvanceAmount, &r.StaffID, &r.Notes,
		&r.FeedbackRating, &r.FeedbackComment, &r.FeedbackAt, &r.Latitude, &r.Longitude,
		&r.CouponCode, &r.GatewayOrderID, &r.GatewayPaymentID, &r.CreatedAt, &r.UpdatedAt,
	}
}

func BookingToRow(b *booking.Booking) (*BookingRow, error) {
	addr, err := json.Marshal(b.Address())
	if err != nil {
		return nil, err
	}
	notes := b.Notes()
	if notes == nil {
		notes = []booking.Note{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	addOns := b.AddOns()
	if addOns == nil {
		addOns = []string{}
	}

	row := &BookingRow{
		ID:               b.ID(),
		Number:           b.Number(),
		UserID:           b.UserID(),
		ServiceID:        b.ServiceID(),
		ServiceName:      b.ServiceName(),
		VehicleID:        b.VehicleID(),
		SlotID:           uuidOrNull(b.SlotID()),
		Address:          addr,
		ScheduledAt:      pgconv.TimeToPgtype(b.ScheduledAt()),
		AddOns:           addOns,
		PaymentType:      b.PaymentType().String(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		Amount:           b.Amount(),
		TotalAmount:      b.TotalAmount(),
		AdvanceAmount:    pgconv.Int64PtrToPgtype(b.AdvanceAmount()),
		StaffID:          pgconv.UUIDPtrToPgtype(b.StaffID()),
		Notes:            notesJSON,
		CouponCode:       pgconv.TextOrNull(b.CouponCode()),
		GatewayOrderID:   pgconv.TextOrNull(b.GatewayOrderID()),
		GatewayPaymentID: pgconv.TextOrNull(b.GatewayPaymentID()),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if fb := b.Feedback(); fb != nil {
		row.FeedbackRating = pgtype.Int4{Int32: int32(fb.Rating()), Valid: true} // #nosec G115 -- rating is 1..5
		row.FeedbackComment = pgtype.Text{String: fb.Comment(), Valid: true}
		row.FeedbackAt = pgconv.TimeToPgtype(fb.SubmittedAt())
	}
	if c := b.Coordinates(); c != nil {
		row.Latitude = pgtype.Float8{Float64: c.Latitude, Valid: true}
		row.Longitude = pgtype.Float8{Float64: c.Longitude, Valid: true}
	}
	return row, nil
}

func BookingFromRow(r *BookingRow) (*booking.Booking, error) {
	addr, err := AddressFromJSON(r.Address)
	if err != nil {
		return nil, err
	}
	notes, err := NotesFromJSON(r.Notes)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return nil, err
	}
	pt, err := pricing.NewPaymentType(r.PaymentType)
	if err != nil {
		return nil, err
	}

	var slotID uuid.UUID
	if id := pgconv.UUIDPtrFromPgtype(r.SlotID); id != nil {
		slotID = *id
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:               r.ID,
		Number:           r.Number,
		UserID:           r.UserID,
		ServiceID:        r.ServiceID,
		ServiceName:      r.ServiceName,
		VehicleID:        r.VehicleID,
		SlotID:           slotID,
		Address:          addr,
		ScheduledAt:      pgconv.TimeFromPgtype(r.ScheduledAt),
		AddOns:           r.AddOns,
		PaymentType:      pt,
		Status:           status,
		PaymentStatus:    booking.PaymentStatus(r.PaymentStatus),
		Amount:           r.Amount,
		TotalAmount:      r.TotalAmount,
		AdvanceAmount:    pgconv.Int64PtrFromPgtype(r.AdvanceAmount),
		StaffID:          pgconv.UUIDPtrFromPgtype(r.StaffID),
		Notes:            notes,
		Feedback:         FeedbackFromRow(r),
		Coordinates:      CoordinatesFromRow(r),
		CouponCode:       pgconv.StringFromPgtype(r.CouponCode),
		GatewayOrderID:   pgconv.StringFromPgtype(r.GatewayOrderID),
		GatewayPaymentID: pgconv.StringFromPgtype(r.GatewayPaymentID),
		CreatedAt:        pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(r.UpdatedAt),
	}), nil
}

func AddressFromJSON(raw []byte) (booking.Address, error) {
	var a booking.Address
	if len(raw) == 0 {
		return a, nil
	}
	err := json.Unmarshal(raw, &a)
	return a, err
}

func NotesFromJSON(raw []byte) ([]booking.Note, error) {
	notes := []booking.Note{}
	if len(raw) == 0 {
		return notes, nil
	}
	err := json.Unmarshal(raw, &notes)
	return notes, err
}

func FeedbackFromRow(r *BookingRow) *booking.Feedback {
	if !r.FeedbackRating.Valid {
		return nil
	}
	var at time.Time
	if r.FeedbackAt.Valid {
		at = r.FeedbackAt.Time
	}
	fb := booking.ReconstructFeedback(int(r.FeedbackRating.Int32), pgconv.StringFromPgtype(r.FeedbackComment), at)
	return &fb
}

func CoordinatesFromRow(r *BookingRow) *booking.Coordinates {
	if !r.Latitude.Valid || !r.Longitude.Valid {
		return nil
	}
	return &booking.Coordinates{Latitude: r.Latitude.Float64, Longitude: r.Longitude.Float64}
}

func uuidOrNull(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}
