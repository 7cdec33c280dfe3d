package repository

import (
	"context"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/infra/repository/converter"
	"vehicle-care-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create fails with DUPLICATE_KEY when the gateway payment id was already materialized.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row, err := converter.BookingToRow(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (`+converter.BookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`,
		row.ID, row.Number, row.UserID, row.ServiceID, row.ServiceName, row.VehicleID, row.SlotID,
		row.Address, row.ScheduledAt, row.AddOns, row.PaymentType, row.Status, row.PaymentStatus,
		row.Amount, row.TotalAmount, row.AdvanceAmount, row.StaffID, row.Notes,
		row.FeedbackRating, row.FeedbackComment, row.FeedbackAt, row.Latitude, row.Longitude,
		row.CouponCode, row.GatewayOrderID, row.GatewayPaymentID, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// Update writes the mutable columns. Amounts other than the advance are fixed at creation.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	row, err := converter.BookingToRow(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET
			status = $2, payment_status = $3, advance_amount = $4, staff_id = $5, notes = $6,
			feedback_rating = $7, feedback_comment = $8, feedback_at = $9,
			gateway_order_id = $10, gateway_payment_id = $11, updated_at = $12
		WHERE id = $1`,
		row.ID, row.Status, row.PaymentStatus, row.AdvanceAmount, row.StaffID, row.Notes,
		row.FeedbackRating, row.FeedbackComment, row.FeedbackAt,
		row.GatewayOrderID, row.GatewayPaymentID, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	err := r.db.QueryRow(ctx,
		`SELECT `+converter.BookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id,
	).Scan(row.Dest()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := converter.BookingFromRow(&row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return b, nil
}
