package readstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/infra/repository/converter"
	"vehicle-care-booking/internal/pkg/pgconv"
	"vehicle-care-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookingViewColumns = prefixColumns(converter.BookingColumns, "b.") + `,
	u.name, u.email, u.phone, s.slot_date, s.slot_time,
	v.category, v.body_type, v.brand, v.model, v.plate_number, st.name`

const bookingViewFrom = `
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN slots s ON s.id = b.slot_id
	LEFT JOIN vehicles v ON v.id = b.vehicle_id
	LEFT JOIN users st ON st.id = b.staff_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingViewColumns+bookingViewFrom+` WHERE b.id = $1`, id)
	v, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return v, nil
}

func (s *BookingReadStore) List(ctx context.Context, f queries.BookingFilter) ([]*queries.BookingView, int, error) {
	where, args := buildBookingWhere(f)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	if total == 0 {
		return []*queries.BookingView{}, 0, nil
	}

	order := " ORDER BY b.scheduled_at DESC, b.id DESC"
	if f.Ascending {
		order = " ORDER BY b.scheduled_at ASC, b.id ASC"
	}
	args = append(args, f.Limit, f.Offset)
	paging := " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.db.Query(ctx, `SELECT `+bookingViewColumns+bookingViewFrom+where+order+paging, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	out := make([]*queries.BookingView, 0, f.Limit)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read bookings", err)
	}
	return out, total, nil
}

func buildBookingWhere(f queries.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.UserID != nil {
		add("b.user_id = ?", *f.UserID)
	}
	if f.StaffID != nil {
		add("b.staff_id = ?", *f.StaffID)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = st.String()
		}
		add("b.status = ANY(?)", statuses)
	}
	if f.BookingID != nil {
		add("b.id = ?", *f.BookingID)
	}
	if f.ServiceSearch != "" {
		add("b.service_name ILIKE ?", "%"+escapeLike(f.ServiceSearch)+"%")
	}
	if f.From != nil {
		add("b.scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		add("b.scheduled_at < ?", *f.To)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		r                                          converter.BookingRow
		custName, custEmail, custPhone             pgtype.Text
		slotDate                                   pgtype.Date
		slotTime, category, bodyType, brand, model pgtype.Text
		plate, staffName                           pgtype.Text
	)
	dest := append(r.Dest(),
		&custName, &custEmail, &custPhone, &slotDate, &slotTime,
		&category, &bodyType, &brand, &model, &plate, &staffName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	addr, err := converter.AddressFromJSON(r.Address)
	if err != nil {
		return nil, err
	}
	notes, err := converter.NotesFromJSON(r.Notes)
	if err != nil {
		return nil, err
	}

	v := &queries.BookingView{
		ID:              r.ID,
		BookingNumber:   r.Number,
		UserID:          r.UserID,
		CustomerName:    pgconv.StringFromPgtype(custName),
		CustomerEmail:   pgconv.StringFromPgtype(custEmail),
		CustomerPhone:   pgconv.StringFromPgtype(custPhone),
		ServiceID:       r.ServiceID,
		ServiceName:     r.ServiceName,
		VehicleID:       r.VehicleID,
		VehicleCategory: pgconv.StringFromPgtype(category),
		VehicleBodyType: pgconv.StringFromPgtype(bodyType),
		VehicleBrand:    pgconv.StringFromPgtype(brand),
		VehicleModel:    pgconv.StringFromPgtype(model),
		PlateNumber:     pgconv.StringFromPgtype(plate),
		SlotTime:        pgconv.StringFromPgtype(slotTime),
		Address:         addr,
		ScheduledAt:     pgconv.TimeFromPgtype(r.ScheduledAt),
		AddOns:          r.AddOns,
		PaymentType:     r.PaymentType,
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		Amount:          r.Amount,
		TotalAmount:     r.TotalAmount,
		AdvanceAmount:   pgconv.Int64PtrFromPgtype(r.AdvanceAmount),
		StaffID:         pgconv.UUIDPtrFromPgtype(r.StaffID),
		StaffName:       pgconv.StringFromPgtype(staffName),
		Notes:           notes,
		Coordinates:     converter.CoordinatesFromRow(&r),
		CreatedAt:       pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(r.UpdatedAt),
	}
	if id := pgconv.UUIDPtrFromPgtype(r.SlotID); id != nil {
		v.SlotID = *id
	}
	if slotDate.Valid {
		v.SlotDate = slot.DateOf(slotDate.Time, time.UTC).String()
	}
	if fb := converter.FeedbackFromRow(&r); fb != nil {
		v.Feedback = &queries.FeedbackView{Rating: fb.Rating(), Comment: fb.Comment(), SubmittedAt: fb.SubmittedAt()}
	}
	return v, nil
}

func prefixColumns(cols, prefix string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
