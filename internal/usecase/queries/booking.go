package queries

//go:generate go run go.uber.org/mock/mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

import (
	"context"
	"strings"
	"time"

	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID, p BookingListParams) (*BookingPage, error)
	GetMine(ctx context.Context, userID, id uuid.UUID) (*BookingView, error)

	List(ctx context.Context, p BookingListParams) (*BookingPage, error)
	Get(ctx context.Context, id uuid.UUID) (*BookingView, error)

	ListJobs(ctx context.Context, staffID uuid.UUID, p BookingListParams) (*BookingPage, error)
	GetJob(ctx context.Context, staffID, id uuid.UUID) (*BookingView, error)
	WorkHistory(ctx context.Context, staffID uuid.UUID, p BookingListParams) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	loc   *time.Location
}

func NewBookingQueries(store BookingReadStore, cfg config.Config) BookingQueries {
	return &bookingQueriesImpl{store: store, loc: cfg.Checkout.Location()}
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, p BookingListParams) (*BookingPage, error) {
	f, err := q.filter(p)
	if err != nil {
		return nil, err
	}
	f.UserID = &userID
	f.StaffID = nil
	f.ServiceSearch, f.BookingID = "", nil
	return q.list(ctx, f, p)
}

func (q *bookingQueriesImpl) GetMine(ctx context.Context, userID, id uuid.UUID) (*BookingView, error) {
	v, err := q.get(ctx, id)
	if err != nil {
		return nil, err
	}
	// someone else's booking is reported as missing
	if v.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, p BookingListParams) (*BookingPage, error) {
	f, err := q.filter(p)
	if err != nil {
		return nil, err
	}
	return q.list(ctx, f, p)
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.get(ctx, id)
}

func (q *bookingQueriesImpl) ListJobs(ctx context.Context, staffID uuid.UUID, p BookingListParams) (*BookingPage, error) {
	f, err := q.filter(p)
	if err != nil {
		return nil, err
	}
	f.StaffID = &staffID
	f.Ascending = true
	return q.list(ctx, f, p)
}

func (q *bookingQueriesImpl) GetJob(ctx context.Context, staffID, id uuid.UUID) (*BookingView, error) {
	v, err := q.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.StaffID == nil || *v.StaffID != staffID {
		return nil, ErrJobForbidden
	}
	return v, nil
}

func (q *bookingQueriesImpl) WorkHistory(ctx context.Context, staffID uuid.UUID, p BookingListParams) (*BookingPage, error) {
	p.Status = ""
	f, err := q.filter(p)
	if err != nil {
		return nil, err
	}
	f.StaffID = &staffID
	f.Statuses = []booking.Status{booking.StatusCompleted}
	return q.list(ctx, f, p)
}

func (q *bookingQueriesImpl) get(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	decorate(v)
	return v, nil
}

func (q *bookingQueriesImpl) list(ctx context.Context, f BookingFilter, p BookingListParams) (*BookingPage, error) {
	page := ValidatePage(p.Page)
	limit := ValidateLimit(p.Limit)
	f.Limit = limit
	f.Offset = (page - 1) * limit

	rows, total, err := q.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, v := range rows {
		decorate(v)
	}
	if rows == nil {
		rows = []*BookingView{}
	}
	return &BookingPage{
		Data:       rows,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// filter turns raw params into a store filter. Dates are whole business days, both ends inclusive.
func (q *bookingQueriesImpl) filter(p BookingListParams) (BookingFilter, error) {
	var f BookingFilter

	if s := strings.TrimSpace(p.Status); s != "" {
		for _, part := range strings.Split(s, ",") {
			st, err := booking.NewStatus(strings.TrimSpace(part))
			if err != nil {
				return BookingFilter{}, errs.Wrapf(ErrInvalidFilter, "status %q", part)
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	if p.StaffID != nil {
		id := *p.StaffID
		f.StaffID = &id
	}

	if s := strings.TrimSpace(p.Search); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.BookingID = &id
		} else {
			f.ServiceSearch = s
		}
	}

	if p.FromDate != "" {
		d, err := slot.ParseDate(p.FromDate)
		if err != nil {
			return BookingFilter{}, errs.Wrap(ErrInvalidFilter, "fromDate")
		}
		from := d.Midnight(q.loc)
		f.From = &from
	}
	if p.ToDate != "" {
		d, err := slot.ParseDate(p.ToDate)
		if err != nil {
			return BookingFilter{}, errs.Wrap(ErrInvalidFilter, "toDate")
		}
		to := d.AddDays(1).Midnight(q.loc)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return BookingFilter{}, errs.Wrap(ErrInvalidFilter, "fromDate is after toDate")
	}
	return f, nil
}

// decorate fills the derived display fields.
func decorate(v *BookingView) {
	v.CustomerName = user.DisplayName(v.CustomerName, v.CustomerEmail, v.CustomerPhone)
	v.FullAddress = v.Address.FullAddress()
	if v.SlotTime != "" {
		if t, err := slot.ParseTimeOfDay(v.SlotTime); err == nil {
			v.DisplayTime = t.Display12h()
		}
	}
	if v.AddOns == nil {
		v.AddOns = []string{}
	}
	if v.Notes == nil {
		v.Notes = []booking.Note{}
	}
}
