package repository

import (
	"context"
	"time"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const slotColumns = `id, slot_date, slot_time, status, booking_id, created_at, updated_at`

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(db db.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) UpsertUnavailable(ctx context.Context, slots []*slot.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	const q = `
		INSERT INTO slots (id, slot_date, slot_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (slot_date, slot_time) DO NOTHING`

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(q, s.ID(), DateParam(s.Date()), s.Time().String(), slot.StatusUnavailable.String(), s.CreatedAt())
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range slots {
		tag, err := results.Exec()
		if err != nil {
			return 0, infra.WrapRepoErr("failed to upsert slot", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
	s, err := ScanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return s, nil
}

func (r *SlotRepository) FindByKey(ctx context.Context, key slot.Key) (*slot.Slot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM slots WHERE slot_date = $1 AND slot_time = $2`,
		DateParam(key.Date), key.Time.String())
	s, err := ScanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by key", err)
	}
	return s, nil
}

func (r *SlotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status slot.Status, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE slots SET status = $2, updated_at = $3
		WHERE id = $1 AND status <> 'booked' AND booking_id IS NULL`,
		id, status.String(), now)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id, "slot is booked")
	}
	return nil
}

// UpdateStatusForDate skips booked slots.
func (r *SlotRepository) UpdateStatusForDate(ctx context.Context, date slot.Date, status slot.Status, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE slots SET status = $2, updated_at = $3
		WHERE slot_date = $1 AND status <> 'booked' AND booking_id IS NULL AND status <> $2`,
		DateParam(date), status.String(), now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update slot status for date", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) Reserve(ctx context.Context, id, bookingID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE slots SET status = 'booked', booking_id = $2, updated_at = $3
		WHERE id = $1 AND status = 'available' AND booking_id IS NULL`,
		id, bookingID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve slot", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id, "slot is not available")
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, id, bookingID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE slots SET status = 'available', booking_id = NULL, updated_at = $3
		WHERE id = $1 AND booking_id = $2`,
		id, bookingID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrConflict(ctx, id, "slot is held by another booking")
	}
	return nil
}

func (r *SlotRepository) missOrConflict(ctx context.Context, id uuid.UUID, msg string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM slots WHERE id = $1)`, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check slot", err)
	}
	if !exists {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

// DateParam encodes a calendar day for a DATE column.
func DateParam(d slot.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Midnight(time.UTC))
}

func ScanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		id        uuid.UUID
		date      pgtype.Date
		tod       string
		status    string
		bookingID pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &date, &tod, &status, &bookingID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return toSlot(id, date, tod, status, bookingID, createdAt, updatedAt)
}

func toSlot(id uuid.UUID, date pgtype.Date, tod, status string, bookingID pgtype.UUID, createdAt, updatedAt pgtype.Timestamptz) (*slot.Slot, error) {
	t, err := slot.ParseTimeOfDay(tod)
	if err != nil {
		return nil, err
	}
	st, err := slot.NewStatus(status)
	if err != nil {
		return nil, err
	}
	key := slot.Key{Date: slot.DateOf(date.Time, time.UTC), Time: t}
	return slot.Reconstruct(id, key, st, pgconv.UUIDPtrFromPgtype(bookingID),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt)), nil
}
