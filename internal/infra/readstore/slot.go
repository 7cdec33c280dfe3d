package readstore

import (
	"context"
	"time"

	"vehicle-care-booking/internal/domain/slot"
	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/infra/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(db db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: db}
}

func (s *SlotReadStore) ListByDate(ctx context.Context, date slot.Date) ([]*slot.Slot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, slot_date, slot_time, status, booking_id, created_at, updated_at
		FROM slots WHERE slot_date = $1 ORDER BY slot_time`,
		repository.DateParam(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots by date", err)
	}
	return collectSlots(rows)
}

func (s *SlotReadStore) ListAvailableByDate(ctx context.Context, date slot.Date) ([]*slot.Slot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, slot_date, slot_time, status, booking_id, created_at, updated_at
		FROM slots WHERE slot_date = $1 AND status = 'available' ORDER BY slot_time`,
		repository.DateParam(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available slots", err)
	}
	return collectSlots(rows)
}

func (s *SlotReadStore) AvailableDates(ctx context.Context, from, to slot.Date) ([]slot.Date, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT slot_date FROM slots
		WHERE slot_date BETWEEN $1 AND $2 AND status = 'available'
		ORDER BY slot_date`,
		repository.DateParam(from), repository.DateParam(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available dates", err)
	}
	defer rows.Close()

	var out []slot.Date
	for rows.Next() {
		var d pgtype.Date
		if err := rows.Scan(&d); err != nil {
			return nil, infra.WrapRepoErr("failed to scan available date", err)
		}
		out = append(out, slot.DateOf(d.Time, time.UTC))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read available dates", err)
	}
	return out, nil
}

func collectSlots(rows pgx.Rows) ([]*slot.Slot, error) {
	defer rows.Close()
	var out []*slot.Slot
	for rows.Next() {
		s, err := repository.ScanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slots", err)
	}
	return out, nil
}
