package repository

import (
	"context"
	"time"

	"vehicle-care-booking/internal/infra"
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(db db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, job shared.OutboxJob) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), job.Kind, job.Topic, job.Payload, job.RunAt, JobStatusQueued)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit due jobs for the surrounding transaction. Rows
// locked by another dispatcher are skipped.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.ClaimedJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, topic, payload, attempts
		FROM notification_jobs
		WHERE status = $1 AND run_at <= $2
		ORDER BY run_at, id
		LIMIT $3
		FOR UPDATE SKIP LOCKED`,
		JobStatusQueued, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.ClaimedJob
	for rows.Next() {
		var j shared.ClaimedJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET status = $2, last_error = NULL, updated_at = $3
		WHERE id = $1`,
		id, JobStatusSent, now)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}

// MarkRetry records a failed attempt. The job goes to failed once attempts reach maxAttempts.
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, lastErr string, nextRun time.Time, maxAttempts int32, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs SET
			attempts = attempts + 1,
			last_error = $2,
			run_at = $3,
			status = CASE WHEN attempts + 1 >= $4 THEN $5 ELSE status END,
			updated_at = $6
		WHERE id = $1`,
		id, pgtype.Text{String: lastErr, Valid: true}, nextRun, maxAttempts, JobStatusFailed, now)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
