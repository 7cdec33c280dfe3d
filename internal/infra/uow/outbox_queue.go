package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vehicle-care-booking/internal/infra/repository"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	outboxMaxAttempts = 10
	outboxMaxDelay    = time.Hour
	outboxBaseDelay   = 10 * time.Second
)

// OutboxQueue claims due notification jobs in one transaction and records each delivery outcome.
type OutboxQueue struct {
	pool *pgxpool.Pool
}

func NewOutboxQueue(pool *pgxpool.Pool) *OutboxQueue {
	return &OutboxQueue{pool: pool}
}

// Process hands up to limit due jobs to deliver. A delivery error reschedules
// the job with exponential delay.
func (q *OutboxQueue) Process(ctx context.Context, now time.Time, limit int, deliver func(ctx context.Context, job shared.ClaimedJob) error) (sent, failed int, err error) {
	tx, err := q.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return 0, 0, errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("outbox rollback failed", "error", rbErr.Error())
		}
	}()

	repo := repository.NewOutboxRepository(tx)
	jobs, err := repo.ClaimDue(ctx, now, limit)
	if err != nil {
		return 0, 0, err
	}

	for _, job := range jobs {
		if derr := deliver(ctx, job); derr != nil {
			failed++
			next := now.Add(RetryDelay(job.Attempts))
			if err := repo.MarkRetry(ctx, job.ID, derr.Error(), next, outboxMaxAttempts, now); err != nil {
				return sent, failed, err
			}
			continue
		}
		sent++
		if err := repo.MarkSent(ctx, job.ID, now); err != nil {
			return sent, failed, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return sent, failed, errs.Mark(err, errTransactionCommit)
	}
	return sent, failed, nil
}

// RetryDelay doubles per attempt up to an hour.
func RetryDelay(attempts int32) time.Duration {
	d := outboxBaseDelay
	for i := int32(0); i < attempts; i++ {
		d *= 2
		if d >= outboxMaxDelay {
			return outboxMaxDelay
		}
	}
	return d
}
