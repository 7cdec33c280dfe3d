package worker

//go:generate go run go.uber.org/mock/mockgen -source=outbox_dispatcher.go -destination=../../tests/mock/worker/outbox_dispatcher.go -package=workermock

import (
	"context"
	"log/slog"
	"time"

	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"
	"vehicle-care-booking/internal/usecase/shared"

	"github.com/robfig/cron/v3"
)

type JobQueue interface {
	Process(ctx context.Context, now time.Time, limit int, deliver func(ctx context.Context, job shared.ClaimedJob) error) (sent, failed int, err error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type Recorder interface {
	OutboxDispatched(result string)
}

// OutboxDispatcher relays committed booking events to the broker on a cron schedule.
type OutboxDispatcher struct {
	queue     JobQueue
	publisher Publisher
	recorder  Recorder
	clock     clock.Clock
	cfg       config.OutboxConfig
	cron      *cron.Cron
}

func NewOutboxDispatcher(queue JobQueue, publisher Publisher, recorder Recorder, clk clock.Clock, cfg config.Config) *OutboxDispatcher {
	return &OutboxDispatcher{
		queue:     queue,
		publisher: publisher,
		recorder:  recorder,
		clock:     clk,
		cfg:       cfg.Outbox,
	}
}

func (d *OutboxDispatcher) Start() error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(d.cfg.Schedule, func() {
		if _, err := d.RunOnce(context.Background()); err != nil {
			slog.Error("outbox dispatch failed", "error", err.Error())
		}
	}); err != nil {
		return errs.Wrapf(err, "invalid outbox schedule %q", d.cfg.Schedule)
	}
	d.cron = c
	c.Start()
	slog.Info("outbox dispatcher started", "schedule", d.cfg.Schedule)
	return nil
}

// Stop waits for a running batch to finish or ctx to expire.
func (d *OutboxDispatcher) Stop(ctx context.Context) {
	if d.cron == nil {
		return
	}
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce delivers one batch and returns how many jobs were published.
func (d *OutboxDispatcher) RunOnce(ctx context.Context) (int, error) {
	limit := d.cfg.BatchSize
	if limit <= 0 {
		limit = 50
	}

	sent, failed, err := d.queue.Process(ctx, d.clock.Now(), limit, func(ctx context.Context, job shared.ClaimedJob) error {
		if perr := d.publisher.Publish(ctx, job.Topic, job.Payload); perr != nil {
			slog.WarnContext(ctx, "outbox publish failed",
				"job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts, "error", perr.Error())
			d.recorder.OutboxDispatched("failed")
			return perr
		}
		d.recorder.OutboxDispatched("sent")
		return nil
	})
	if err != nil {
		return sent, err
	}
	if sent > 0 || failed > 0 {
		slog.Info("outbox batch dispatched", "sent", sent, "failed", failed)
	}
	return sent, nil
}
