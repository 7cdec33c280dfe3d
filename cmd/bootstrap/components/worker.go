package components

import (
	"context"
	"log/slog"

	"vehicle-care-booking/internal/infra/broker"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(p *broker.Publisher) worker.Publisher { return p },
		worker.NewOutboxDispatcher,
	),
	fx.Invoke(startDispatcher),
)

// startDispatcher schedules outbox delivery only when a broker is configured.
// Without one, jobs stay queued until it is.
func startDispatcher(lc fx.Lifecycle, cfg config.Config, d *worker.OutboxDispatcher) {
	if !cfg.Broker.Enabled {
		slog.Info("broker disabled; outbox dispatcher not scheduled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return d.Start()
		},
		OnStop: func(ctx context.Context) error {
			d.Stop(ctx)
			return nil
		},
	})
}
