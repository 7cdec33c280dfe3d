package bootstrap

import (
	"vehicle-care-booking/internal/infra/metrics"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/worker"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) commands.Recorder { return m },
		func(m *metrics.Metrics) worker.Recorder { return m },
	),
)
