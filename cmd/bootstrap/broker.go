package bootstrap

import (
	"context"

	"vehicle-care-booking/internal/infra/broker"
	"vehicle-care-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) *broker.Publisher {
	p := broker.NewPublisher(cfg.Broker)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}
