package bootstrap

import (
	"log/slog"

	"vehicle-care-booking/internal/infra/gateway"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewGatewayClient(cfg config.Config) *gateway.Client {
	if !cfg.Gateway.Configured() {
		slog.Warn("payment gateway credentials are not set; checkout will be rejected")
	}
	return gateway.NewClient(cfg.Gateway)
}
