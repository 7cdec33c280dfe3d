package components

import (
	"vehicle-care-booking/internal/infra/cache"
	"vehicle-care-booking/internal/pkg/clock"
	"vehicle-care-booking/internal/usecase"
	"vehicle-care-booking/internal/usecase/commands"
	"vehicle-care-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(s *cache.SessionStore) commands.SessionStore { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotUseCase,
		commands.NewBookingUseCase,
		commands.NewStaffJobUseCase,
		commands.NewCheckoutUseCase,
		commands.NewReconciliationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewBookingQueries,
		queries.NewPricingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
