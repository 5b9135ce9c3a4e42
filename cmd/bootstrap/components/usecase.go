package components

import (
	"cabinstay/internal/domain/booking"
	"cabinstay/internal/pkg/clock"
	"cabinstay/internal/usecase/commands"
	"cabinstay/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewNightlyRateCalculator,
		fx.As(new(booking.RateCalculator)),
	),
	booking.NewAssembler,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewBlockedDateUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
		queries.NewQuoteQueries,
	),
)
