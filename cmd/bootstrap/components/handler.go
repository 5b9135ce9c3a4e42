package components

import (
	"cabinstay/internal/handler"
	"cabinstay/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewBlockedDateHandler,
	),
	fx.Invoke(handler.NewRouter),
)
