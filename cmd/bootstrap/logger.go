package bootstrap

import (
	"log/slog"

	"cabinstay/internal/handler/middleware"
	"cabinstay/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewSlogLogger,
	),
)

func NewSlogLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
