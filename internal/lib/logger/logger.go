package logger

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/linemk/flower-delivery/internal/lib/logger/handlers/slogpretty"
	"github.com/linemk/flower-delivery/internal/lib/logger/handlers/tracectx"
)

// switching logger
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// SetupLogger инициализирует логгер в зависимости от переданного окружения
// для локальной разработки используется цветной вывод (pretty), а для dev/prod – JSON.
// Все варианты добавляют trace_id/span_id из контекста.
func SetupLogger(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case EnvLocal:
		handler = setupPrettyHandler()
	case EnvDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case EnvProd:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.New(tracectx.New(handler))
}

func setupPrettyHandler() slog.Handler {
	color.NoColor = false

	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return opts.NewPrettyHandler(os.Stdout)
}
