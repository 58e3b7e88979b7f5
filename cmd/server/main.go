package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/linemk/flower-delivery/internal/app"
	"github.com/linemk/flower-delivery/internal/config"
	"github.com/linemk/flower-delivery/internal/lib/logger"
	"github.com/linemk/flower-delivery/internal/lib/telemetry"
	"github.com/pkg/errors"
)

func main() {
	// .env необязателен: переменные могут прийти из окружения
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	ctx := context.Background()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Error("failed to initialize telemetry", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize telemetry"))
	}

	// основное хранилище или демо-режим
	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	log.Info("storage ready", slog.String("mode", string(application.Store.Mode())))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      application.Router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := application.Close(shutdownCtx); err != nil {
		log.Error("failed to close storage", slog.Any("error", err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("failed to flush traces", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
