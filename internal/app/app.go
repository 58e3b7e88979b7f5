package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linemk/flower-delivery/internal/config"
	"github.com/linemk/flower-delivery/internal/lib/logger"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/storage"
	"github.com/linemk/flower-delivery/internal/storage/demo"
	"github.com/linemk/flower-delivery/internal/storage/mongostore"
	"github.com/linemk/flower-delivery/internal/storage/postgres"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  storage.Store
	Router http.Handler
}

// NewApp создаёт новый экземпляр App. Если основное хранилище недоступно,
// приложение до конца работы процесса использует демо-данные.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	store, err := openStore(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	router := NewRouter(log, store, RouterOptions{
		Policy:       pricing.NewDeliveryPolicy(cfg.Delivery.FreeThreshold, cfg.Delivery.Fee),
		ExposeErrors: cfg.Env != logger.EnvProd,
	})

	return &App{
		Config: cfg,
		Logger: log,
		Store:  store,
		Router: router,
	}, nil
}

// Close закрывает соединение с хранилищем
func (a *App) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}

func openStore(ctx context.Context, log *slog.Logger, cfg *config.Config) (storage.Store, error) {
	const op = "app.openStore"
	logger := log.With(slog.String("op", op), slog.String("driver", cfg.Storage.Driver))

	var (
		store storage.Store
		err   error
	)
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		store, err = openMongo(ctx, log, cfg)
	case config.DriverPostgres:
		store, err = openPostgres(ctx, log, cfg)
	case config.DriverDemo:
		logger.Info("demo mode requested by configuration")
		return demo.New(), nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}

	if err != nil {
		logger.Warn("primary storage unavailable, switching to demo mode", slog.Any("error", err))
		return demo.New(), nil
	}
	logger.Info("connected to primary storage")
	return store, nil
}

func openMongo(ctx context.Context, log *slog.Logger, cfg *config.Config) (storage.Store, error) {
	client, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Storage.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return mongostore.New(log, client, db), nil
}

func openPostgres(ctx context.Context, log *slog.Logger, cfg *config.Config) (storage.Store, error) {
	db, err := postgres.Open(ctx, cfg.Database.DSN(), cfg.Storage.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return postgres.New(log, db), nil
}
