// Package postgres реализует storage.Store поверх PostgreSQL. Вложенные
// части документов (адрес, позиции заказа, характеристики) хранятся в JSONB.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
)

type Store struct {
	log *slog.Logger
	db  *sql.DB
}

var _ storage.Store = (*Store)(nil)

func New(log *slog.Logger, db *sql.DB) *Store {
	return &Store{log: log, db: db}
}

// Open открывает пул соединений и проверяет его ping-запросом с таймаутом
func Open(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	const op = "storage.postgres.Open"

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrConnectivity, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrConnectivity, err)
	}
	return db, nil
}

func (s *Store) Mode() storage.Mode {
	return storage.ModeProduction
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	const op = "storage.postgres.Stats"

	query := `
		SELECT
			(SELECT COUNT(*) FROM shops),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM shops WHERE is_active),
			(SELECT COUNT(*) FROM products WHERE is_available)`

	var st models.Stats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&st.TotalShops, &st.TotalProducts, &st.TotalOrders, &st.ActiveShops, &st.AvailableProducts,
	)
	if err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// parseID проверяет, что идентификатор - UUID, до обращения к базе
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", storage.ErrInvalidID
	}
	return u.String(), nil
}

// mapWriteError переводит ошибки PostgreSQL в ошибки storage:
// 23505 - дубликат номера заказа, остальные нарушения ограничений (класс 23) -
// несоответствие схеме.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch {
	case pqErr.Code == "23505":
		return fmt.Errorf("%w: %v", storage.ErrDuplicateOrderNumber, err)
	case pqErr.Code.Class() == "23":
		return fmt.Errorf("%w: %v", storage.ErrSchemaViolation, err)
	case pqErr.Code.Class() == "08":
		return fmt.Errorf("%w: %v", storage.ErrConnectivity, err)
	}
	return err
}
