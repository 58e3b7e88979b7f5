// Package storage описывает слой доступа к данным магазина: каталог
// магазинов и товаров, заказы и статистику. Реализации живут в
// подпакетах mongostore, postgres и demo и выбираются один раз при старте.
package storage

import (
	"context"
	"errors"

	"github.com/linemk/flower-delivery/internal/domain/models"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidID            = errors.New("invalid ID format")
	ErrSchemaViolation      = errors.New("document failed validation")
	ErrConnectivity         = errors.New("store is unreachable")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

// Mode режим работы хранилища, отдаётся в /api/health
type Mode string

const (
	ModeProduction Mode = "production"
	ModeDemo       Mode = "demo"
)

// ShopStorage описывает методы для чтения магазинов.
type ShopStorage interface {
	ListShops(ctx context.Context, filter ShopFilter) ([]models.Shop, error)
	// ShopByID возвращает ErrInvalidID для идентификатора в чужом формате
	// и ErrNotFound, если магазина нет.
	ShopByID(ctx context.Context, id string) (*models.Shop, error)
}

// ProductStorage описывает методы для чтения товаров.
type ProductStorage interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// InsertOrder сохраняет заказ и возвращает его в том виде, в котором он
	// лежит в хранилище (с присвоенным идентификатором).
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	// ListOrders возвращает страницу заказов (новые первыми) и общее число заказов.
	ListOrders(ctx context.Context, page Page) ([]models.Order, int64, error)
	// NextOrderSequence атомарно выдаёт следующий номер заказа в году.
	NextOrderSequence(ctx context.Context, year int) (int64, error)
}

// Store полный набор операций хранилища.
type Store interface {
	ShopStorage
	ProductStorage
	OrderStorage

	Stats(ctx context.Context) (models.Stats, error)
	Mode() Mode
	Close(ctx context.Context) error
}
