// Package demo реализует хранилище в памяти с фиксированным набором
// магазинов и товаров. Используется, когда основная база недоступна.
package demo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
)

// OrderIDPrefix префикс синтетических идентификаторов заказов
const OrderIDPrefix = "order_"

// Store хранилище демо-режима. Каталог неизменяем, заказы добавляются в
// список в памяти и теряются при перезапуске.
type Store struct {
	shops    []models.Shop
	products []models.Product

	mu       sync.RWMutex
	orders   []models.Order
	counters map[int]int64
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	now := time.Now().UTC()
	return NewWithCatalog(Shops(now), Products(now))
}

// NewWithCatalog создаёт демо-хранилище с заданным каталогом
func NewWithCatalog(shops []models.Shop, products []models.Product) *Store {
	return &Store{
		shops:    shops,
		products: products,
		counters: make(map[int]int64),
	}
}

func (s *Store) Mode() storage.Mode {
	return storage.ModeDemo
}

func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) ListShops(_ context.Context, filter storage.ShopFilter) ([]models.Shop, error) {
	out := make([]models.Shop, 0, len(s.shops))
	for _, shop := range s.shops {
		if filter.Match(shop) {
			out = append(out, shop)
		}
	}
	return out, nil
}

// ShopByID ищет магазин по точному совпадению идентификатора, формат не проверяется
func (s *Store) ShopByID(_ context.Context, id string) (*models.Shop, error) {
	for i := range s.shops {
		if s.shops[i].ID == id {
			shop := s.shops[i]
			return &shop, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListProducts(_ context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ProductByID(_ context.Context, id string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

// InsertOrder добавляет заказ в список и присваивает ему идентификатор order_<uuid>
func (s *Store) InsertOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	const op = "storage.demo.InsertOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.OrderNumber == order.OrderNumber {
			return nil, fmt.Errorf("%s: %s: %w", op, order.OrderNumber, storage.ErrDuplicateOrderNumber)
		}
	}

	stored := *order
	stored.ID = OrderIDPrefix + uuid.NewString()
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders = append(s.orders, stored)

	result := stored
	return &result, nil
}

func (s *Store) OrderByID(_ context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListOrders(_ context.Context, page storage.Page) ([]models.Order, int64, error) {
	page = page.Normalize()

	// новые первыми, при равном времени - позже добавленные первыми
	s.mu.RLock()
	sorted := make([]models.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		sorted = append(sorted, s.orders[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	total := int64(len(sorted))
	start := page.Offset()
	if start >= len(sorted) {
		return []models.Order{}, total, nil
	}
	end := start + page.Limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], total, nil
}

func (s *Store) NextOrderSequence(_ context.Context, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[year]++
	return s.counters[year], nil
}

func (s *Store) Stats(context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		TotalShops:    int64(len(s.shops)),
		TotalProducts: int64(len(s.products)),
		TotalOrders:   int64(len(s.orders)),
	}
	for _, shop := range s.shops {
		if shop.IsActive {
			stats.ActiveShops++
		}
	}
	for _, p := range s.products {
		if p.IsAvailable {
			stats.AvailableProducts++
		}
	}
	return stats, nil
}
