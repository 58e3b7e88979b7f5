// Package cart реализует клиентскую корзину: список позиций, уникальных по
// паре (товар, магазин), который сохраняется целиком после каждого изменения.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/shopspring/decimal"
)

// Snapshot состояние корзины на момент вызова
type Snapshot struct {
	Items    []models.CartItem
	Count    int
	Subtotal decimal.Decimal
}

// Empty - нет ни одной позиции
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

// Store корзина одного клиента. Все изменения записываются в Storage до
// возврата из метода; при ошибке записи состояние в памяти не меняется.
type Store struct {
	log     *slog.Logger
	storage Storage

	mu    sync.Mutex
	items []models.CartItem
}

// Open загружает сохранённую корзину. Отсутствие ключа - пустая корзина,
// повреждённые данные - ошибка.
func Open(ctx context.Context, storage Storage, log *slog.Logger) (*Store, error) {
	const op = "cart.Open"

	s := &Store{log: log, storage: storage}

	data, err := storage.Load(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: decode cart: %w", op, err)
	}
	for _, item := range items {
		if item.ProductName == "" && item.Name != "" {
			item.ProductName = item.Name
		}
		item.Name = ""
		if item.Quantity <= 0 {
			continue
		}
		// повторы одной пары товар/магазин сливаются в первую позицию
		if i := s.indexOf(item.ProductID, item.ShopID); i >= 0 {
			s.items[i].Quantity += item.Quantity
			continue
		}
		s.items = append(s.items, item)
	}
	return s, nil
}

// Add добавляет товар. Quantity == 0 означает 1. Если позиция с той же парой
// товар/магазин уже есть, количество увеличивается. Если итоговое
// количество не положительное или цена отрицательная, ничего не меняется.
func (s *Store) Add(ctx context.Context, item models.CartItem) error {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Price < 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItems()
	if i := s.indexOf(item.ProductID, item.ShopID); i >= 0 {
		qty := next[i].Quantity + item.Quantity
		if qty <= 0 {
			return nil
		}
		next[i].Quantity = qty
	} else {
		if item.Quantity <= 0 {
			return nil
		}
		if item.ProductName == "" {
			item.ProductName = item.Name
		}
		item.Name = ""
		next = append(next, item)
	}
	return s.commit(ctx, next)
}

// SetQuantity задаёт количество; n <= 0 удаляет позицию
func (s *Store) SetQuantity(ctx context.Context, productID, shopID string, n int) error {
	if n <= 0 {
		return s.Remove(ctx, productID, shopID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID, shopID)
	if i < 0 || s.items[i].Quantity == n {
		return nil
	}
	next := s.copyItems()
	next[i].Quantity = n
	return s.commit(ctx, next)
}

func (s *Store) Remove(ctx context.Context, productID, shopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID, shopID)
	if i < 0 {
		return nil
	}
	next := make([]models.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	return s.commit(ctx, next)
}

// Clear очищает корзину и сохраняет пустой список
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, []models.CartItem{})
}

// Snapshot возвращает копию позиций в порядке добавления, общее количество
// единиц товара и сумму (каждая позиция округляется до копеек).
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Items: s.copyItems(), Subtotal: decimal.Zero}
	lines := make([]decimal.Decimal, 0, len(s.items))
	for _, item := range s.items {
		snap.Count += item.Quantity
		lines = append(lines, pricing.LineSubtotal(item.Price, item.Quantity))
	}
	snap.Subtotal = pricing.Round(decimal.Sum(decimal.Zero, lines...))
	return snap
}

// commit сохраняет новый список и только после успешной записи заменяет
// состояние в памяти. Вызывается под s.mu.
func (s *Store) commit(ctx context.Context, next []models.CartItem) error {
	const op = "cart.commit"

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%s: encode cart: %w", op, err)
	}
	if err := s.storage.Save(ctx, Key, data); err != nil {
		s.log.Error("failed to persist cart", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.items = next
	return nil
}

func (s *Store) indexOf(productID, shopID string) int {
	for i, item := range s.items {
		if item.SameLine(productID, shopID) {
			return i
		}
	}
	return -1
}

func (s *Store) copyItems() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}
