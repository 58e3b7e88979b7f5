package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
)

const orderColumns = `id, order_number, customer, delivery_address, items, total_amount, currency,
	status, delivery_date, special_instructions, created_at, updated_at`

// InsertOrder вставляет заказ в таблицу orders и возвращает сохранённую строку.
func (s *Store) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "storage.postgres.InsertOrder"

	items := make([]models.OrderItem, len(order.Items))
	for i, item := range order.Items {
		item.ProductID = s.itemRef(order.OrderNumber, i, "product_id", item.ProductID)
		item.ShopID = s.itemRef(order.OrderNumber, i, "shop_id", item.ShopID)
		items[i] = item
	}

	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return nil, fmt.Errorf("%s: encode customer: %w", op, err)
	}
	address, err := json.Marshal(order.DeliveryAddress)
	if err != nil {
		return nil, fmt.Errorf("%s: encode delivery address: %w", op, err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%s: encode items: %w", op, err)
	}

	query := `
		INSERT INTO orders (order_number, customer, delivery_address, items, total_amount, currency,
			status, delivery_date, special_instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + orderColumns

	row := s.db.QueryRowContext(ctx, query,
		order.OrderNumber, customer, address, itemsJSON, order.TotalAmount, order.Currency,
		string(order.Status), order.DeliveryDate, order.SpecialInstructions, order.CreatedAt, order.UpdatedAt,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapWriteError(err))
	}
	return created, nil
}

func (s *Store) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	const op = "storage.postgres.OrderByID"

	uid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", uid)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ListOrders возвращает страницу заказов, новые первыми.
func (s *Store) ListOrders(ctx context.Context, page storage.Page) ([]models.Order, int64, error) {
	const op = "storage.postgres.ListOrders"

	page = page.Normalize()

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	query := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2"
	rows, err := s.db.QueryContext(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0, page.Limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return orders, total, nil
}

// NextOrderSequence увеличивает счётчик года одним оператором upsert.
func (s *Store) NextOrderSequence(ctx context.Context, year int) (int64, error) {
	const op = "storage.postgres.NextOrderSequence"

	query := `
		INSERT INTO order_counters (year, seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET seq = order_counters.seq + 1
		RETURNING seq`

	var seq int64
	if err := s.db.QueryRowContext(ctx, query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapWriteError(err))
	}
	return seq, nil
}

// itemRef приводит ссылку позиции к каноническому виду UUID. Невалидная
// ссылка не отклоняется, а сохраняется как есть.
func (s *Store) itemRef(orderNumber string, index int, field, ref string) string {
	if u, err := uuid.Parse(ref); err == nil {
		return u.String()
	}
	s.log.Warn("storing opaque item reference",
		slog.String("op", "storage.postgres.itemRef"),
		slog.String("order_number", orderNumber),
		slog.Int("item", index),
		slog.String("field", field),
		slog.String("ref", ref),
	)
	return ref
}

func scanOrder(row scanner) (*models.Order, error) {
	var (
		order        models.Order
		customer     []byte
		address      []byte
		items        []byte
		status       string
		instructions sql.NullString
	)
	err := row.Scan(&order.ID, &order.OrderNumber, &customer, &address, &items, &order.TotalAmount,
		&order.Currency, &status, &order.DeliveryDate, &instructions, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatus(status)
	order.SpecialInstructions = instructions.String

	if err := unmarshalJSONB(customer, &order.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if err := unmarshalJSONB(address, &order.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("decode delivery address: %w", err)
	}
	if err := unmarshalJSONB(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &order, nil
}
