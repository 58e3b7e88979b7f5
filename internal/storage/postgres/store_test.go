package postgres_test

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
	"github.com/linemk/flower-delivery/internal/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shopID    = "0b6f8a52-58a3-4c1e-9b5d-0d7f5a1c9d00"
	productID = "4e1d2c3b-7a6f-4b8e-9c0d-1a2b3c4d5e01"
	orderID   = "9f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
)

var shopCols = []string{"id", "name", "address", "phone", "email", "rating", "working_hours", "image_url", "is_active", "created_at"}

var orderCols = []string{"id", "order_number", "customer", "delivery_address", "items", "total_amount", "currency",
	"status", "delivery_date", "special_instructions", "created_at", "updated_at"}

func newStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.New(slog.New(slog.NewTextHandler(io.Discard, nil)), db), mock
}

func ptr[T any](v T) *T { return &v }

func TestShopByID_Success(t *testing.T) {
	store, mock := newStore(t)
	now := time.Now()

	// Подготавливаем строку магазина с JSONB-полями.
	rows := sqlmock.NewRows(shopCols).AddRow(
		shopID, "Квітковий Рай",
		[]byte(`{"street":"вул. Велика Васильківська, 112","city":"Київ","district":"Голосіївський","postal_code":"03150"}`),
		"+380442345678", "paradise@flowers.ua", 4.6,
		[]byte(`{"monday":"09:00-20:00"}`), nil, true, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM shops WHERE id = \\$1").WithArgs(shopID).WillReturnRows(rows)

	shop, err := store.ShopByID(context.Background(), shopID)
	require.NoError(t, err)
	assert.Equal(t, "Голосіївський", shop.Address.District)
	assert.Equal(t, "09:00-20:00", shop.WorkingHours["monday"])
	assert.Empty(t, shop.ImageURL)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopByID_NotFoundAndInvalid(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT (.+) FROM shops WHERE id = \\$1").WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows(shopCols))

	_, err := store.ShopByID(context.Background(), shopID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// неправильный формат - без запроса к базе
	_, err = store.ShopByID(context.Background(), "66e5a1b2c3d4e5f6a7b8c9d0")
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListShops_Filters(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM shops WHERE \(name ILIKE \$1 OR address->>'street' ILIKE \$2 OR address->>'district' ILIKE \$3\) AND rating >= \$4 AND is_active = \$5 ORDER BY`).
		WithArgs("%50\\%%", "%50\\%%", "%50\\%%", 4.5, true).
		WillReturnRows(sqlmock.NewRows(shopCols))

	shops, err := store.ListShops(context.Background(), storage.ShopFilter{
		Search:    "50%",
		MinRating: ptr(4.5),
		IsActive:  ptr(true),
	})
	require.NoError(t, err)
	assert.Empty(t, shops)
	assert.NotNil(t, shops)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts(t *testing.T) {
	store, mock := newStore(t)
	now := time.Now()

	cols := []string{"id", "shop_id", "name", "description", "category", "price", "currency", "stock_quantity",
		"images", "specifications", "is_available", "created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).AddRow(
		productID, shopID, "Букет тюльпанів мікс (21 шт)", "Весняний букет", "bouquet", 420.0, "UAH", 30,
		[]byte(`["https://example.com/1.jpg"]`), []byte(`{"flower_type":"Тюльпани","quantity":21}`), true, now, now,
	)
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE shop_id = \$1 AND price <= \$2 ORDER BY`).
		WithArgs(shopID, 500.0).WillReturnRows(rows)

	products, err := store.ListProducts(context.Background(), storage.ProductFilter{ShopID: shopID, MaxPrice: ptr(500.0)})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 21, products[0].Specifications.Quantity)
	assert.Equal(t, []string{"https://example.com/1.jpg"}, products[0].Images)

	_, err = store.ListProducts(context.Background(), storage.ProductFilter{ShopID: "shop-1"})
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// itemsArg проверяет JSON позиций заказа, переданный в INSERT
type itemsArg struct {
	t    *testing.T
	want []models.OrderItem
}

func (a itemsArg) Match(v driver.Value) bool {
	data, ok := v.([]byte)
	if !ok {
		return false
	}
	var got []models.OrderItem
	if err := json.Unmarshal(data, &got); err != nil {
		return false
	}
	return assert.ObjectsAreEqual(a.want, got)
}

func sampleOrder() *models.Order {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	return &models.Order{
		OrderNumber: "ORD-2026-000001",
		OrderDraft: models.OrderDraft{
			Customer:        models.Customer{Email: "anna@flowers.ua", Phone: "+380501234567"},
			DeliveryAddress: models.DeliveryAddress{Street: "вул. Хрещатик, 25", City: "Київ"},
			Items: []models.OrderItem{{
				ProductID:   "4E1D2C3B-7A6F-4B8E-9C0D-1A2B3C4D5E01",
				ShopID:      "legacy-shop",
				ProductName: "Букет",
				Price:       100,
				Quantity:    2,
				Subtotal:    200,
			}},
			TotalAmount:  250,
			Currency:     "UAH",
			DeliveryDate: now.Add(24 * time.Hour),
		},
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertOrder_NormalizesRefs(t *testing.T) {
	store, mock := newStore(t)
	order := sampleOrder()

	wantItems := []models.OrderItem{order.Items[0]}
	wantItems[0].ProductID = productID // канонический вид UUID
	itemsJSON, _ := json.Marshal(wantItems)

	rows := sqlmock.NewRows(orderCols).AddRow(
		orderID, order.OrderNumber,
		[]byte(`{"email":"anna@flowers.ua","phone":"+380501234567"}`),
		[]byte(`{"street":"вул. Хрещатик, 25","city":"Київ"}`),
		itemsJSON, 250.0, "UAH", "pending", order.DeliveryDate, nil, order.CreatedAt, order.UpdatedAt,
	)
	mock.ExpectQuery("INSERT INTO orders (.+) RETURNING").
		WithArgs(order.OrderNumber, sqlmock.AnyArg(), sqlmock.AnyArg(), itemsArg{t: t, want: wantItems},
			250.0, "UAH", "pending", order.DeliveryDate, "", order.CreatedAt, order.UpdatedAt).
		WillReturnRows(rows)

	created, err := store.InsertOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, orderID, created.ID)
	assert.Equal(t, "legacy-shop", created.Items[0].ShopID)
	assert.Equal(t, models.StatusPending, created.Status)

	// исходный заказ не меняется
	assert.Equal(t, "4E1D2C3B-7A6F-4B8E-9C0D-1A2B3C4D5E01", order.Items[0].ProductID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{"unique violation", "23505", storage.ErrDuplicateOrderNumber},
		{"check violation", "23514", storage.ErrSchemaViolation},
		{"not null violation", "23502", storage.ErrSchemaViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			mock.ExpectQuery("INSERT INTO orders").WillReturnError(&pq.Error{Code: tt.code})

			_, err := store.InsertOrder(context.Background(), sampleOrder())
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNextOrderSequence(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("INSERT INTO order_counters (.+) ON CONFLICT \\(year\\) DO UPDATE (.+) RETURNING seq").
		WithArgs(2026).WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))

	seq, err := store.NextOrderSequence(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders(t *testing.T) {
	store, mock := newStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
			orderID, "ORD-2026-000007", []byte(`{}`), []byte(`{}`), []byte(`[]`), 300.0, "UAH",
			"pending", now, "Подзвоніть", now, now,
		))

	orders, total, err := store.ListOrders(context.Background(), storage.Page{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "Подзвоніть", orders[0].SpecialInstructions)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderByID_InvalidID(t *testing.T) {
	store, mock := newStore(t)

	_, err := store.OrderByID(context.Background(), "order_123")
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT (.+) FROM shops(.+) FROM products(.+) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(2, 5, 9, 1, 4))

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{TotalShops: 2, TotalProducts: 5, TotalOrders: 9, ActiveShops: 1, AvailableProducts: 4}, stats)

	assert.NoError(t, mock.ExpectationsWereMet())
}
