package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage хранилище в памяти, умеет имитировать ошибку записи
type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	failErr error
	saves   int
}

var _ cart.Storage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return v, nil
}

func (m *memStorage) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStorage) persisted(t *testing.T) []models.CartItem {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(m.data[cart.Key], &items))
	return items
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openStore(t *testing.T, storage cart.Storage) *cart.Store {
	t.Helper()
	s, err := cart.Open(context.Background(), storage, discardLogger())
	require.NoError(t, err)
	return s
}

func item(productID, shopID string, price float64, qty int) models.CartItem {
	return models.CartItem{
		ProductID:   productID,
		ShopID:      shopID,
		ShopName:    "Квітковий Рай",
		ProductName: "Букет " + productID,
		Price:       price,
		Image:       "https://via.placeholder.com/60x60",
		Quantity:    qty,
	}
}

func TestOpen_MissingKeyIsEmpty(t *testing.T) {
	s := openStore(t, newMemStorage())
	snap := s.Snapshot()
	assert.True(t, snap.Empty())
	assert.Equal(t, 0, snap.Count)
	assert.True(t, snap.Subtotal.IsZero())
}

func TestOpen_CorruptPayload(t *testing.T) {
	storage := newMemStorage()
	storage.data[cart.Key] = []byte("{not json")

	_, err := cart.Open(context.Background(), storage, discardLogger())
	assert.Error(t, err)
}

func TestOpen_LegacyNameField(t *testing.T) {
	storage := newMemStorage()
	storage.data[cart.Key] = []byte(`[{"id":"p1","shopId":"s1","name":"Тюльпани","price":420,"quantity":2}]`)

	s := openStore(t, storage)
	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Тюльпани", snap.Items[0].ProductName)
	assert.Empty(t, snap.Items[0].Name)
}

func TestOpen_MergesDuplicateLines(t *testing.T) {
	storage := newMemStorage()
	storage.data[cart.Key] = []byte(`[
		{"id":"p1","shopId":"s1","productName":"Троянди","price":100,"quantity":2},
		{"id":"p2","shopId":"s1","productName":"Тюльпани","price":50,"quantity":1},
		{"id":"p1","shopId":"s1","productName":"Троянди","price":100,"quantity":3},
		{"id":"p1","shopId":"s2","productName":"Троянди","price":90,"quantity":1}
	]`)

	s := openStore(t, storage)
	snap := s.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, "p1", snap.Items[0].ProductID)
	assert.Equal(t, 5, snap.Items[0].Quantity)
	assert.Equal(t, "s2", snap.Items[2].ShopID)
	assert.Equal(t, 7, snap.Count)

	require.NoError(t, s.SetQuantity(context.Background(), "p1", "s1", 1))
	assert.Len(t, storage.persisted(t), 3)
}

func TestAdd_IncrementsExistingLine(t *testing.T) {
	storage := newMemStorage()
	s := openStore(t, storage)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 0)))
	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 2)))
	// тот же товар из другого магазина - отдельная позиция
	require.NoError(t, s.Add(ctx, item("p1", "s2", 100, 1)))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, "s2", snap.Items[1].ShopID)
	assert.Equal(t, 4, snap.Count)

	assert.Equal(t, snap.Items, storage.persisted(t))
	assert.Equal(t, 3, storage.saves)
}

func TestAdd_NoOps(t *testing.T) {
	storage := newMemStorage()
	s := openStore(t, storage)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", -1, 1)), "отрицательная цена")
	require.NoError(t, s.Add(ctx, item("p1", "s1", 10, -2)), "новая позиция с отрицательным количеством")
	assert.True(t, s.Snapshot().Empty())

	require.NoError(t, s.Add(ctx, item("p1", "s1", 10, 2)))
	require.NoError(t, s.Add(ctx, item("p1", "s1", 10, -2)), "количество стало бы 0")
	assert.Equal(t, 2, s.Snapshot().Count)
	assert.Equal(t, 1, storage.saves)
}

func TestSetQuantityAndRemove(t *testing.T) {
	s := openStore(t, newMemStorage())
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 1)))
	require.NoError(t, s.Add(ctx, item("p2", "s1", 50, 1)))
	require.NoError(t, s.Add(ctx, item("p3", "s1", 10, 1)))

	require.NoError(t, s.SetQuantity(ctx, "p1", "s1", 5))
	assert.Equal(t, 7, s.Snapshot().Count)

	require.NoError(t, s.SetQuantity(ctx, "p2", "s1", 0))
	require.NoError(t, s.Remove(ctx, "missing", "s1"))
	require.NoError(t, s.SetQuantity(ctx, "missing", "s1", 3))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "p1", snap.Items[0].ProductID)
	assert.Equal(t, "p3", snap.Items[1].ProductID)

	require.NoError(t, s.Remove(ctx, "p1", "s1"))
	assert.Equal(t, 1, s.Snapshot().Count)
}

func TestClear_PersistsEmptyList(t *testing.T) {
	storage := newMemStorage()
	s := openStore(t, storage)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 1)))
	require.NoError(t, s.Clear(ctx))

	assert.True(t, s.Snapshot().Empty())
	assert.Equal(t, "[]", string(storage.data[cart.Key]))

	reopened := openStore(t, storage)
	assert.True(t, reopened.Snapshot().Empty())
}

func TestSaveFailure_LeavesStateUnchanged(t *testing.T) {
	storage := newMemStorage()
	s := openStore(t, storage)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 1)))

	storage.failErr = errors.New("disk full")
	assert.Error(t, s.Add(ctx, item("p1", "s1", 100, 1)))
	assert.Error(t, s.SetQuantity(ctx, "p1", "s1", 9))
	assert.Error(t, s.Remove(ctx, "p1", "s1"))
	assert.Error(t, s.Clear(ctx))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
}

func TestSnapshot_SubtotalAndCopy(t *testing.T) {
	s := openStore(t, newMemStorage())
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, item("p1", "s1", 100, 2)))
	require.NoError(t, s.Add(ctx, item("p2", "s1", 50, 1)))
	require.NoError(t, s.Add(ctx, item("p3", "s2", 0.1, 3)))

	snap := s.Snapshot()
	assert.True(t, decimal.RequireFromString("250.30").Equal(snap.Subtotal), "got %s", snap.Subtotal)

	// изменение копии не влияет на корзину
	snap.Items[0].Quantity = 100
	assert.Equal(t, 2, s.Snapshot().Items[0].Quantity)
}

func TestStore_RandomOperationsKeepInvariants(t *testing.T) {
	s := openStore(t, newMemStorage())
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))

	products := []string{"p1", "p2", "p3"}
	shops := []string{"s1", "s2"}

	for i := 0; i < 500; i++ {
		p := products[rnd.Intn(len(products))]
		sh := shops[rnd.Intn(len(shops))]
		switch rnd.Intn(3) {
		case 0:
			require.NoError(t, s.Add(ctx, item(p, sh, 10, rnd.Intn(5)-1)))
		case 1:
			require.NoError(t, s.SetQuantity(ctx, p, sh, rnd.Intn(5)-1))
		case 2:
			require.NoError(t, s.Remove(ctx, p, sh))
		}

		snap := s.Snapshot()
		seen := make(map[[2]string]bool)
		sum := 0
		for _, it := range snap.Items {
			key := [2]string{it.ProductID, it.ShopID}
			require.False(t, seen[key], "duplicate line %v", key)
			seen[key] = true
			require.Positive(t, it.Quantity)
			sum += it.Quantity
		}
		require.Equal(t, sum, snap.Count)
	}
}
