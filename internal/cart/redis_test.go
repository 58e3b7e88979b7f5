package cart_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, namespace string) (*cart.RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cart.NewRedisStorage(client, namespace), mr
}

func TestRedisStorage_Miss(t *testing.T) {
	storage, _ := setupTestRedis(t, "client-1")

	_, err := storage.Load(context.Background(), cart.Key)
	assert.ErrorIs(t, err, cart.ErrNotFound)
}

func TestRedisStorage_NamespacedKey(t *testing.T) {
	storage, mr := setupTestRedis(t, "client-1")
	ctx := context.Background()

	s, err := cart.Open(ctx, storage, discardLogger())
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, item("p1", "s1", 420, 1)))

	raw, err := mr.Get("client-1:" + cart.Key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"shopId":"s1"`)
	assert.False(t, mr.Exists(cart.Key))

	got, err := storage.Load(ctx, cart.Key)
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))
}

func TestRedisStorage_ServerDown(t *testing.T) {
	storage, mr := setupTestRedis(t, "")
	mr.Close()

	err := storage.Save(context.Background(), cart.Key, []byte("[]"))
	assert.Error(t, err)
}
