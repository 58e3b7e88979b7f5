package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/linemk/flower-delivery/internal/app"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/storage/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	router := app.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), demo.New(),
		app.RouterOptions{Policy: pricing.DefaultDeliveryPolicy()})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	t.Setenv("STOREFRONT_ENV", "prod")
	t.Setenv("STOREFRONT_API_URL", srv.URL)
	t.Setenv("STOREFRONT_CART_BACKEND", "sqlite")
	t.Setenv("STOREFRONT_CART_PATH", filepath.Join(t.TempDir(), "cart.db"))
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out))
	assert.Contains(t, out.String(), "usage: storefront")
}

func TestRun_Shops(t *testing.T) {
	setupEnv(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"shops", "-search", "рай"}, &out))
	assert.Contains(t, out.String(), "Квітковий Рай")
}

func TestRun_CartAddAndShow(t *testing.T) {
	setupEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"cart", "add", "66e5a2b3c4d5e6f7a8b9c0d2", "2"}, &out))
	assert.Contains(t, out.String(), "subtotal: 840.00  delivery: 50.00  total: 890.00")

	// корзина переживает перезапуск
	out.Reset()
	require.NoError(t, run(ctx, []string{"cart"}, &out))
	assert.Contains(t, out.String(), "items: 2")

	out.Reset()
	require.NoError(t, run(ctx, []string{"cart", "clear"}, &out))
	assert.Contains(t, out.String(), "cart is empty")
}

func TestRun_OrderInvalidForm(t *testing.T) {
	setupEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"cart", "add", "66e5a2b3c4d5e6f7a8b9c0d2"}, &out))

	out.Reset()
	err := run(ctx, []string{"order", "-email", "bad", "-phone", "123"}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "email:")
	assert.Contains(t, out.String(), "phone:")
}

func TestRun_UnknownCommand(t *testing.T) {
	setupEnv(t)
	err := run(context.Background(), []string{"nope"}, io.Discard)
	assert.Error(t, err)
}
