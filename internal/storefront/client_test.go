package storefront_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/flower-delivery/internal/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Shops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shops", r.URL.Path)
		assert.Equal(t, "рай", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": [{"_id": "s1", "name": "Квітковий Рай"}], "count": 1}`))
	}))
	defer srv.Close()

	client := storefront.NewClient(srv.URL+"/", time.Second)
	shops, err := client.Shops(context.Background(), "рай")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Квітковий Рай", shops[0].Name)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "message": "Not found"}`))
	}))
	defer srv.Close()

	client := storefront.NewClient(srv.URL, time.Second)
	_, err := client.Product(context.Background(), "missing")

	var apiErr *storefront.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not found", apiErr.Message)
	assert.True(t, storefront.IsNotFound(err))
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := storefront.NewClient(srv.URL, time.Second)
	_, err := client.Shops(context.Background(), "")

	var apiErr *storefront.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := storefront.NewClient(url, time.Second)
	_, err := client.Shops(context.Background(), "")
	assert.ErrorIs(t, err, storefront.ErrUnavailable)
}
