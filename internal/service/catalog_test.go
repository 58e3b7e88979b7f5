package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/service"
	"github.com/linemk/flower-delivery/internal/storage"
	"github.com/linemk/flower-delivery/internal/storage/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *demo.Store {
	shops := []models.Shop{
		{ID: "s1", Name: "Троянди і ", Address: models.ShopAddress{Street: "вул. Хрещатик, 25"}, IsActive: true},
		{ID: "s2", Name: "Квітковий Рай", Address: models.ShopAddress{Street: "вул. Велика Васильківська, 112"}, IsActive: true},
	}
	products := []models.Product{
		{ID: "p1", ShopID: "s1", Name: "Букет троянд", Category: "bouquet", IsAvailable: true},
		{ID: "p2", ShopID: "s1", Name: "Кошик орхідей", Category: "basket", IsAvailable: true},
		{ID: "p3", ShopID: "s2", Name: "Тюльпани", Category: "bouquet", IsAvailable: true},
		{ID: "p4", ShopID: "s2", Name: "Горщик фікуса", Category: "plant", IsAvailable: false},
		{ID: "p5", ShopID: "s2", Name: "Півонії", Category: "bouquet", IsAvailable: true},
	}
	return demo.NewWithCatalog(shops, products)
}

func TestRelated(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	related, err := svc.Related(context.Background(), "p1", 0)
	require.NoError(t, err)

	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	// тот же магазин или та же категория, без самого товара
	assert.Equal(t, []string{"p2", "p3", "p5"}, ids)

	limited, err := svc.Related(context.Background(), "p1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRelated_UnknownProduct(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	_, err := svc.Related(context.Background(), "missing", 4)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearch(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	res, err := svc.Search(context.Background(), "  ТРОЯНД ")
	require.NoError(t, err)
	require.Len(t, res.Shops, 1)
	assert.Equal(t, "s1", res.Shops[0].ID)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "p1", res.Products[0].ID)

	byStreet, err := svc.Search(context.Background(), "хрещатик")
	require.NoError(t, err)
	assert.Len(t, byStreet.Shops, 1)
	assert.Empty(t, byStreet.Products)
	assert.NotNil(t, byStreet.Products)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	_, err := svc.Search(context.Background(), "   ")
	assert.True(t, errors.Is(err, service.ErrEmptyQuery))
}

func TestStats(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		TotalShops:        2,
		TotalProducts:     5,
		ActiveShops:       2,
		AvailableProducts: 4,
	}, stats)
}

func TestProducts_Filter(t *testing.T) {
	svc := service.NewCatalogService(discardLogger(), testCatalog())

	products, err := svc.Products(context.Background(), storage.ProductFilter{ShopID: "s2", Category: "bouquet"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = svc.Shop(context.Background(), "s3")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
