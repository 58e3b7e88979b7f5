package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
)

// DefaultRelatedLimit сколько похожих товаров отдавать по умолчанию
const DefaultRelatedLimit = 4

var ErrEmptyQuery = errors.New("search query is required")

// SearchResult результат общего поиска по магазинам и товарам
type SearchResult struct {
	Shops    []models.Shop    `json:"shops"`
	Products []models.Product `json:"products"`
}

type CatalogService interface {
	Shops(ctx context.Context, filter storage.ShopFilter) ([]models.Shop, error)
	Shop(ctx context.Context, id string) (*models.Shop, error)
	Products(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	// Related возвращает товары того же магазина или той же категории, кроме самого товара.
	Related(ctx context.Context, id string, limit int) ([]models.Product, error)
	Search(ctx context.Context, query string) (*SearchResult, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// CatalogStorage - часть хранилища, нужная каталогу
type CatalogStorage interface {
	storage.ShopStorage
	storage.ProductStorage
	Stats(ctx context.Context) (models.Stats, error)
}

type catalogService struct {
	log   *slog.Logger
	store CatalogStorage
}

func NewCatalogService(log *slog.Logger, store CatalogStorage) CatalogService {
	return &catalogService{log: log, store: store}
}

func (s *catalogService) Shops(ctx context.Context, filter storage.ShopFilter) ([]models.Shop, error) {
	const op = "service.CatalogService.Shops"

	shops, err := s.store.ListShops(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shops, nil
}

func (s *catalogService) Shop(ctx context.Context, id string) (*models.Shop, error) {
	const op = "service.CatalogService.Shop"

	shop, err := s.store.ShopByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shop, nil
}

func (s *catalogService) Products(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	const op = "service.CatalogService.Products"

	products, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	const op = "service.CatalogService.Product"

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *catalogService) Related(ctx context.Context, id string, limit int) ([]models.Product, error) {
	const op = "service.CatalogService.Related"

	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.store.ListProducts(ctx, storage.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: list products: %w", op, err)
	}

	related := make([]models.Product, 0, limit)
	for _, p := range all {
		if len(related) == limit {
			break
		}
		if p.ID == product.ID {
			continue
		}
		if p.ShopID == product.ShopID || p.Category == product.Category {
			related = append(related, p)
		}
	}
	return related, nil
}

// Search ищет подстроку без учёта регистра: магазины по названию и улице,
// товары по названию и описанию.
func (s *catalogService) Search(ctx context.Context, query string) (*SearchResult, error) {
	const op = "service.CatalogService.Search"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	shops, err := s.store.ListShops(ctx, storage.ShopFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: list shops: %w", op, err)
	}
	products, err := s.store.ListProducts(ctx, storage.ProductFilter{Search: query})
	if err != nil {
		return nil, fmt.Errorf("%s: list products: %w", op, err)
	}

	needle := strings.ToLower(query)
	result := &SearchResult{Shops: make([]models.Shop, 0), Products: products}
	for _, shop := range shops {
		if strings.Contains(strings.ToLower(shop.Name), needle) ||
			strings.Contains(strings.ToLower(shop.Address.Street), needle) {
			result.Shops = append(result.Shops, shop)
		}
	}

	s.log.Debug("search finished",
		slog.String("op", op),
		slog.String("query", query),
		slog.Int("shops", len(result.Shops)),
		slog.Int("products", len(result.Products)))
	return result, nil
}

func (s *catalogService) Stats(ctx context.Context) (models.Stats, error) {
	const op = "service.CatalogService.Stats"

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
