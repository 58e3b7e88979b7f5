package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/flower-delivery/internal/service"
	"github.com/linemk/flower-delivery/internal/storage"
)

// ShopsHandler обрабатывает GET /api/shops?search&district&rating&isActive
func ShopsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ShopsHandler"
		logger := log.With(slog.String("op", op))

		filter := storage.ShopFilter{
			Search:    r.URL.Query().Get("search"),
			District:  r.URL.Query().Get("district"),
			MinRating: queryFloat(r, "rating"),
			IsActive:  queryBool(r, "isActive"),
		}

		shops, err := catalog.Shops(r.Context(), filter)
		if err != nil {
			logger.Error("failed to list shops", slog.Any("error", err))
			respondError(w, r, logger, http.StatusInternalServerError, "Error fetching shops", err)
			return
		}
		respondList(w, logger, shops)
	}
}

// ShopHandler обрабатывает GET /api/shops/{id}
func ShopHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ShopHandler"
		logger := log.With(slog.String("op", op))

		shop, err := catalog.Shop(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondLookupError(w, r, logger, "Error fetching shop", err)
			return
		}
		respondData(w, logger, http.StatusOK, shop)
	}
}

// ProductsHandler обрабатывает GET /api/products?shop_id&category&search&minPrice&maxPrice&isAvailable
func ProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductsHandler"
		logger := log.With(slog.String("op", op))

		filter := storage.ProductFilter{
			ShopID:      r.URL.Query().Get("shop_id"),
			Category:    r.URL.Query().Get("category"),
			Search:      r.URL.Query().Get("search"),
			MinPrice:    queryFloat(r, "minPrice"),
			MaxPrice:    queryFloat(r, "maxPrice"),
			IsAvailable: queryBool(r, "isAvailable"),
		}

		products, err := catalog.Products(r.Context(), filter)
		if errors.Is(err, storage.ErrInvalidID) {
			logger.Info("invalid shop id", slog.String("shop_id", filter.ShopID))
			respondError(w, r, logger, http.StatusBadRequest, "Invalid shop ID", nil)
			return
		}
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			respondError(w, r, logger, http.StatusInternalServerError, "Error fetching products", err)
			return
		}
		respondList(w, logger, products)
	}
}

// ProductHandler обрабатывает GET /api/products/{id}
func ProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductHandler"
		logger := log.With(slog.String("op", op))

		product, err := catalog.Product(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondLookupError(w, r, logger, "Error fetching product", err)
			return
		}
		respondData(w, logger, http.StatusOK, product)
	}
}

// RelatedProductsHandler обрабатывает GET /api/products/{id}/related?limit=4
func RelatedProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RelatedProductsHandler"
		logger := log.With(slog.String("op", op))

		related, err := catalog.Related(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit"))
		if err != nil {
			respondLookupError(w, r, logger, "Error fetching related products", err)
			return
		}
		respondList(w, logger, related)
	}
}

// SearchHandler обрабатывает GET /api/search?q=
func SearchHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SearchHandler"
		logger := log.With(slog.String("op", op))

		result, err := catalog.Search(r.Context(), r.URL.Query().Get("q"))
		if errors.Is(err, service.ErrEmptyQuery) {
			respondError(w, r, logger, http.StatusBadRequest, "Search query is required", nil)
			return
		}
		if err != nil {
			logger.Error("search failed", slog.Any("error", err))
			respondError(w, r, logger, http.StatusInternalServerError, "Error performing search", err)
			return
		}
		respondData(w, logger, http.StatusOK, result)
	}
}

// StatsHandler обрабатывает GET /api/stats
func StatsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.StatsHandler"
		logger := log.With(slog.String("op", op))

		stats, err := catalog.Stats(r.Context())
		if err != nil {
			logger.Error("failed to collect stats", slog.Any("error", err))
			respondError(w, r, logger, http.StatusInternalServerError, "Error fetching statistics", err)
			return
		}
		respondData(w, logger, http.StatusOK, stats)
	}
}

// respondLookupError отвечает на ошибку поиска по идентификатору:
// неверный формат и отсутствие записи - 404, остальное - 500.
func respondLookupError(w http.ResponseWriter, r *http.Request, log *slog.Logger, message string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		respondError(w, r, log, http.StatusNotFound, "Invalid ID format", nil)
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, r, log, http.StatusNotFound, "Not found", nil)
	default:
		log.Error(strings.ToLower(message), slog.Any("error", err))
		respondError(w, r, log, http.StatusInternalServerError, message, err)
	}
}
