package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/service"
	"github.com/linemk/flower-delivery/internal/storage"
	"github.com/linemk/flower-delivery/internal/validation"
)

// MaxOrderBodySize ограничение размера тела POST /api/orders
const MaxOrderBodySize = 1 << 20

// CreateOrderHandler обрабатывает POST /api/orders.
// 201 - заказ сохранён, 400 - ошибка входных данных, 500 - ошибка хранилища.
func CreateOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxOrderBodySize))
		if err != nil {
			logger.Error("failed to read request body", slog.Any("error", err))
			respondError(w, r, logger, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		input, err := service.DecodeOrderInput(body)
		if err != nil {
			logger.Info("invalid request: decoding error", slog.Any("error", err))
			respondError(w, r, logger, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		order, err := orders.Create(r.Context(), input)
		if err != nil {
			var vErr *validation.ValidationError
			switch {
			case errors.As(err, &vErr):
				WriteJSON(w, logger, http.StatusBadRequest, Response{Message: vErr.Error(), Error: vErr.Field})
			case errors.Is(err, storage.ErrSchemaViolation):
				logger.Error("order rejected by database schema", slog.Any("error", err))
				respondError(w, r, logger, http.StatusInternalServerError,
					"Order data does not match database schema requirements", err)
			default:
				logger.Error("failed to create order", slog.Any("error", err))
				respondError(w, r, logger, http.StatusInternalServerError, "Error creating order", err)
			}
			return
		}

		respondData(w, logger, http.StatusCreated, order)
	}
}

// OrderHandler обрабатывает GET /api/orders/{id}
func OrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderHandler"
		logger := log.With(slog.String("op", op))

		order, err := orders.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondLookupError(w, r, logger, "Error fetching order", err)
			return
		}
		respondData(w, logger, http.StatusOK, order)
	}
}

// OrdersHandler обрабатывает GET /api/orders?page&limit
func OrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrdersHandler"
		logger := log.With(slog.String("op", op))

		page := storage.Page{Page: queryInt(r, "page"), Limit: queryInt(r, "limit")}.Normalize()

		list, total, err := orders.List(r.Context(), page)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respondError(w, r, logger, http.StatusInternalServerError, "Error fetching orders", err)
			return
		}

		if list == nil {
			list = []models.Order{}
		}
		count := len(list)
		WriteJSON(w, logger, http.StatusOK, Response{
			Success: true,
			Data:    list,
			Count:   &count,
			Total:   &total,
			Page:    page.Page,
			Limit:   page.Limit,
		})
	}
}
