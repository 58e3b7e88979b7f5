package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/storage"
	"github.com/linemk/flower-delivery/internal/validation"
)

// MaxNumberAttempts сколько раз пробуем вставить заказ при конфликте номера
const MaxNumberAttempts = 3

// Ограничения длины текстовых полей заказа
const (
	maxNameLength         = 100
	maxNotesLength        = 500
	maxInstructionsLength = 1000
)

type OrderService interface {
	// Create проверяет и сохраняет заказ. Ошибки входных данных -
	// *validation.ValidationError.
	Create(ctx context.Context, in *OrderInput) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, page storage.Page) ([]models.Order, int64, error)
}

type orderService struct {
	log    *slog.Logger
	orders storage.OrderStorage
	policy pricing.DeliveryPolicy
	now    func() time.Time
}

func NewOrderService(log *slog.Logger, orders storage.OrderStorage, policy pricing.DeliveryPolicy, now func() time.Time) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		log:    log,
		orders: orders,
		policy: policy,
		now:    now,
	}
}

// FormatOrderNumber возвращает номер вида ORD-2026-000042
func FormatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("ORD-%d-%06d", year, seq)
}

// Create проверяет наличие обязательных полей, приводит типы, повторно
// валидирует черновик, присваивает номер и сохраняет заказ.
func (s *orderService) Create(ctx context.Context, in *OrderInput) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(slog.String("op", op))

	if in == nil {
		return nil, validation.NewValidationError("", validation.ReasonInvalid)
	}
	if missing := in.missingFields(); len(missing) > 0 {
		logger.Info("order rejected: missing fields", slog.Any("fields", missing))
		return nil, validation.NewValidationError("", validation.ReasonMissingFields, strings.Join(missing, ", "))
	}

	now := s.now()
	draft := s.coerce(in, now)

	if err := validation.ValidateDraft(draft); err != nil {
		logger.Info("order rejected: invalid draft", slog.String("reason", err.Error()))
		return nil, err
	}
	if err := validation.ValidateTotals(draft, s.policy); err != nil {
		logger.Info("order rejected: totals mismatch",
			slog.Float64("total_amount", draft.TotalAmount))
		return nil, err
	}

	year := now.Year()
	for attempt := 1; ; attempt++ {
		seq, err := s.orders.NextOrderSequence(ctx, year)
		if err != nil {
			logger.Error("failed to allocate order number", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to allocate order number: %w", op, err)
		}

		order := &models.Order{
			OrderNumber: FormatOrderNumber(year, seq),
			OrderDraft:  *draft,
			Status:      models.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created, err := s.orders.InsertOrder(ctx, order)
		if err == nil {
			logger.Info("order created",
				slog.String("order_number", created.OrderNumber),
				slog.String("id", created.ID),
				slog.Int("items", len(created.Items)))
			return created, nil
		}
		if errors.Is(err, storage.ErrDuplicateOrderNumber) && attempt < MaxNumberAttempts {
			logger.Warn("order number already taken, retrying",
				slog.String("order_number", order.OrderNumber), slog.Int("attempt", attempt))
			continue
		}
		logger.Error("failed to insert order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to insert order: %w", op, err)
	}
}

func (s *orderService) Get(ctx context.Context, id string) (*models.Order, error) {
	const op = "service.OrderService.Get"

	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, page storage.Page) ([]models.Order, int64, error) {
	const op = "service.OrderService.List"

	orders, total, err := s.orders.ListOrders(ctx, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return orders, total, nil
}

// coerce приводит входные данные к OrderDraft: строки обрезаются и
// укорачиваются, числа разбираются со значениями по умолчанию.
func (s *orderService) coerce(in *OrderInput, now time.Time) *models.OrderDraft {
	draft := &models.OrderDraft{
		Customer: models.Customer{
			Email: in.Customer.Email.Trimmed(),
			Phone: in.Customer.Phone.Trimmed(),
			Name:  truncate(in.Customer.Name.Trimmed(), maxNameLength),
		},
		DeliveryAddress: models.DeliveryAddress{
			Street:     in.DeliveryAddress.Street.Trimmed(),
			City:       in.DeliveryAddress.City.Trimmed(),
			District:   in.DeliveryAddress.District.Trimmed(),
			Apartment:  in.DeliveryAddress.Apartment.Trimmed(),
			PostalCode: in.DeliveryAddress.PostalCode.Trimmed(),
			Notes:      truncate(in.DeliveryAddress.Notes.Trimmed(), maxNotesLength),
		},
		Items:               make([]models.OrderItem, 0, len(in.Items)),
		TotalAmount:         in.TotalAmount.Or(0),
		Currency:            in.Currency.Trimmed(),
		DeliveryDate:        parseDeliveryDate(in.DeliveryDate.Trimmed(), now),
		SpecialInstructions: truncate(in.SpecialInstructions.Trimmed(), maxInstructionsLength),
	}
	if draft.Currency == "" {
		draft.Currency = models.DefaultCurrency
	}

	for _, item := range in.Items {
		name := item.ProductName.Trimmed()
		if name == "" {
			name = item.Name.Trimmed()
		}
		price := item.Price.Or(0)
		quantity := itemQuantity(item.Quantity)
		subtotal := item.Subtotal.Or(0)
		if subtotal == 0 {
			subtotal = pricing.Float(pricing.LineSubtotal(price, quantity))
		}

		draft.Items = append(draft.Items, models.OrderItem{
			ProductID:   item.ProductID.Trimmed(),
			ShopID:      item.ShopID.Trimmed(),
			ProductName: name,
			Price:       price,
			Quantity:    quantity,
			Subtotal:    subtotal,
		})
	}
	return draft
}

// itemQuantity количество позиции: отсутствие и ноль - 1. Значение вне
// диапазона int32 приводится к -1 и не проходит проверку черновика.
func itemQuantity(n Number) int {
	q := n.Or(0)
	switch {
	case q == 0:
		return 1
	case q > math.MaxInt32 || q < math.MinInt32:
		return -1
	}
	return int(q)
}

// parseDeliveryDate принимает RFC3339 или YYYY-MM-DD; иначе - now
func parseDeliveryDate(value string, now time.Time) time.Time {
	if value == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(validation.DateLayout, value, now.Location()); err == nil {
		return t.Add(12 * time.Hour)
	}
	return now
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
