package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/linemk/flower-delivery/internal/checkout"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/validation"
)

// PlaceholderImage картинка позиции корзины, если у товара нет фото
const PlaceholderImage = "https://via.placeholder.com/60x60"

// UnknownShop название магазина, если его не удалось получить
const UnknownShop = "Невідомий магазин"

var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrEmptyCart  = errors.New("cart is empty")
)

// FormError форма заполнена с ошибками; Fields - сообщения по полям
type FormError struct {
	Fields checkout.FormErrors
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid form fields: " + strings.Join(names, ", ")
}

// API методы сервера, нужные сессии
type API interface {
	Shop(ctx context.Context, id string) (*models.Shop, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	CreateOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error)
}

// Session сессия покупателя: одна корзина и оформление заказа из неё
type Session struct {
	log       *slog.Logger
	api       API
	cart      *cart.Store
	builder   *checkout.Builder
	validator *validation.Validator
}

func NewSession(log *slog.Logger, api API, cart *cart.Store, builder *checkout.Builder, validator *validation.Validator) *Session {
	return &Session{
		log:       log,
		api:       api,
		cart:      cart,
		builder:   builder,
		validator: validator,
	}
}

func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Quote суммы текущей корзины с доставкой
func (s *Session) Quote() pricing.Totals {
	return s.builder.Quote(s.cart.Snapshot())
}

// AddProduct кладёт товар из каталога в корзину. Товар без остатка не
// добавляется; количество ограничено остатком на складе.
func (s *Session) AddProduct(ctx context.Context, productID string, quantity int) error {
	const op = "storefront.Session.AddProduct"
	logger := s.log.With(slog.String("op", op), slog.String("product_id", productID))

	product, err := s.api.Product(ctx, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if product.StockQuantity <= 0 {
		logger.Info("product is out of stock")
		return ErrOutOfStock
	}

	if quantity <= 0 {
		quantity = 1
	}
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
	}

	shopName := UnknownShop
	if shop, err := s.api.Shop(ctx, product.ShopID); err == nil {
		shopName = shop.Name
	} else {
		logger.Warn("failed to load shop", slog.Any("error", err))
	}

	image := PlaceholderImage
	if len(product.Images) > 0 && product.Images[0] != "" {
		image = product.Images[0]
	}

	err = s.cart.Add(ctx, models.CartItem{
		ProductID:   product.ID,
		ShopID:      product.ShopID,
		ShopName:    shopName,
		ProductName: product.Name,
		Price:       product.Price,
		Image:       image,
		Quantity:    quantity,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("product added to cart", slog.Int("quantity", quantity))
	return nil
}

// Submit проверяет форму, собирает заказ, отправляет его и при успехе
// очищает корзину. При любой ошибке корзина остаётся как была.
func (s *Session) Submit(ctx context.Context, form checkout.Form) (*models.Order, error) {
	const op = "storefront.Session.Submit"
	logger := s.log.With(slog.String("op", op))

	snap := s.cart.Snapshot()
	if snap.Empty() {
		return nil, ErrEmptyCart
	}
	if errs := checkout.ValidateForm(s.validator, form); len(errs) > 0 {
		return nil, &FormError{Fields: errs}
	}

	draft, err := s.builder.Build(snap, form)
	if err != nil {
		logger.Info("order draft rejected", slog.Any("error", err))
		return nil, err
	}

	order, err := s.api.CreateOrder(ctx, draft)
	if err != nil {
		logger.Error("failed to submit order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// заказ уже принят, поэтому ошибка очистки корзины только логируется
	if err := s.cart.Clear(ctx); err != nil {
		logger.Error("failed to clear cart after order", slog.Any("error", err))
	}
	logger.Info("order submitted", slog.String("order_number", order.OrderNumber))
	return order, nil
}
