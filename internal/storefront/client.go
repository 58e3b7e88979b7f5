// Package storefront клиентская часть магазина: HTTP-клиент API и сессия
// покупателя, которая связывает каталог, корзину и оформление заказа.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrUnavailable = errors.New("storefront API is unreachable")

// APIError ответ API со статусом не 2xx или success=false
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound - ресурс не найден
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client HTTP-клиент API магазина. Запросы не повторяются: ошибка
// сразу возвращается вызывающему.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Shops список магазинов; search пустой - все магазины
func (c *Client) Shops(ctx context.Context, search string) ([]models.Shop, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var shops []models.Shop
	if err := c.get(ctx, "storefront.Client.Shops", "/api/shops", q, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (c *Client) Shop(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	if err := c.get(ctx, "storefront.Client.Shop", "/api/shops/"+url.PathEscape(id), nil, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

// Products список товаров; shopID пустой - товары всех магазинов
func (c *Client) Products(ctx context.Context, shopID string) ([]models.Product, error) {
	q := url.Values{}
	if shopID != "" {
		q.Set("shop_id", shopID)
	}
	var products []models.Product
	if err := c.get(ctx, "storefront.Client.Products", "/api/products", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "storefront.Client.Product", "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder отправляет черновик заказа и возвращает сохранённый заказ
func (c *Client) CreateOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error) {
	const op = "storefront.Client.CreateOrder"

	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("%s: encode order: %w", op, err)
	}

	var order models.Order
	if err := c.do(ctx, op, http.MethodPost, "/api/orders", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, dst any) error {
	return c.do(ctx, op, http.MethodGet, path, q, nil, dst)
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body []byte, dst any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if dst == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%s: decode data: %w", op, err)
	}
	return nil
}
