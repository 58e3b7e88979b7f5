package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
)

const shopColumns = `id, name, address, phone, email, rating, working_hours, image_url, is_active, created_at`

const productColumns = `id, shop_id, name, description, category, price, currency, stock_quantity,
	images, specifications, is_available, created_at, updated_at`

// where собирает условие WHERE с позиционными параметрами $1, $2, ...
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (s *Store) ListShops(ctx context.Context, filter storage.ShopFilter) ([]models.Shop, error) {
	const op = "storage.postgres.ListShops"

	var w where
	if filter.Search != "" {
		w.add("(name ILIKE ? OR address->>'street' ILIKE ? OR address->>'district' ILIKE ?)",
			likePattern(filter.Search), likePattern(filter.Search), likePattern(filter.Search))
	}
	if filter.District != "" {
		w.add("address->>'district' = ?", filter.District)
	}
	if filter.MinRating != nil {
		w.add("rating >= ?", *filter.MinRating)
	}
	if filter.IsActive != nil {
		w.add("is_active = ?", *filter.IsActive)
	}

	query := "SELECT " + shopColumns + " FROM shops" + w.String() + " ORDER BY created_at, id"
	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	shops := make([]models.Shop, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		shops = append(shops, *shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shops, nil
}

func (s *Store) ShopByID(ctx context.Context, id string) (*models.Shop, error) {
	const op = "storage.postgres.ShopByID"

	uid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+shopColumns+" FROM shops WHERE id = $1", uid)
	shop, err := scanShop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shop, nil
}

// ListProducts возвращает storage.ErrInvalidID, если ShopID задан не в формате UUID
func (s *Store) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	const op = "storage.postgres.ListProducts"

	var w where
	if filter.ShopID != "" {
		shopID, err := parseID(filter.ShopID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		w.add("shop_id = ?", shopID)
	}
	if filter.Category != "" {
		w.add("category = ?", filter.Category)
	}
	if filter.Search != "" {
		w.add("(name ILIKE ? OR description ILIKE ?)", likePattern(filter.Search), likePattern(filter.Search))
	}
	if filter.MinPrice != nil {
		w.add("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		w.add("price <= ?", *filter.MaxPrice)
	}
	if filter.IsAvailable != nil {
		w.add("is_available = ?", *filter.IsAvailable)
	}

	query := "SELECT " + productColumns + " FROM products" + w.String() + " ORDER BY created_at, id"
	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *Store) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "storage.postgres.ProductByID"

	uid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", uid)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShop(row scanner) (*models.Shop, error) {
	var (
		shop         models.Shop
		address      []byte
		workingHours []byte
		imageURL     sql.NullString
	)
	err := row.Scan(&shop.ID, &shop.Name, &address, &shop.Phone, &shop.Email, &shop.Rating,
		&workingHours, &imageURL, &shop.IsActive, &shop.CreatedAt)
	if err != nil {
		return nil, err
	}
	shop.ImageURL = imageURL.String
	if err := unmarshalJSONB(address, &shop.Address); err != nil {
		return nil, fmt.Errorf("decode shop address: %w", err)
	}
	if err := unmarshalJSONB(workingHours, &shop.WorkingHours); err != nil {
		return nil, fmt.Errorf("decode working hours: %w", err)
	}
	return &shop, nil
}

func scanProduct(row scanner) (*models.Product, error) {
	var (
		p      models.Product
		images []byte
		specs  []byte
	)
	err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Currency,
		&p.StockQuantity, &images, &specs, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(images, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if err := unmarshalJSONB(specs, &p.Specifications); err != nil {
		return nil, fmt.Errorf("decode specifications: %w", err)
	}
	return &p, nil
}

func unmarshalJSONB(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
