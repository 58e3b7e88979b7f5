package storage

import (
	"strings"

	"github.com/linemk/flower-delivery/internal/domain/models"
)

// ShopFilter фильтр списка магазинов. Пустые поля не фильтруют.
type ShopFilter struct {
	// Search - подстрока в названии, улице или районе без учёта регистра
	Search    string
	District  string
	MinRating *float64
	IsActive  *bool
}

// Match применяет фильтр к магазину в памяти
func (f ShopFilter) Match(shop models.Shop) bool {
	if f.Search != "" && !containsFold(f.Search, shop.Name, shop.Address.Street, shop.Address.District) {
		return false
	}
	if f.District != "" && shop.Address.District != f.District {
		return false
	}
	if f.MinRating != nil && shop.Rating < *f.MinRating {
		return false
	}
	if f.IsActive != nil && shop.IsActive != *f.IsActive {
		return false
	}
	return true
}

// ProductFilter фильтр списка товаров. Пустые поля не фильтруют.
type ProductFilter struct {
	ShopID   string
	Category string
	// Search - подстрока в названии или описании без учёта регистра
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}

func (f ProductFilter) Match(p models.Product) bool {
	if f.ShopID != "" && p.ShopID != f.ShopID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !containsFold(f.Search, p.Name, p.Description) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.IsAvailable != nil && p.IsAvailable != *f.IsAvailable {
		return false
	}
	return true
}

// Page параметры постраничного вывода заказов
type Page struct {
	Page  int
	Limit int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage ограничивает номер страницы, чтобы смещение не переполнялось
	MaxPage = 1_000_000
)

// Normalize подставляет значения по умолчанию: первая страница, 10 записей,
// не больше 100 записей на страницу, номер страницы не больше MaxPage.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
