package models

import "time"

// Product представляет товар магазина (букет, композиция и т.д.)
type Product struct {
	ID             string         `json:"_id" bson:"_id,omitempty"`
	ShopID         string         `json:"shop_id" bson:"shop_id"`
	Name           string         `json:"name" bson:"name"`
	Description    string         `json:"description" bson:"description"`
	Category       string         `json:"category" bson:"category"`
	Price          float64        `json:"price" bson:"price"`
	Currency       string         `json:"currency" bson:"currency"`
	StockQuantity  int            `json:"stock_quantity" bson:"stock_quantity"`
	Images         []string       `json:"images" bson:"images"`
	Specifications Specifications `json:"specifications" bson:"specifications"`
	IsAvailable    bool           `json:"is_available" bson:"is_available"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}

type Specifications struct {
	FlowerType string `json:"flower_type,omitempty" bson:"flower_type,omitempty"`
	Color      string `json:"color,omitempty" bson:"color,omitempty"`
	Quantity   int    `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Size       string `json:"size,omitempty" bson:"size,omitempty"`
}

// InStock - можно ли положить товар в корзину
func (p *Product) InStock() bool {
	return p.IsAvailable && p.StockQuantity > 0
}
