package models

import "time"

// Shop представляет цветочный магазин из каталога
type Shop struct {
	ID           string            `json:"_id" bson:"_id,omitempty"`
	Name         string            `json:"name" bson:"name"`
	Address      ShopAddress       `json:"address" bson:"address"`
	Phone        string            `json:"phone" bson:"phone"`
	Email        string            `json:"email" bson:"email"`
	Rating       float64           `json:"rating" bson:"rating"`
	WorkingHours map[string]string `json:"working_hours,omitempty" bson:"working_hours,omitempty"` // день недели -> "09:00-20:00"
	ImageURL     string            `json:"image_url,omitempty" bson:"image_url,omitempty"`
	IsActive     bool              `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
}

// ShopAddress адрес магазина
type ShopAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	District   string `json:"district" bson:"district"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
}
