package models

import "time"

// OrderStatus статус заказа. Переходы между статусами здесь не реализуются,
// новый заказ всегда создаётся в статусе pending.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

const DefaultCurrency = "UAH"

// Customer контактные данные покупателя
type Customer struct {
	Email string `json:"email" bson:"email" validate:"shop_email"`
	Phone string `json:"phone" bson:"phone" validate:"ua_phone"`
	Name  string `json:"name,omitempty" bson:"name,omitempty" validate:"max=100"`
}

// DeliveryAddress адрес доставки заказа
type DeliveryAddress struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	District   string `json:"district,omitempty" bson:"district,omitempty"`
	Apartment  string `json:"apartment,omitempty" bson:"apartment,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty" validate:"postal_code"`
	Notes      string `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=500"`
}

// OrderItem позиция заказа. ProductID и ShopID хранятся строкой:
// хранилище само решает, приводить ли их к своему типу ссылок.
type OrderItem struct {
	ProductID   string  `json:"product_id" bson:"product_id"`
	ShopID      string  `json:"shop_id" bson:"shop_id"`
	ProductName string  `json:"product_name" bson:"product_name" validate:"required"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"gte=1"`
	Subtotal    float64 `json:"subtotal" bson:"subtotal" validate:"gte=0"`
}

// OrderDraft заказ, собранный клиентом, но ещё не сохранённый
type OrderDraft struct {
	Customer            Customer        `json:"customer" bson:"customer"`
	DeliveryAddress     DeliveryAddress `json:"delivery_address" bson:"delivery_address"`
	Items               []OrderItem     `json:"items" bson:"items" validate:"min=1,dive"`
	TotalAmount         float64         `json:"total_amount" bson:"total_amount"`
	Currency            string          `json:"currency" bson:"currency" validate:"oneof=UAH USD EUR"`
	DeliveryDate        time.Time       `json:"delivery_date" bson:"delivery_date"`
	SpecialInstructions string          `json:"special_instructions,omitempty" bson:"special_instructions,omitempty" validate:"max=1000"`
}

// Order сохранённый заказ
type Order struct {
	ID          string `json:"_id" bson:"_id,omitempty"`
	OrderNumber string `json:"order_number" bson:"order_number"`
	OrderDraft  `bson:",inline"`
	Status      OrderStatus `json:"status" bson:"status"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}
