package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/linemk/flower-delivery/internal/pricing"
)

// Number числовое поле запроса. Принимает JSON-число или строку с числом.
// Set - поле присутствует и не null; Valid - значение удалось разобрать
// в конечное число (NaN и Infinity не считаются числами).
type Number struct {
	Value float64
	Set   bool
	Valid bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	n.Set = true

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		n.Value, n.Valid = v, err == nil && pricing.IsFinite(v)
		return nil
	case '{', '[', 't', 'f':
		return fmt.Errorf("expected number, got %s", data)
	}

	// синтаксис числа уже проверен декодером; выход за диапазон float64 -
	// неразобранное значение
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return err
	}
	n.Value, n.Valid = v, err == nil
	return nil
}

// Or возвращает значение или def, если поле отсутствует или не разобрано
func (n Number) Or(def float64) float64 {
	if !n.Set || !n.Valid {
		return def
	}
	return n.Value
}

// Truthy - поле задано и не равно нулю
func (n Number) Truthy() bool {
	return n.Set && (!n.Valid || n.Value != 0)
}

// Text строковое поле запроса. Принимает строку или число.
type Text struct {
	Value string
	Set   bool
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text{Value: s, Set: true}
		return nil
	case '{', '[', 't', 'f':
		return fmt.Errorf("expected string, got %s", data)
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*t = Text{Value: num.String(), Set: true}
	return nil
}

// Trimmed значение без пробелов по краям
func (t Text) Trimmed() string {
	return strings.TrimSpace(t.Value)
}

// OrderInput тело запроса POST /api/orders до приведения типов
type OrderInput struct {
	Customer            *CustomerInput `json:"customer"`
	DeliveryAddress     *AddressInput  `json:"delivery_address"`
	Items               []ItemInput    `json:"items"`
	TotalAmount         Number         `json:"total_amount"`
	Currency            Text           `json:"currency"`
	Status              Text           `json:"status"`
	DeliveryDate        Text           `json:"delivery_date"`
	SpecialInstructions Text           `json:"special_instructions"`
}

type CustomerInput struct {
	Email Text `json:"email"`
	Phone Text `json:"phone"`
	Name  Text `json:"name"`
}

type AddressInput struct {
	Street     Text `json:"street"`
	City       Text `json:"city"`
	District   Text `json:"district"`
	Apartment  Text `json:"apartment"`
	PostalCode Text `json:"postal_code"`
	Notes      Text `json:"notes"`
}

// ItemInput позиция заказа. name - старое имя поля product_name.
type ItemInput struct {
	ProductID   Text   `json:"product_id"`
	ShopID      Text   `json:"shop_id"`
	ProductName Text   `json:"product_name"`
	Name        Text   `json:"name"`
	Price       Number `json:"price"`
	Quantity    Number `json:"quantity"`
	Subtotal    Number `json:"subtotal"`
}

// DecodeOrderInput разбирает тело запроса. Объекты и массивы на месте
// скалярных полей и неверный JSON - ошибка.
func DecodeOrderInput(data []byte) (*OrderInput, error) {
	var in OrderInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// missingFields возвращает обязательные поля верхнего уровня, которых нет.
// Пустой список позиций и нулевая сумма считаются отсутствующими.
func (in *OrderInput) missingFields() []string {
	var missing []string
	if in.Customer == nil {
		missing = append(missing, "customer")
	}
	if in.DeliveryAddress == nil {
		missing = append(missing, "delivery_address")
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if !in.TotalAmount.Truthy() {
		missing = append(missing, "total_amount")
	}
	return missing
}
