// Package pricing содержит правила расчёта стоимости заказа, общие для
// клиента и сервера.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Единое правило доставки: бесплатно от 1000 грн, иначе фиксированные 50 грн.
// Клиентская корзина и сервер считают итог по одной и той же политике.
const (
	DefaultFreeThreshold = 1000
	DefaultFee           = 50
)

// DeliveryPolicy правило расчёта стоимости доставки
type DeliveryPolicy struct {
	FreeThreshold decimal.Decimal
	Fee           decimal.Decimal
}

// DefaultDeliveryPolicy возвращает каноническую политику доставки
func DefaultDeliveryPolicy() DeliveryPolicy {
	return NewDeliveryPolicy(DefaultFreeThreshold, DefaultFee)
}

func NewDeliveryPolicy(freeThreshold, fee float64) DeliveryPolicy {
	return DeliveryPolicy{
		FreeThreshold: decimal.NewFromFloat(freeThreshold),
		Fee:           decimal.NewFromFloat(fee),
	}
}

// FeeFor возвращает стоимость доставки для суммы товаров
func (p DeliveryPolicy) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.Fee
}

// Totals итоговые суммы заказа
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Compute считает итог по уже округлённым суммам позиций
func (p DeliveryPolicy) Compute(lineSubtotals ...decimal.Decimal) Totals {
	subtotal := Round(decimal.Sum(decimal.Zero, lineSubtotals...))
	fee := p.FeeFor(subtotal)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       Round(subtotal.Add(fee)),
	}
}
