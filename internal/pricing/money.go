package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// IsFinite - не NaN и не бесконечность
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FromFloat переводит float64 в decimal; NaN и бесконечности дают ноль
func FromFloat(f float64) decimal.Decimal {
	if !IsFinite(f) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Round округляет денежную сумму до копеек
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineSubtotal цена * количество, округлённая до копеек
func LineSubtotal(price float64, quantity int) decimal.Decimal {
	return Round(FromFloat(price).Mul(decimal.NewFromInt(int64(quantity))))
}

// Float переводит сумму обратно во float64 для JSON/BSON. Сумма вне
// диапазона float64 превращается в бесконечность.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Equal сравнивает суммы с точностью до копейки; нечисловые суммы не равны
// ничему
func Equal(a, b float64) bool {
	if !IsFinite(a) || !IsFinite(b) {
		return false
	}
	return Round(decimal.NewFromFloat(a)).Equal(Round(decimal.NewFromFloat(b)))
}
