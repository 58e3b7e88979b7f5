// Package checkout собирает черновик заказа из содержимого корзины и
// значений формы.
package checkout

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/validation"
	"github.com/shopspring/decimal"
)

// UnnamedProduct название позиции, у которой в корзине нет имени
const UnnamedProduct = "Товар без назви"

// Ограничения длины текстовых полей черновика (в символах)
const (
	MaxNameLength         = 100
	MaxNotesLength        = 500
	MaxInstructionsLength = 1000
)

// Builder собирает OrderDraft. Now используется для даты доставки по
// умолчанию и для часового пояса даты из формы.
type Builder struct {
	Policy pricing.DeliveryPolicy
	Now    func() time.Time
}

func NewBuilder(policy pricing.DeliveryPolicy, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{Policy: policy, Now: now}
}

// Quote считает суммы корзины по политике доставки
func (b *Builder) Quote(snap cart.Snapshot) pricing.Totals {
	lines := make([]decimal.Decimal, 0, len(snap.Items))
	for _, item := range snap.Items {
		lines = append(lines, pricing.LineSubtotal(item.Price, item.Quantity))
	}
	return b.Policy.Compute(lines...)
}

// Build собирает черновик заказа и прогоняет его через validation.ValidateDraft.
// При ошибке проверки возвращается *validation.ValidationError.
func (b *Builder) Build(snap cart.Snapshot, form Form) (*models.OrderDraft, error) {
	totals := b.Quote(snap)

	items := make([]models.OrderItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ShopID:      item.ShopID,
			ProductName: productName(item),
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    pricing.Float(pricing.LineSubtotal(item.Price, item.Quantity)),
		})
	}

	district := strings.TrimSpace(form.District)
	notes := strings.TrimSpace(form.Notes)

	draft := &models.OrderDraft{
		Customer: models.Customer{
			Email: strings.TrimSpace(form.Email),
			Phone: strings.TrimSpace(form.Phone),
			Name:  truncate(strings.TrimSpace(form.Name), MaxNameLength),
		},
		DeliveryAddress: models.DeliveryAddress{
			Street:     strings.TrimSpace(form.Street),
			City:       strings.TrimSpace(form.City),
			District:   district,
			Apartment:  strings.TrimSpace(form.Apartment),
			PostalCode: PostalCodeFor(district),
			Notes:      truncate(notes, MaxNotesLength),
		},
		Items:               items,
		TotalAmount:         pricing.Float(totals.Total),
		Currency:            models.DefaultCurrency,
		DeliveryDate:        b.deliveryDate(form.DeliveryDate),
		SpecialInstructions: truncate(notes, MaxInstructionsLength),
	}

	if err := validation.ValidateDraft(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// deliveryDate разбирает дату из формы; дата ставится на полдень, чтобы
// при переводе в UTC не сместиться на соседний день. Пустое или
// нераспознанное значение - текущее время.
func (b *Builder) deliveryDate(value string) time.Time {
	now := b.Now()
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}
	date, err := time.ParseInLocation(validation.DateLayout, value, now.Location())
	if err != nil {
		return now
	}
	return date.Add(12 * time.Hour)
}

func productName(item models.CartItem) string {
	for _, name := range []string{item.ProductName, item.Name} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return UnnamedProduct
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
