package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/shopspring/decimal"
)

// ValidationError ошибка входных данных заказа. Reason - ключ сообщения
// (английский текст), который можно перевести через Validator.Localize.
type ValidationError struct {
	Field  string
	Reason string
	Args   []any
}

func (e *ValidationError) Error() string {
	if len(e.Args) == 0 {
		return e.Reason
	}
	return fmt.Sprintf(e.Reason, e.Args...)
}

// NewValidationError создаёт ошибку проверки для поля
func NewValidationError(field, reason string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Args: args}
}

// IsValidationError - является ли ошибка (или одна из обёрнутых) ошибкой проверки
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

var validate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()

	// в путях ошибок используем json-имена полей: customer.email, items[0].price
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "shop_email", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	mustRegister(v, "ua_phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	mustRegister(v, "postal_code", func(fl validator.FieldLevel) bool {
		return IsPostalCode(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// причины ошибок по имени поля (json) для первой упавшей проверки
var reasons = map[string]string{
	"email":                ReasonEmail,
	"phone":                ReasonPhone,
	"name":                 ReasonNameTooLong,
	"street":               ReasonStreetMissing,
	"city":                 ReasonCityMissing,
	"postal_code":          ReasonPostalCode,
	"notes":                ReasonNotesTooLong,
	"items":                ReasonEmptyItems,
	"product_name":         ReasonItemName,
	"price":                ReasonItemPrice,
	"quantity":             ReasonItemQuantity,
	"subtotal":             ReasonItemSubtotal,
	"currency":             ReasonCurrency,
	"special_instructions": ReasonInstructions,
}

// ValidateDraft проверяет черновик заказа перед отправкой/сохранением.
// Возвращает *ValidationError для первой найденной проблемы.
func ValidateDraft(draft *models.OrderDraft) error {
	if draft == nil {
		return NewValidationError("", ReasonInvalid)
	}

	if err := validate.Struct(draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return NewValidationError("", ReasonInvalid)
		}
		return fromFieldError(fieldErrs[0])
	}

	for i, item := range draft.Items {
		if !pricing.IsFinite(item.Price) {
			return NewValidationError(fmt.Sprintf("items[%d].price", i), ReasonItemPrice)
		}
		if !pricing.IsFinite(item.Subtotal) {
			return NewValidationError(fmt.Sprintf("items[%d].subtotal", i), ReasonItemSubtotal)
		}
		expected := pricing.Float(pricing.LineSubtotal(item.Price, item.Quantity))
		if !pricing.Equal(item.Subtotal, expected) {
			return NewValidationError(fmt.Sprintf("items[%d].subtotal", i), ReasonSubtotalMismatch)
		}
	}
	return nil
}

// ValidateTotals проверяет инвариант total_amount = сумма позиций + доставка
func ValidateTotals(draft *models.OrderDraft, policy pricing.DeliveryPolicy) error {
	if draft == nil {
		return NewValidationError("", ReasonInvalid)
	}
	if !pricing.IsFinite(draft.TotalAmount) {
		return NewValidationError("total_amount", ReasonTotalMismatch)
	}
	totals := policy.Compute(lineSubtotals(draft.Items)...)
	if !pricing.Equal(draft.TotalAmount, pricing.Float(totals.Total)) {
		return NewValidationError("total_amount", ReasonTotalMismatch)
	}
	return nil
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	field := fe.Namespace()
	// убираем имя корневой структуры: OrderDraft.customer.email -> customer.email
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	reason, ok := reasons[fe.Field()]
	if !ok {
		reason = ReasonInvalid
	}
	return NewValidationError(field, reason)
}

func lineSubtotals(items []models.OrderItem) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		out = append(out, pricing.Round(pricing.FromFloat(item.Subtotal)))
	}
	return out
}
