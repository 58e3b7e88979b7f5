package checkout

import (
	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/linemk/flower-delivery/internal/validation"
)

// Form значения полей формы оформления заказа
type Form struct {
	Email        string
	Phone        string
	Name         string
	Street       string
	City         string
	District     string
	Apartment    string
	DeliveryDate string // YYYY-MM-DD
	Notes        string
}

// Имена полей формы
const (
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldName         = "name"
	FieldStreet       = "street"
	FieldCity         = "city"
	FieldDistrict     = "district"
	FieldDeliveryDate = "deliveryDate"
)

type formField struct {
	name  string
	kind  validation.Kind
	value func(f Form) string
}

// обязательные поля формы; квартира и примечания необязательны
var requiredFields = []formField{
	{FieldName, validation.KindName, func(f Form) string { return f.Name }},
	{FieldEmail, validation.KindEmail, func(f Form) string { return f.Email }},
	{FieldPhone, validation.KindPhone, func(f Form) string { return f.Phone }},
	{FieldStreet, validation.KindStreet, func(f Form) string { return f.Street }},
	{FieldCity, validation.KindRequired, func(f Form) string { return f.City }},
	{FieldDistrict, validation.KindRequired, func(f Form) string { return f.District }},
	{FieldDeliveryDate, validation.KindDeliveryDate, func(f Form) string { return f.DeliveryDate }},
}

// FormErrors сообщения об ошибках по имени поля
type FormErrors map[string]string

// ValidateForm проверяет все обязательные поля и возвращает ошибки
// только для непрошедших полей.
func ValidateForm(v *validation.Validator, form Form) FormErrors {
	errs := make(FormErrors)
	for _, f := range requiredFields {
		if res := v.Check(f.kind, f.value(form)); !res.Valid {
			errs[f.name] = res.Message
		}
	}
	return errs
}

// CanSubmit - заказ можно отправлять: все обязательные поля валидны и
// корзина не пустая
func CanSubmit(v *validation.Validator, form Form, snap cart.Snapshot) bool {
	return !snap.Empty() && len(ValidateForm(v, form)) == 0
}
