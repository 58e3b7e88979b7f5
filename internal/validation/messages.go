package validation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Ключи сообщений - английский текст, украинский перевод регистрируется в каталоге.
const (
	MsgEmail        = "Enter a valid email"
	MsgPhone        = "Enter the number in +380XXXXXXXXX format"
	MsgName         = "At least 2 characters"
	MsgStreet       = "Enter the full address"
	MsgRequired     = "This field is required"
	MsgDeliveryDate = "Delivery date must be tomorrow or later"
	MsgPostalCode   = "Postal code must contain exactly 5 digits"

	ReasonEmail            = "invalid email format"
	ReasonPhone            = "phone must be in +380XXXXXXXXX format"
	ReasonNameTooLong      = "name must not exceed 100 characters"
	ReasonStreetMissing    = "delivery street is required"
	ReasonCityMissing      = "delivery city is required"
	ReasonPostalCode       = "postal code must contain exactly 5 digits"
	ReasonNotesTooLong     = "delivery notes must not exceed 500 characters"
	ReasonEmptyItems       = "cart must not be empty"
	ReasonItemName         = "product name is missing"
	ReasonItemPrice        = "invalid product price"
	ReasonItemQuantity     = "invalid product quantity"
	ReasonItemSubtotal     = "invalid product subtotal"
	ReasonSubtotalMismatch = "item subtotal does not match price and quantity"
	ReasonTotalMismatch    = "total amount does not match items and delivery fee"
	ReasonCurrency         = "unsupported currency"
	ReasonInstructions     = "special instructions must not exceed 1000 characters"
	ReasonMissingFields    = "Missing required fields: %s"
	ReasonInvalid          = "invalid order data"
)

var ukrainian = map[string]string{
	MsgEmail:        "Введіть правильний email",
	MsgPhone:        "Введіть номер у форматі +380XXXXXXXXX",
	MsgName:         "Мінімум 2 символи",
	MsgStreet:       "Введіть повну адресу",
	MsgRequired:     "Поле обов'язкове для заповнення",
	MsgDeliveryDate: "Дата доставки має бути не раніше завтра",
	MsgPostalCode:   "Поштовий код має містити рівно 5 цифр",

	ReasonEmail:            "Неправильний формат email",
	ReasonPhone:            "Номер телефону має бути у форматі +380XXXXXXXXX",
	ReasonNameTooLong:      "Ім'я не може бути довшим за 100 символів",
	ReasonStreetMissing:    "Вкажіть вулицю доставки",
	ReasonCityMissing:      "Вкажіть місто доставки",
	ReasonPostalCode:       "Поштовий код має містити рівно 5 цифр",
	ReasonNotesTooLong:     "Примітки не можуть бути довшими за 500 символів",
	ReasonEmptyItems:       "Корзина не може бути порожньою",
	ReasonItemName:         "Назва товару відсутня",
	ReasonItemPrice:        "Неправильна ціна товару",
	ReasonItemQuantity:     "Неправильна кількість товару",
	ReasonItemSubtotal:     "Неправильна сума товару",
	ReasonSubtotalMismatch: "Сума товару не відповідає ціні та кількості",
	ReasonTotalMismatch:    "Загальна сума не відповідає товарам і доставці",
	ReasonCurrency:         "Непідтримувана валюта",
	ReasonInstructions:     "Побажання не можуть бути довшими за 1000 символів",
	ReasonMissingFields:    "Відсутні обов'язкові поля: %s",
	ReasonInvalid:          "Неправильні дані замовлення",
}

func init() {
	for key, msg := range ukrainian {
		if err := message.SetString(language.Ukrainian, key, msg); err != nil {
			panic("validation: register message " + key + ": " + err.Error())
		}
	}
}

// DefaultLanguage язык сообщений по умолчанию
var DefaultLanguage = language.Ukrainian

// ParseLanguage разбирает код языка ("uk", "en"), при ошибке - украинский
func ParseLanguage(code string) language.Tag {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	return tag
}
