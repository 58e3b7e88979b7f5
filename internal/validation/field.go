// Package validation содержит правила проверки полей формы заказа и
// проверку черновика заказа перед отправкой и перед сохранением.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout формат даты доставки в форме
const DateLayout = "2006-01-02"

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^\+380[0-9]{9}$`)
	postalCodeRe = regexp.MustCompile(`^[0-9]{5}$`)
)

// Kind тип поля формы
type Kind int

const (
	KindRequired Kind = iota
	KindEmail
	KindPhone
	KindName
	KindStreet
	KindDeliveryDate
	KindPostalCode
)

func IsEmail(value string) bool {
	return emailRe.MatchString(value)
}

// IsPhone - ровно +380 и 9 цифр
func IsPhone(value string) bool {
	return phoneRe.MatchString(value)
}

func IsName(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= 2
}

func IsStreet(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= 5
}

func IsRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsPostalCode - пустая строка или ровно 5 цифр
func IsPostalCode(value string) bool {
	return value == "" || postalCodeRe.MatchString(value)
}

// IsDeliveryDate - дата в формате YYYY-MM-DD не раньше завтрашнего дня.
// Сравниваются календарные даты в часовом поясе now.
// "Хотя бы на день вперёд" читается как "завтра подходит", а не как now+24h:
// доставка на завтра проходит в любое время сегодняшнего дня.
func IsDeliveryDate(value string, now time.Time) bool {
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), now.Location())
	if err != nil {
		return false
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return !date.Before(tomorrow)
}

// Result результат проверки одного поля
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validator проверяет поля формы и локализует сообщения об ошибках
type Validator struct {
	printer *message.Printer
	now     func() time.Time
}

func New(lang language.Tag, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{
		printer: message.NewPrinter(lang),
		now:     now,
	}
}

// Check проверяет значение поля и возвращает локализованное сообщение при ошибке
func (v *Validator) Check(kind Kind, value string) Result {
	value = strings.TrimSpace(value)

	var ok bool
	var msg string
	switch kind {
	case KindEmail:
		ok, msg = IsEmail(value), MsgEmail
	case KindPhone:
		ok, msg = IsPhone(value), MsgPhone
	case KindName:
		ok, msg = IsName(value), MsgName
	case KindStreet:
		ok, msg = IsStreet(value), MsgStreet
	case KindDeliveryDate:
		ok, msg = IsDeliveryDate(value, v.now()), MsgDeliveryDate
	case KindPostalCode:
		ok, msg = IsPostalCode(value), MsgPostalCode
	default:
		ok, msg = IsRequired(value), MsgRequired
	}

	if ok {
		return Result{Valid: true}
	}
	return Result{Valid: false, Message: v.printer.Sprintf(msg)}
}

// Localize переводит причину ошибки проверки заказа на язык валидатора
func (v *Validator) Localize(err *ValidationError) string {
	if err == nil {
		return ""
	}
	return v.printer.Sprintf(err.Reason, err.Args...)
}

// Now текущее время по часам валидатора
func (v *Validator) Now() time.Time {
	return v.now()
}
