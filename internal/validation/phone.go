package validation

import "strings"

// NormalizePhone приводит введённый номер к виду +380XXXXXXXXX так же,
// как это делает поле телефона в форме заказа: оставляет только цифры,
// достраивает код страны и обрезает до 13 символов.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	value := b.String()

	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "380"):
		value = "+" + value
	case strings.HasPrefix(value, "80"):
		value = "+3" + value
	case strings.HasPrefix(value, "0"):
		value = "+38" + value
	default:
		value = "+380" + value
	}

	if len(value) > 13 {
		value = value[:13]
	}
	return value
}
