package checkout

// Districts районы Киева для выбора в форме, в порядке отображения
var Districts = []string{
	"Шевченківський",
	"Печерський",
	"Подільський",
	"Оболонський",
	"Соломянський",
	"Святошинський",
	"Голосіївський",
	"Дарницький",
	"Деснянський",
	"Дніпровський",
}

var postalCodes = map[string]string{
	"Шевченківський": "01001",
	"Печерський":     "01010",
	"Подільський":    "04070",
	"Оболонський":    "04210",
	"Соломянський":   "03110",
	"Святошинський":  "02000",
	"Голосіївський":  "03039",
	"Дарницький":     "02094",
	"Деснянський":    "02000",
	"Дніпровський":   "02094",
}

// PostalCodeFor возвращает индекс района или "" для неизвестного района
func PostalCodeFor(district string) string {
	return postalCodes[district]
}

// IsKnownDistrict - есть ли район в списке
func IsKnownDistrict(district string) bool {
	_, ok := postalCodes[district]
	return ok
}
