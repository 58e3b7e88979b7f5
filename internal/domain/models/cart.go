package models

// CartItem позиция клиентской корзины. JSON-имена совпадают с форматом,
// в котором корзина хранится на клиенте (ключ flowerCart).
type CartItem struct {
	ProductID   string  `json:"id"`
	ShopID      string  `json:"shopId"`
	ShopName    string  `json:"shopName"`
	ProductName string  `json:"productName"`
	Name        string  `json:"name,omitempty"` // старое поле с названием товара
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

// SameLine - относится ли позиция к той же паре товар/магазин
func (c CartItem) SameLine(productID, shopID string) bool {
	return c.ProductID == productID && c.ShopID == shopID
}
