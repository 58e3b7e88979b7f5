package models

// Stats сводная статистика каталога и заказов
type Stats struct {
	TotalShops        int64 `json:"totalShops"`
	TotalProducts     int64 `json:"totalProducts"`
	TotalOrders       int64 `json:"totalOrders"`
	ActiveShops       int64 `json:"activeShops"`
	AvailableProducts int64 `json:"availableProducts"`
}
