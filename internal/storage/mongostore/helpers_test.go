package mongostore

import (
	"time"

	"github.com/linemk/flower-delivery/internal/domain/models"
)

func sampleOrder() *models.Order {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	return &models.Order{
		OrderNumber: "ORD-2026-000001",
		OrderDraft: models.OrderDraft{
			Customer: models.Customer{Email: "anna@flowers.ua", Phone: "+380501234567", Name: "Анна"},
			DeliveryAddress: models.DeliveryAddress{
				Street:     "вул. Хрещатик, 25",
				City:       "Київ",
				District:   "Шевченківський",
				PostalCode: "01001",
			},
			Items: []models.OrderItem{{
				ProductID:   "66e5a2b3c4d5e6f7a8b9c0d1",
				ShopID:      "66e5a1b2c3d4e5f6a7b8c9d0",
				ProductName: "Букет червоних троянд (15 шт)",
				Price:       850,
				Quantity:    1,
				Subtotal:    850,
			}},
			TotalAmount:  900,
			Currency:     models.DefaultCurrency,
			DeliveryDate: now.Add(48 * time.Hour),
		},
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
