package demo

import (
	"time"

	"github.com/linemk/flower-delivery/internal/domain/models"
)

func workingHours() map[string]string {
	return map[string]string{
		"monday":    "09:00-20:00",
		"tuesday":   "09:00-20:00",
		"wednesday": "09:00-20:00",
		"thursday":  "09:00-20:00",
		"friday":    "09:00-20:00",
		"saturday":  "10:00-18:00",
		"sunday":    "10:00-18:00",
	}
}

// Shops фиксированный набор магазинов демо-режима
func Shops(now time.Time) []models.Shop {
	return []models.Shop{
		{
			ID:   "66e5a1b2c3d4e5f6a7b8c9d0",
			Name: "Троянди і ",
			Address: models.ShopAddress{
				Street:     "вул. Хрещатик, 25",
				City:       "Київ",
				District:   "Шевченківський",
				PostalCode: "01001",
			},
			Phone:        "+380441234567",
			Email:        "info@roses-dreams.ua",
			Rating:       4.8,
			WorkingHours: workingHours(),
			IsActive:     true,
			CreatedAt:    now,
		},
		{
			ID:   "66e5a1b2c3d4e5f6a7b8c9d1",
			Name: "Квітковий Рай",
			Address: models.ShopAddress{
				Street:     "вул. Велика Васильківська, 112",
				City:       "Київ",
				District:   "Голосіївський",
				PostalCode: "03150",
			},
			Phone:        "+380442345678",
			Email:        "paradise@flowers.ua",
			Rating:       4.6,
			WorkingHours: workingHours(),
			IsActive:     true,
			CreatedAt:    now,
		},
	}
}

// Products фиксированный набор товаров демо-режима
func Products(now time.Time) []models.Product {
	return []models.Product{
		{
			ID:            "66e5a2b3c4d5e6f7a8b9c0d1",
			ShopID:        "66e5a1b2c3d4e5f6a7b8c9d0",
			Name:          "Букет червоних троянд (15 шт)",
			Description:   "Елегантний букет з 15 свіжих червоних троянд у розкішній упаковці з атласною стрічкою. Ідеально для романтичних моментів.",
			Category:      "bouquet",
			Price:         850.00,
			Currency:      models.DefaultCurrency,
			StockQuantity: 25,
			Images: []string{
				"https://images.unsplash.com/photo-1518895312237-a20e5ff153cb?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
				"https://images.unsplash.com/photo-1563241527-3004b7be0ffd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
			},
			Specifications: models.Specifications{
				FlowerType: "Троянди",
				Color:      "Червоний",
				Quantity:   15,
				Size:       "Великий",
			},
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "66e5a2b3c4d5e6f7a8b9c0d2",
			ShopID:        "66e5a1b2c3d4e5f6a7b8c9d1",
			Name:          "Букет тюльпанів мікс (21 шт)",
			Description:   "Весняний букет з 21 різнокольорових тюльпанів: червоні, жовті, рожеві та білі. Свіжість весни у вашому домі!",
			Category:      "bouquet",
			Price:         420.00,
			Currency:      models.DefaultCurrency,
			StockQuantity: 30,
			Images: []string{
				"https://images.unsplash.com/photo-1520637736862-4d197d17c50a?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
			},
			Specifications: models.Specifications{
				FlowerType: "Тюльпани",
				Color:      "Мікс",
				Quantity:   21,
				Size:       "Середній",
			},
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
