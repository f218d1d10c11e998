package services

import (
	"ecom-cart/models"

	"github.com/shopspring/decimal"
)

// DefaultCatalog is inserted on startup when the products table is empty.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Wireless Headphones",
			Price:       decimal.RequireFromString("99.99"),
			Image:       models.DefaultProductImage,
			Description: "High-quality wireless headphones with noise cancellation",
		},
		{
			ID:          2,
			Name:        "Smart Watch",
			Price:       decimal.RequireFromString("149.99"),
			Image:       models.DefaultProductImage,
			Description: "Modern smartwatch with fitness tracking",
		},
		{
			ID:          3,
			Name:        "Bluetooth Speaker",
			Price:       decimal.RequireFromString("79.99"),
			Image:       models.DefaultProductImage,
			Description: "Portable speaker with deep bass",
		},
		{
			ID:          4,
			Name:        "Laptop Stand",
			Price:       decimal.RequireFromString("39.99"),
			Image:       models.DefaultProductImage,
			Description: "Ergonomic aluminum laptop stand",
		},
		{
			ID:          5,
			Name:        "USB-C Hub",
			Price:       decimal.RequireFromString("29.99"),
			Image:       models.DefaultProductImage,
			Description: "Multi-port USB-C hub for laptops",
		},
	}
}
