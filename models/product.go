package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImage is served by the storefront client when a product has no image.
const DefaultProductImage = "/image.png"

func init() {
	// Prices and totals go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
