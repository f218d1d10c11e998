package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single cart line may hold. It keeps
// merged quantities inside a 32-bit integer column on every store.
const MaxQuantity = math.MaxInt32

// CartItem is a cart line item joined with the product it references.
type CartItem struct {
	ID        string          `json:"cartId"`
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" swaggertype:"number"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	ItemTotal decimal.Decimal `json:"itemTotal" swaggertype:"number"`
	AddedAt   time.Time       `json:"-"`
}

type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total" swaggertype:"number"`
}

// LineTotal returns quantity * price for a single line.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumTotal adds the item totals and rounds the sum to cents.
func SumTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.ItemTotal)
	}
	return total.Round(2)
}
