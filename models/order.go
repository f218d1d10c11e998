package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusConfirmed = "confirmed"

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Receipt is returned once by a successful checkout and never stored.
type Receipt struct {
	OrderID   string          `json:"orderId"`
	Customer  CustomerInfo    `json:"customer"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total" swaggertype:"number"`
	Timestamp time.Time       `json:"timestamp"`
	Status    string          `json:"status"`
}
