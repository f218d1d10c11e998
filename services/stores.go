package services

import (
	"context"
	"time"

	"ecom-cart/models"
)

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	SeedIfEmpty(ctx context.Context, products []models.Product) (int, error)
}

type CartStore interface {
	AddOrMerge(ctx context.Context, newID string, productID, quantity int, addedAt time.Time) (string, error)
	List(ctx context.Context) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	Checkout(ctx context.Context, fn func(items []models.CartItem) error) error
}

// ReceiptNotifier delivers a receipt to the customer after checkout commits.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, receipt *models.Receipt) error
}

func utcNow() time.Time {
	return time.Now().UTC()
}
