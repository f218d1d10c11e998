package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ecom-cart/models"
	"ecom-cart/repositories"

	"github.com/google/uuid"
)

type CartService struct {
	carts    CartStore
	products ProductStore
	now      func() time.Time
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		now:      utcNow,
	}
}

// AddItem puts quantity units of a product in the cart. When the product is
// already in the cart its line is merged and merged is true.
func (s *CartService) AddItem(ctx context.Context, req models.AddToCartRequest) (id string, merged bool, err error) {
	const op = "CartService.AddItem"
	log := slog.With("op", op)

	if req.ProductID < 1 || req.Quantity < 1 || req.Quantity > models.MaxQuantity {
		return "", false, ErrInvalidCartInput
	}

	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", false, ErrProductNotFound
		}
		log.Error("failed to look up product", "err", err)
		return "", false, storageError(err)
	}

	newID := uuid.NewString()
	id, err = s.carts.AddOrMerge(ctx, newID, req.ProductID, req.Quantity, s.now())
	if errors.Is(err, repositories.ErrQuantityLimit) {
		log.Warn("merge rejected, line quantity would exceed the limit", "product_id", req.ProductID)
		return "", false, ErrQuantityTooLarge
	}
	if err != nil {
		log.Error("failed to add cart item", "err", err)
		return "", false, storageError(err)
	}

	return id, id != newID, nil
}

func (s *CartService) GetCart(ctx context.Context) (*models.Cart, error) {
	const op = "CartService.GetCart"

	items, err := s.carts.List(ctx)
	if err != nil {
		slog.Error("failed to list cart", "op", op, "err", err)
		return nil, storageError(err)
	}

	return &models.Cart{
		Items: items,
		Total: models.SumTotal(items),
	}, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	const op = "CartService.UpdateQuantity"

	if quantity < 1 || quantity > models.MaxQuantity {
		return ErrInvalidQuantity
	}

	if err := s.carts.UpdateQuantity(ctx, id, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartItemNotFound
		}
		slog.Error("failed to update cart item", "op", op, "err", err)
		return storageError(err)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	const op = "CartService.RemoveItem"

	if err := s.carts.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartItemNotFound
		}
		slog.Error("failed to remove cart item", "op", op, "err", err)
		return storageError(err)
	}
	return nil
}
