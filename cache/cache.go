package cache

import (
	"context"
	"errors"

	"ecom-cart/models"
)

type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache is used when Redis is not configured. Every lookup misses.
type NopCache struct{}

func (NopCache) GetProducts(context.Context) ([]models.Product, error) {
	return nil, ErrCacheMiss
}

func (NopCache) SetProducts(context.Context, []models.Product) error {
	return nil
}

func (NopCache) Invalidate(context.Context) error {
	return nil
}
