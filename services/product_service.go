package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ecom-cart/cache"
	"ecom-cart/models"
	"ecom-cart/repositories"

	"golang.org/x/sync/singleflight"
)

const (
	productsFlightKey   = "products"
	productsLoadTimeout = 5 * time.Second
)

type ProductService struct {
	products ProductStore
	cache    cache.ProductCache
	sfg      singleflight.Group
}

func NewProductService(products ProductStore, productCache cache.ProductCache) *ProductService {
	if productCache == nil {
		productCache = cache.NopCache{}
	}
	return &ProductService{
		products: products,
		cache:    productCache,
	}
}

// Seed inserts the default catalog when no products exist. Existing rows are
// never touched.
func (s *ProductService) Seed(ctx context.Context) error {
	const op = "ProductService.Seed"
	log := slog.With("op", op)

	inserted, err := s.products.SeedIfEmpty(ctx, DefaultCatalog())
	if err != nil {
		return storageError(err)
	}
	if inserted == 0 {
		log.Info("catalog already populated, skipping seed")
		return nil
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("cache invalidate error", "err", err)
	}
	log.Info("catalog seeded", "products", inserted)
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "ProductService.ListProducts"
	log := slog.With("op", op)

	v, err, _ := s.sfg.Do(productsFlightKey, func() (any, error) {
		// Shared by every waiting caller; detached from the leader's cancellation.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), productsLoadTimeout)
		defer cancel()

		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn("cache get error", "err", err)
		}

		products, err = s.products.List(ctx)
		if err != nil {
			return nil, storageError(err)
		}

		if err := s.cache.SetProducts(ctx, products); err != nil {
			log.Warn("cache set error", "err", err)
		}
		return products, nil
	})
	if err != nil {
		log.Error("failed to list products", "err", err)
		return nil, err
	}

	return v.([]models.Product), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	const op = "ProductService.GetProduct"

	if id < 1 {
		return nil, ErrInvalidProductID
	}

	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		slog.Error("failed to get product", "op", op, "err", err)
		return nil, storageError(err)
	}
	return product, nil
}
