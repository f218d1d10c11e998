package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ecom-cart/cache"
	"ecom-cart/models"
	"ecom-cart/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProductStore struct {
	mu       sync.Mutex
	calls    int
	products []models.Product
	err      error
}

func (s *countingProductStore) List(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.products, s.err
}

func (s *countingProductStore) GetByID(_ context.Context, id int) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *countingProductStore) SeedIfEmpty(_ context.Context, products []models.Product) (int, error) {
	if len(s.products) > 0 {
		return 0, nil
	}
	s.products = products
	return len(products), nil
}

type memoryCache struct {
	mu          sync.Mutex
	products    []models.Product
	getErr      error
	invalidated int
}

func (c *memoryCache) GetProducts(context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return c.products, nil
}

func (c *memoryCache) SetProducts(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.invalidated++
	return nil
}

func TestListProducts_ServedFromCacheAfterFirstLoad(t *testing.T) {
	store := &countingProductStore{products: []models.Product{
		{ID: 1, Name: "Widget", Price: decimal.NewFromInt(5)},
	}}
	c := &memoryCache{}
	svc := NewProductService(store, c)

	for range 3 {
		products, err := svc.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 1)
	}
	assert.Equal(t, 1, store.calls)
}

func TestListProducts_CacheErrorFallsBackToStore(t *testing.T) {
	store := &countingProductStore{products: []models.Product{{ID: 1, Name: "Widget"}}}
	svc := NewProductService(store, &memoryCache{getErr: errors.New("redis down")})

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, store.calls)
}

func TestListProducts_LoadOutlivesCanceledCaller(t *testing.T) {
	store := &countingProductStore{products: []models.Product{{ID: 1, Name: "Widget"}}}
	svc := NewProductService(store, &memoryCache{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, store.calls)
}

func TestListProducts_StoreError(t *testing.T) {
	store := &countingProductStore{err: errors.New("database is locked")}
	svc := NewProductService(store, nil)

	_, err := svc.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSeed_InvalidatesCacheOnlyWhenInserting(t *testing.T) {
	store := &countingProductStore{}
	c := &memoryCache{products: []models.Product{{ID: 99, Name: "Stale"}}}
	svc := NewProductService(store, c)

	require.NoError(t, svc.Seed(context.Background()))
	assert.Equal(t, 1, c.invalidated)
	assert.Len(t, store.products, len(DefaultCatalog()))

	require.NoError(t, svc.Seed(context.Background()))
	assert.Equal(t, 1, c.invalidated)
}

func TestGetProduct(t *testing.T) {
	store := &countingProductStore{products: []models.Product{{ID: 3, Name: "Coffee Mug"}}}
	svc := NewProductService(store, nil)

	product, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Coffee Mug", product.Name)

	_, err = svc.GetProduct(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetProduct(context.Background(), 0)
	assert.ErrorIs(t, err, ErrValidation)

	store.err = errors.New("disk I/O error")
	_, err = svc.GetProduct(context.Background(), 3)
	assert.ErrorIs(t, err, ErrStorage)
}
