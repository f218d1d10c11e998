package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"ecom-cart/database"
	"ecom-cart/database/dbtest"
	"ecom-cart/models"
	"ecom-cart/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*models.Receipt
	done chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 1)}
}

func (n *recordingNotifier) SendReceipt(_ context.Context, receipt *models.Receipt) error {
	n.mu.Lock()
	n.sent = append(n.sent, receipt)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

type StorefrontTestSuite struct {
	suite.Suite
	ctx      context.Context
	products *ProductService
	carts    *CartService
	checkout *CheckoutService
	notifier *recordingNotifier
	cartRepo *repositories.CartRepository
}

func (s *StorefrontTestSuite) SetupTest() {
	s.ctx = context.Background()
	db := dbtest.OpenSQLite(s.T())

	productRepo := repositories.NewProductRepository(db, database.DialectSQLite)
	s.cartRepo = repositories.NewCartRepository(db, database.DialectSQLite)
	s.notifier = newRecordingNotifier()

	s.products = NewProductService(productRepo, nil)
	s.carts = NewCartService(s.cartRepo, productRepo)
	s.checkout = NewCheckoutService(s.cartRepo, s.notifier)

	s.Require().NoError(s.products.Seed(s.ctx))
}

func (s *StorefrontTestSuite) cartQuantities() map[int]int {
	cart, err := s.carts.GetCart(s.ctx)
	s.Require().NoError(err)
	out := map[int]int{}
	for _, item := range cart.Items {
		out[item.ProductID] = item.Quantity
	}
	return out
}

func (s *StorefrontTestSuite) TestSeedIsIdempotent() {
	s.Require().NoError(s.products.Seed(s.ctx))

	products, err := s.products.ListProducts(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 5)
	s.Equal(1, products[0].ID)
	s.Equal("Wireless Headphones", products[0].Name)
	s.True(products[0].Price.Equal(decimal.RequireFromString("99.99")))
	s.Equal(models.DefaultProductImage, products[0].Image)
}

func (s *StorefrontTestSuite) TestAddItemMergesSameProduct() {
	id1, merged, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 2, Quantity: 1})
	s.Require().NoError(err)
	s.False(merged)

	id2, merged, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 2, Quantity: 1})
	s.Require().NoError(err)
	s.True(merged)
	s.Equal(id1, id2)

	s.Equal(map[int]int{2: 2}, s.cartQuantities())
}

func (s *StorefrontTestSuite) TestAddItemValidation() {
	cases := []models.AddToCartRequest{
		{ProductID: 0, Quantity: 1},
		{ProductID: 1, Quantity: 0},
		{ProductID: 1, Quantity: -3},
		{ProductID: -1, Quantity: 1},
	}
	for _, req := range cases {
		_, _, err := s.carts.AddItem(s.ctx, req)
		s.ErrorIs(err, ErrValidation, "%+v", req)
		s.ErrorIs(err, ErrInvalidCartInput)
	}
	s.Empty(s.cartQuantities())
}

func (s *StorefrontTestSuite) TestAddItemQuantityLimit() {
	_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: math.MaxInt})
	s.ErrorIs(err, ErrInvalidCartInput)
	s.Empty(s.cartQuantities())

	id, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: models.MaxQuantity})
	s.Require().NoError(err)

	_, _, err = s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: 1})
	s.ErrorIs(err, ErrValidation)
	s.ErrorIs(err, ErrQuantityTooLarge)

	cart, err := s.carts.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(id, cart.Items[0].ID)
	s.Equal(models.MaxQuantity, cart.Items[0].Quantity)

	receipt, err := s.checkout.Checkout(s.ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"})
	s.Require().NoError(err)
	s.True(receipt.Total.Equal(cart.Total))
	<-s.notifier.done
}

func (s *StorefrontTestSuite) TestConcurrentAddItemMergesIntoOneLine() {
	const workers = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	s.Equal(map[int]int{1: workers}, s.cartQuantities())
}

func (s *StorefrontTestSuite) TestAddItemUnknownProduct() {
	_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 99, Quantity: 1})
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(err, ErrProductNotFound)
	s.Empty(s.cartQuantities())
}

func (s *StorefrontTestSuite) TestCartTotalIsRoundedSum() {
	_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: 3})
	s.Require().NoError(err)
	_, _, err = s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 5, Quantity: 1})
	s.Require().NoError(err)

	cart, err := s.carts.GetCart(s.ctx)
	s.Require().NoError(err)
	s.Len(cart.Items, 2)
	s.Equal("329.96", cart.Total.StringFixed(2))
	s.True(cart.Items[0].ItemTotal.Equal(decimal.RequireFromString("299.97")))
}

func (s *StorefrontTestSuite) TestEmptyCart() {
	cart, err := s.carts.GetCart(s.ctx)
	s.Require().NoError(err)
	s.NotNil(cart.Items)
	s.Empty(cart.Items)
	s.True(cart.Total.IsZero())
}

func (s *StorefrontTestSuite) TestUpdateQuantity() {
	id, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 3, Quantity: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.carts.UpdateQuantity(s.ctx, id, 4))
	s.Equal(map[int]int{3: 4}, s.cartQuantities())

	for _, q := range []int{0, -1} {
		err := s.carts.UpdateQuantity(s.ctx, id, q)
		s.ErrorIs(err, ErrValidation)
		s.ErrorIs(err, ErrInvalidQuantity)
	}
	s.Equal(map[int]int{3: 4}, s.cartQuantities())

	err = s.carts.UpdateQuantity(s.ctx, id, models.MaxQuantity+1)
	s.ErrorIs(err, ErrInvalidQuantity)
	s.Equal(map[int]int{3: 4}, s.cartQuantities())

	s.ErrorIs(s.carts.UpdateQuantity(s.ctx, "missing", 2), ErrCartItemNotFound)
}

func (s *StorefrontTestSuite) TestRemoveItem() {
	id, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 4, Quantity: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.carts.RemoveItem(s.ctx, id))
	s.Empty(s.cartQuantities())

	err = s.carts.RemoveItem(s.ctx, id)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.carts.RemoveItem(s.ctx, "never-created"), ErrCartItemNotFound)
}

func (s *StorefrontTestSuite) TestCheckoutEmptyCart() {
	_, err := s.checkout.Checkout(s.ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"})
	s.ErrorIs(err, ErrValidation)
	s.ErrorIs(err, ErrEmptyCart)
}

func (s *StorefrontTestSuite) TestCheckoutRequiresCustomer() {
	_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: 1})
	s.Require().NoError(err)

	for _, c := range []models.CustomerInfo{
		{Name: "", Email: "a@x.com"},
		{Name: "A", Email: ""},
		{Name: "   ", Email: "a@x.com"},
		{},
	} {
		_, err := s.checkout.Checkout(s.ctx, c)
		s.ErrorIs(err, ErrCustomerRequired, "%+v", c)
	}
	s.Equal(map[int]int{1: 1}, s.cartQuantities())
}

func (s *StorefrontTestSuite) TestCheckoutProducesReceiptAndClearsCart() {
	_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 1, Quantity: 2})
	s.Require().NoError(err)
	_, _, err = s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 3, Quantity: 1})
	s.Require().NoError(err)

	before, err := s.carts.GetCart(s.ctx)
	s.Require().NoError(err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.checkout.now = func() time.Time { return fixed }

	receipt, err := s.checkout.Checkout(s.ctx, models.CustomerInfo{Name: " Ada ", Email: "ada@example.com"})
	s.Require().NoError(err)

	s.NotEmpty(receipt.OrderID)
	s.Equal(models.CustomerInfo{Name: " Ada ", Email: "ada@example.com"}, receipt.Customer, "customer is echoed as given")
	s.Len(receipt.Items, 2)
	s.True(receipt.Total.Equal(before.Total))
	s.Equal("279.97", receipt.Total.StringFixed(2))
	s.Equal(fixed, receipt.Timestamp)
	s.Equal(models.OrderStatusConfirmed, receipt.Status)

	s.Empty(s.cartQuantities())

	select {
	case <-s.notifier.done:
	case <-time.After(2 * time.Second):
		s.Fail("receipt was not sent")
	}
	s.notifier.mu.Lock()
	defer s.notifier.mu.Unlock()
	s.Require().Len(s.notifier.sent, 1)
	s.Equal(receipt.OrderID, s.notifier.sent[0].OrderID)
}

func (s *StorefrontTestSuite) TestCheckoutOrderIDsAreUnique() {
	var ids []string
	for range 2 {
		_, _, err := s.carts.AddItem(s.ctx, models.AddToCartRequest{ProductID: 2, Quantity: 1})
		s.Require().NoError(err)
		receipt, err := s.checkout.Checkout(s.ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"})
		s.Require().NoError(err)
		ids = append(ids, receipt.OrderID)
		<-s.notifier.done
	}
	s.NotEqual(ids[0], ids[1])
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}

type failingCartStore struct {
	CartStore
	err error
}

func (f failingCartStore) List(context.Context) ([]models.CartItem, error) {
	return nil, f.err
}

func (f failingCartStore) Checkout(context.Context, func([]models.CartItem) error) error {
	return f.err
}

func TestStorageErrorsAreClassified(t *testing.T) {
	boom := errors.New("disk I/O error")
	store := failingCartStore{err: boom}

	carts := NewCartService(store, nil)
	_, err := carts.GetCart(context.Background())
	if !errors.Is(err, ErrStorage) || !errors.Is(err, boom) {
		t.Fatalf("expected storage error wrapping cause, got %v", err)
	}

	checkout := NewCheckoutService(store, nil)
	_, err = checkout.Checkout(context.Background(), models.CustomerInfo{Name: "A", Email: "a@x.com"})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}

	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Message() != "Internal server error" {
		t.Fatalf("expected generic message, got %v", err)
	}
}
