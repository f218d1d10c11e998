package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecom-cart/client"
	"ecom-cart/controllers"
	"ecom-cart/database"
	"ecom-cart/database/dbtest"
	"ecom-cart/models"
	"ecom-cart/repositories"
	"ecom-cart/routes"
	"ecom-cart/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.OpenSQLite(t)
	productRepo := repositories.NewProductRepository(db, database.DialectSQLite)
	cartRepo := repositories.NewCartRepository(db, database.DialectSQLite)
	productSvc := services.NewProductService(productRepo, nil)
	require.NoError(t, productSvc.Seed(context.Background()))

	router := routes.NewRouter(routes.Controllers{
		Products: controllers.NewProductController(productSvc),
		Cart:     controllers.NewCartController(services.NewCartService(cartRepo, productRepo)),
		Checkout: controllers.NewCheckoutController(services.NewCheckoutService(cartRepo, nil)),
	}, 0)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return client.New(srv.URL+"/api/", client.WithHTTPClient(srv.Client()))
}

func TestClientRoundTrip(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	product, err := c.Product(ctx, products[1].ID)
	require.NoError(t, err)
	assert.Equal(t, products[1].Name, product.Name)

	_, err = c.Product(ctx, 404)
	assert.True(t, client.IsNotFound(err))

	added, err := c.AddToCart(ctx, products[0].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Item added to cart", added.Message)

	require.NoError(t, c.UpdateQuantity(ctx, added.CartItemID, 3))

	cart, err := c.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "299.97", cart.Total.StringFixed(2))

	receipt, err := c.Checkout(ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "299.97", receipt.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusConfirmed, receipt.Status)

	cart, err = c.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClientErrors(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, err := c.AddToCart(ctx, 999, 1)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Product not found", apiErr.Message)
	assert.True(t, client.IsNotFound(err))

	err = c.RemoveItem(ctx, "missing")
	assert.True(t, client.IsNotFound(err))

	_, err = c.Checkout(ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Cart is empty", apiErr.Message)
}

func TestViewAgainstServer(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()
	view := client.NewView(c)

	require.NoError(t, view.Load(ctx))
	snap := view.Snapshot()
	assert.Equal(t, client.StateProducts, snap.State)
	assert.Len(t, snap.Products, 5)
	assert.Empty(t, snap.Cart.Items)

	require.NoError(t, view.AddToCart(ctx, 1))
	require.NoError(t, view.AddToCart(ctx, 1))
	snap = view.Snapshot()
	require.Len(t, snap.Cart.Items, 1)
	assert.Equal(t, 2, snap.CartItemCount())

	id := snap.Cart.Items[0].ID
	require.NoError(t, view.Decrease(ctx, id))
	assert.Equal(t, 1, view.Snapshot().Cart.Items[0].Quantity)

	require.NoError(t, view.Navigate(client.StateCheckout))
	require.NoError(t, view.Checkout(ctx, models.CustomerInfo{Name: "A", Email: "a@x.com"}))

	snap = view.Snapshot()
	assert.Equal(t, client.StateReceipt, snap.State)
	require.NotNil(t, snap.Receipt)
	assert.Equal(t, "99.99", snap.Receipt.Total.StringFixed(2))
	assert.Empty(t, snap.Cart.Items)

	view.CloseReceipt()
	assert.Equal(t, client.StateProducts, view.State())
	assert.Nil(t, view.Snapshot().Receipt)
}
