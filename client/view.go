package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ecom-cart/models"

	"github.com/shopspring/decimal"
)

type State int

const (
	StateProducts State = iota
	StateCart
	StateCheckout
	StateReceipt
)

func (s State) String() string {
	switch s {
	case StateProducts:
		return "products"
	case StateCart:
		return "cart"
	case StateCheckout:
		return "checkout"
	case StateReceipt:
		return "receipt"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrBusy        = errors.New("another action is in progress")
	ErrEmptyCart   = errors.New("your cart is empty")
	ErrNoReceipt   = errors.New("no receipt to show")
	ErrUnknownItem = errors.New("item is not in the cart")
	ErrStaleCart   = errors.New("order placed but the cart could not be refreshed")
)

// API is the part of Client the view drives.
type API interface {
	Products(ctx context.Context) ([]models.Product, error)
	Cart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, productID, quantity int) (*models.AddToCartResponse, error)
	UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error
	RemoveItem(ctx context.Context, cartItemID string) error
	Checkout(ctx context.Context, customer models.CustomerInfo) (*models.Receipt, error)
}

// Snapshot is a copy of the view taken for rendering.
type Snapshot struct {
	State       State
	Products    []models.Product
	Cart        models.Cart
	Receipt     *models.Receipt
	Loading     bool
	UpdatingIDs map[string]bool
	RemovingIDs map[string]bool
}

func (s Snapshot) CartItemCount() int {
	n := 0
	for _, item := range s.Cart.Items {
		n += item.Quantity
	}
	return n
}

// View mirrors server state into one of four screens. Every successful
// mutation is followed by a cart refetch; nothing is patched locally. The
// global loading flag guards add-to-cart and checkout, the per-item flags guard
// quantity changes and removal. A guarded action that is already running is
// rejected with ErrBusy.
type View struct {
	api API

	mu       sync.Mutex
	state    State
	products []models.Product
	cart     models.Cart
	receipt  *models.Receipt
	loading  bool
	updating map[string]bool
	removing map[string]bool
}

func NewView(api API) *View {
	return &View{
		api:      api,
		state:    StateProducts,
		cart:     models.Cart{Items: []models.CartItem{}, Total: decimal.Zero},
		updating: map[string]bool{},
		removing: map[string]bool{},
	}
}

// Load fetches the catalog and the cart.
func (v *View) Load(ctx context.Context) error {
	products, err := v.api.Products(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	v.mu.Lock()
	v.products = products
	v.mu.Unlock()

	return v.refreshCart(ctx)
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		State:       v.state,
		Products:    append([]models.Product(nil), v.products...),
		Cart:        models.Cart{Items: append([]models.CartItem(nil), v.cart.Items...), Total: v.cart.Total},
		Receipt:     v.receipt,
		Loading:     v.loading,
		UpdatingIDs: make(map[string]bool, len(v.updating)),
		RemovingIDs: make(map[string]bool, len(v.removing)),
	}
	for id := range v.updating {
		snap.UpdatingIDs[id] = true
	}
	for id := range v.removing {
		snap.RemovingIDs[id] = true
	}
	return snap
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Navigate switches between the products, cart and checkout screens. The
// receipt screen is only reachable through a successful checkout.
func (v *View) Navigate(to State) error {
	if to == StateReceipt {
		return ErrNoReceipt
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = to
	return nil
}

// CloseReceipt dismisses the receipt and returns to the product listing.
func (v *View) CloseReceipt() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.receipt = nil
	v.state = StateProducts
}

func (v *View) AddToCart(ctx context.Context, productID int) error {
	if !v.acquireGlobal() {
		return ErrBusy
	}
	defer v.releaseGlobal()

	if _, err := v.api.AddToCart(ctx, productID, 1); err != nil {
		return err
	}
	return v.refreshCart(ctx)
}

// Increase adds one unit to a cart line.
func (v *View) Increase(ctx context.Context, cartItemID string) error {
	item, err := v.item(cartItemID)
	if err != nil {
		return err
	}
	return v.setQuantity(ctx, cartItemID, item.Quantity+1)
}

// Decrease removes one unit from a cart line, or the whole line at quantity 1.
func (v *View) Decrease(ctx context.Context, cartItemID string) error {
	item, err := v.item(cartItemID)
	if err != nil {
		return err
	}
	if item.Quantity <= 1 {
		return v.Remove(ctx, cartItemID)
	}
	return v.setQuantity(ctx, cartItemID, item.Quantity-1)
}

func (v *View) Remove(ctx context.Context, cartItemID string) error {
	if !v.acquire(v.removing, cartItemID) {
		return ErrBusy
	}
	defer v.release(v.removing, cartItemID)

	if err := v.api.RemoveItem(ctx, cartItemID); err != nil {
		return err
	}
	return v.refreshCart(ctx)
}

// Checkout submits the order. On success the receipt screen is shown and the
// cart is refetched. When only the refetch fails the receipt is still shown and
// the returned error matches ErrStaleCart.
func (v *View) Checkout(ctx context.Context, customer models.CustomerInfo) error {
	v.mu.Lock()
	empty := len(v.cart.Items) == 0
	v.mu.Unlock()
	if empty {
		return ErrEmptyCart
	}

	if !v.acquireGlobal() {
		return ErrBusy
	}
	defer v.releaseGlobal()

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)

	receipt, err := v.api.Checkout(ctx, customer)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.receipt = receipt
	v.state = StateReceipt
	v.mu.Unlock()

	if err := v.refreshCart(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStaleCart, err)
	}
	return nil
}

func (v *View) setQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if !v.acquire(v.updating, cartItemID) {
		return ErrBusy
	}
	defer v.release(v.updating, cartItemID)

	if err := v.api.UpdateQuantity(ctx, cartItemID, quantity); err != nil {
		return err
	}
	return v.refreshCart(ctx)
}

func (v *View) refreshCart(ctx context.Context) error {
	cart, err := v.api.Cart(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	v.mu.Lock()
	v.cart = *cart
	v.mu.Unlock()
	return nil
}

func (v *View) item(cartItemID string) (models.CartItem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.cart.Items {
		if item.ID == cartItemID {
			return item, nil
		}
	}
	return models.CartItem{}, ErrUnknownItem
}

func (v *View) acquireGlobal() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loading {
		return false
	}
	v.loading = true
	return true
}

func (v *View) releaseGlobal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
}

func (v *View) acquire(flags map[string]bool, id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if flags[id] {
		return false
	}
	flags[id] = true
	return true
}

func (v *View) release(flags map[string]bool, id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(flags, id)
}
