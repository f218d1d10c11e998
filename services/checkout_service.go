package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ecom-cart/models"

	"github.com/google/uuid"
)

const notifyTimeout = 30 * time.Second

type CheckoutService struct {
	carts    CartStore
	notifier ReceiptNotifier
	now      func() time.Time
}

// NewCheckoutService builds the service. notifier may be nil.
func NewCheckoutService(carts CartStore, notifier ReceiptNotifier) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		notifier: notifier,
		now:      utcNow,
	}
}

// Checkout turns the current cart into a receipt and empties the cart. The
// read and the clear run in one transaction, so a receipt is only returned
// once the cart is gone. Blank names and emails are rejected; the receipt
// echoes the customer as given.
func (s *CheckoutService) Checkout(ctx context.Context, customer models.CustomerInfo) (*models.Receipt, error) {
	const op = "CheckoutService.Checkout"
	log := slog.With("op", op)

	if strings.TrimSpace(customer.Name) == "" || strings.TrimSpace(customer.Email) == "" {
		return nil, ErrCustomerRequired
	}

	var receipt *models.Receipt
	err := s.carts.Checkout(ctx, func(items []models.CartItem) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}
		receipt = &models.Receipt{
			OrderID:   uuid.NewString(),
			Customer:  customer,
			Items:     items,
			Total:     models.SumTotal(items),
			Timestamp: s.now(),
			Status:    models.OrderStatusConfirmed,
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		log.Error("checkout failed", "err", err)
		return nil, storageError(err)
	}

	log.Info("order confirmed", "order_id", receipt.OrderID, "items", len(receipt.Items), "total", receipt.Total.StringFixed(2))

	if s.notifier != nil {
		go s.notify(*receipt)
	}
	return receipt, nil
}

func (s *CheckoutService) notify(receipt models.Receipt) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.SendReceipt(ctx, &receipt); err != nil {
		slog.Warn("failed to send receipt email", "order_id", receipt.OrderID, "err", err)
	}
}
