// Package checkout finalizes free-form grocery carts: it adapts a cart plus
// caller-supplied customer details into the generic order finalize contract.
package checkout

import (
	"context"
	"fmt"

	"github.com/dailypantry/pantry-assistant/internal/cart"
	"github.com/dailypantry/pantry-assistant/internal/order"
)

// Service places orders for cart-based sessions.
type Service struct {
	finalizer *order.Finalizer
}

// NewService creates a checkout Service using the given finalizer.
func NewService(finalizer *order.Finalizer) *Service {
	return &Service{finalizer: finalizer}
}

// source adapts a cart and customer details to order.Source.
type source struct {
	cart     *cart.Cart
	customer order.CustomerInfo
}

func (s *source) Validate() error {
	if s.cart.IsEmpty() {
		return &order.EmptyCartError{}
	}
	return nil
}

func (s *source) Customer() order.CustomerInfo {
	return s.customer
}

func (s *source) Lines() []order.LineItem {
	lines := s.cart.Lines()
	items := make([]order.LineItem, len(lines))
	for i, l := range lines {
		items[i] = order.LineItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Notes:     l.Notes,
		}
	}
	return items
}

// PlaceOrder finalizes the cart for the given customer. On success the cart
// is cleared and a confirmation naming the order id and total is returned.
// An empty cart returns *order.EmptyCartError; a persistence failure leaves
// the cart intact for retry.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Cart, name, address string) (string, error) {
	rec, err := s.finalizer.Finalize(ctx, &source{
		cart:     c,
		customer: order.CustomerInfo{Name: name, Address: address},
	})
	if err != nil {
		return "", err
	}

	c.Clear()
	return fmt.Sprintf(
		"Your order (ID: %s) has been placed. The total is $%s. Thank you for shopping with us!",
		rec.ID, rec.Total.StringFixed(2),
	), nil
}
