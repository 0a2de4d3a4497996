package payments

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
)

// Free is offered only when nothing has to be paid now
type Free struct {
	base
}

// NewFree creates the free gateway
func NewFree() *Free {
	return &Free{base: newBase(GatewayFree, "Free", false, nil)}
}

// IsValid returns true if the cart has nothing to pay
func (g *Free) IsValid(c *cart.Cart) bool {
	return c.GetToPayPrice() <= 0
}

// ProcessPayment confirms a zero payment
func (g *Free) ProcessPayment(_ context.Context, c *cart.Cart, details BookingDetails) (*cart.PaymentDetails, error) {
	if !g.IsValid(c) {
		return nil, paymentError(ErrNotFree, "This booking is not free.")
	}
	return g.details(c, details, StatusPaid), nil
}
