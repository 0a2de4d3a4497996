package payments

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
)

// Manual is paid outside the wizard (cash on site, bank transfer). The booking
// stays pending until the payment is confirmed by staff.
type Manual struct {
	base
}

// NewManual creates a manual gateway; instructions come from its settings
func NewManual(id, name string, api API) *Manual {
	return &Manual{base: newBase(id, name, true, api)}
}

// IsValid manual gateways have no fields
func (g *Manual) IsValid(*cart.Cart) bool {
	return true
}

// ProcessPayment records a pending payment with the instructions to show
func (g *Manual) ProcessPayment(_ context.Context, c *cart.Cart, details BookingDetails) (*cart.PaymentDetails, error) {
	pd := g.details(c, details, StatusPending)
	if instructions := g.settings["instructions"]; instructions != "" {
		pd.Data["instructions"] = instructions
	}
	return pd, nil
}

// Describe adds the payment instructions
func (g *Manual) Describe() map[string]string {
	view := g.base.Describe()
	if instructions := g.settings["instructions"]; instructions != "" {
		view["instructions"] = instructions
	}
	return view
}
