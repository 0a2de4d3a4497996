package payments

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
)

// PayPal asks the backend to create an order; the customer approves it on the
// returned link and the backend captures it from the PayPal webhook
type PayPal struct {
	base
}

// NewPayPal creates the PayPal gateway
func NewPayPal(api API) *PayPal {
	return &PayPal{base: newBase(GatewayPayPal, "PayPal", true, api)}
}

// IsValid PayPal has no fields in the wizard
func (g *PayPal) IsValid(*cart.Cart) bool {
	return true
}

// ProcessPayment creates the order and returns the approval link
func (g *PayPal) ProcessPayment(ctx context.Context, c *cart.Cart, details BookingDetails) (*cart.PaymentDetails, error) {
	prepared, err := g.api.PreparePayment(ctx, bookingapi.PreparePaymentRequest{
		GatewayID: g.id,
		BookingID: details.BookingID,
		PaymentID: details.PaymentID,
		Amount:    c.GetToPayPrice(),
		Currency:  details.Currency,
	})
	if err != nil {
		return nil, err
	}
	if prepared.OrderID == "" || prepared.ApprovalURL == "" {
		return nil, paymentError(ErrPaymentFailed, "PayPal did not return an order.")
	}

	details.PaymentID = prepared.PaymentID
	pd := g.details(c, details, StatusApproval)
	pd.Data["order_id"] = prepared.OrderID
	pd.Data["redirect_url"] = prepared.ApprovalURL

	return pd, nil
}
