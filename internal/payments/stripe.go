package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
)

// Stripe input fields
const (
	FieldPaymentMethod = "payment_method"
	FieldReturnURL     = "return_url"
)

// Stripe confirms a PaymentIntent the backend created for the draft booking.
// The payment method ID comes from Stripe Elements in the UI.
type Stripe struct {
	base
	confirmer IntentConfirmer
}

// NewStripe creates the Stripe gateway
func NewStripe(api API, confirmer IntentConfirmer) *Stripe {
	return &Stripe{
		base:      newBase(GatewayStripe, "Credit card", true, api, FieldPaymentMethod, FieldReturnURL),
		confirmer: confirmer,
	}
}

// IsValid returns true once the UI has provided a payment method
func (g *Stripe) IsValid(*cart.Cart) bool {
	return g.inputValue(FieldPaymentMethod) != ""
}

// ProcessPayment prepares the intent on the backend and confirms it
func (g *Stripe) ProcessPayment(ctx context.Context, c *cart.Cart, details BookingDetails) (*cart.PaymentDetails, error) {
	if !g.IsValid(c) {
		return nil, paymentError(ErrInvalidInput, "Please enter your card details.")
	}

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

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(g.inputValue(FieldPaymentMethod)),
	}
	if returnURL := g.inputValue(FieldReturnURL); returnURL != "" {
		params.ReturnURL = stripe.String(returnURL)
	}
	if prepared.ClientSecret != "" {
		params.AddExtra("client_secret", prepared.ClientSecret)
	}
	params.Context = ctx

	intent, err := g.confirmer.Confirm(prepared.IntentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, paymentError(ErrPaymentFailed, stripeErr.Msg)
		}
		return nil, paymentError(ErrPaymentFailed, "The payment could not be completed.")
	}

	details.PaymentID = prepared.PaymentID
	pd := g.details(c, details, "")
	pd.Data["intent_id"] = intent.ID

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		pd.Data["status"] = StatusPaid
	case stripe.PaymentIntentStatusProcessing:
		pd.Data["status"] = StatusPending
	case stripe.PaymentIntentStatusRequiresAction:
		pd.Data["status"] = StatusAction
		if intent.NextAction != nil && intent.NextAction.RedirectToURL != nil {
			pd.Data["redirect_url"] = intent.NextAction.RedirectToURL.URL
		}
	default:
		message := "The payment was declined."
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			message = intent.LastPaymentError.Msg
		}
		return nil, paymentError(ErrPaymentFailed, message)
	}

	return pd, nil
}

// Describe adds the publishable key the UI needs to mount Stripe Elements
func (g *Stripe) Describe() map[string]string {
	view := g.base.Describe()
	if key := g.settings["publishable_key"]; key != "" {
		view["publishable_key"] = key
	}
	return view
}
