// Package payments implements the payment gateways offered on the payment step.
package payments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
)

// Gateway IDs
const (
	GatewayFree   = "free"
	GatewayCash   = "cash"
	GatewayBank   = "bank"
	GatewayStripe = "stripe"
	GatewayPayPal = "paypal"
)

// Payment statuses reported in PaymentDetails.Data["status"]
const (
	StatusPaid     = "paid"
	StatusPending  = "pending"
	StatusApproval = "requires_approval"
	StatusAction   = "requires_action"
)

// BookingDetails identify the draft booking a payment belongs to
type BookingDetails struct {
	BookingID int64
	PaymentID int64
	Currency  string
}

// Gateway is one payment method
type Gateway interface {
	ID() string
	Name() string
	// Load fetches gateway settings once; later calls do nothing
	Load(ctx context.Context) error
	IsLoaded() bool
	// Enable makes the gateway the selected one; fields are mounted on the first call
	Enable()
	Disable()
	IsEnabled() bool
	// SetInput receives the gateway fields filled in by the customer
	SetInput(values map[string]string)
	// IsValid reflects the state of the gateway fields
	IsValid(c *cart.Cart) bool
	ProcessPayment(ctx context.Context, c *cart.Cart, details BookingDetails) (*cart.PaymentDetails, error)
	// Describe returns what the UI shows for the gateway
	Describe() map[string]string
}

// base holds what every gateway shares: lazy mount, settings and input
type base struct {
	id           string
	name         string
	customizable bool
	api          API

	settings map[string]string
	input    map[string]string
	fields   []string

	loaded  bool
	mounted bool
	enabled bool
}

func newBase(id, name string, customizable bool, api API, fields ...string) base {
	return base{
		id:           id,
		name:         name,
		customizable: customizable,
		api:          api,
		settings:     make(map[string]string),
		fields:       fields,
	}
}

func (b *base) ID() string      { return b.id }
func (b *base) Name() string    { return b.name }
func (b *base) IsLoaded() bool  { return b.loaded }
func (b *base) IsEnabled() bool { return b.enabled }

func (b *base) Load(ctx context.Context) error {
	if b.loaded {
		return nil
	}

	if b.customizable {
		settings, err := b.api.GetPaymentSettings(ctx, b.id)
		if err != nil {
			return fmt.Errorf("load %s settings: %w", b.id, err)
		}
		for k, v := range settings {
			b.settings[k] = v
		}
		if title := settings["title"]; title != "" {
			b.name = title
		}
	}

	b.loaded = true
	return nil
}

func (b *base) Enable() {
	if !b.mounted {
		b.input = make(map[string]string, len(b.fields))
		for _, f := range b.fields {
			b.input[f] = ""
		}
		b.mounted = true
	}
	b.enabled = true
}

func (b *base) Disable() {
	b.enabled = false
}

func (b *base) SetInput(values map[string]string) {
	if !b.mounted {
		return
	}
	for _, f := range b.fields {
		if v, ok := values[f]; ok {
			b.input[f] = v
		}
	}
}

func (b *base) inputValue(field string) string {
	return b.input[field]
}

func (b *base) Describe() map[string]string {
	view := map[string]string{"id": b.id, "name": b.name}
	if d := b.settings["description"]; d != "" {
		view["description"] = d
	}
	return view
}

func (b *base) details(c *cart.Cart, d BookingDetails, status string) *cart.PaymentDetails {
	return &cart.PaymentDetails{
		GatewayID: b.id,
		BookingID: d.BookingID,
		PaymentID: d.PaymentID,
		Amount:    c.GetToPayPrice(),
		Currency:  d.Currency,
		Data:      map[string]string{"status": status},
	}
}
