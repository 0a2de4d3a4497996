// Package app assembles one booking wizard: the cart, the steps in order and
// the sequencer driving them. Every visitor session owns its own Wizard.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/payments"
	"github.com/m04kA/SMC-BookingWizard/internal/steps"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

// Options per-wizard settings
type Options struct {
	Settings *domain.Settings
	Form     steps.FormOptions
}

// Wizard is one booking flow
type Wizard struct {
	cart      *cart.Cart
	sequencer *wizard.Sequencer
	settings  *domain.Settings

	form     *steps.ServiceForm
	period   *steps.Period
	review   *steps.CartReview
	checkout *steps.Checkout
	payment  *steps.Payment
	booking  *steps.Booking
}

// State snapshot of the wizard for the UI
type State struct {
	CurrentStep string         `json:"current_step"`
	CanGoBack   bool           `json:"can_go_back"`
	Steps       []wizard.State `json:"steps"`
	Order       cart.Order     `json:"order"`
	Currency    string         `json:"currency"`
}

// Snapshot is what has to be stored to resume a wizard later
type Snapshot struct {
	Payload  cart.Payload `json:"payload"`
	CartHash string       `json:"cart_hash"`
	StepID   string       `json:"step_id"`
}

// New creates a wizard with an empty cart. Call Start before use.
func New(deps Deps, opts Options) *Wizard {
	clock := deps.Clock
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return build(deps, opts, cart.New(cart.WithTimeProvider(clock)))
}

// Restore rebuilds a wizard from a snapshot and reopens the stored step. A
// step bound to a cart item resumes from the service form, since "any"
// employee and location choices are not part of the snapshot. A snapshot taken
// on the booking step belongs to a finalized cart and starts a new booking.
func Restore(ctx context.Context, deps Deps, opts Options, snapshot Snapshot) (*Wizard, error) {
	clock := deps.Clock
	if clock == nil {
		clock = &RealTimeProvider{}
	}

	c, err := cart.Restore(ctx, snapshot.Payload, deps.Entities, cart.WithTimeProvider(clock))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestore, err)
	}

	w := build(deps, opts, c)
	if c.IsEmpty() {
		if err := w.Start(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRestore, err)
		}
		return w, nil
	}

	if snapshot.StepID == steps.StepBooking {
		if err := w.sequencer.Run(ctx, w.sequencer.ResetBooking); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRestore, err)
		}
		return w, nil
	}

	stepID := snapshot.StepID
	step, err := w.sequencer.Step(stepID)
	if err != nil || step.CartContext() == wizard.ContextCartItem {
		stepID = steps.StepServiceForm
	}

	if err := w.sequencer.Resume(ctx, stepID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRestore, err)
	}
	return w, nil
}

func build(deps Deps, opts Options, c *cart.Cart) *Wizard {
	settings := opts.Settings
	if settings == nil {
		settings = domain.DefaultSettings()
	}
	clock := deps.Clock
	if clock == nil {
		clock = &RealTimeProvider{}
	}

	w := &Wizard{
		cart:     c,
		settings: settings,
		form:     steps.NewServiceForm(c, deps.API, deps.Entities, opts.Form),
		period:   steps.NewPeriod(c, deps.API, settings, clock),
		review:   steps.NewCartReview(c, settings),
		checkout: steps.NewCheckout(c, deps.API, settings),
		payment:  steps.NewPayment(c, deps.API, newRegistry(deps, settings), settings, deps.Logger),
		booking:  steps.NewBooking(c, deps.API, settings, deps.Logger),
	}

	w.sequencer = wizard.NewSequencer(c, deps.Logger, deps.Observer)
	w.sequencer.AddStep(w.form)
	w.sequencer.AddStep(w.period)
	w.sequencer.AddStep(w.review)
	w.sequencer.AddStep(w.checkout)
	w.sequencer.AddStep(w.payment)
	w.sequencer.AddStep(w.booking)

	return w
}

// newRegistry создаёт шлюзы для одного мастера: шлюзы хранят ввод покупателя
func newRegistry(deps Deps, settings *domain.Settings) *payments.Registry {
	gateways := []payments.Gateway{
		payments.NewFree(),
		payments.NewManual(payments.GatewayCash, "Pay on site", deps.API),
		payments.NewManual(payments.GatewayBank, "Bank transfer", deps.API),
		payments.NewPayPal(deps.API),
	}
	if deps.Stripe != nil {
		gateways = append(gateways, payments.NewStripe(deps.API, deps.Stripe))
	}
	return payments.NewRegistry(gateways...)
}

// Start opens the first step with a new cart item
func (w *Wizard) Start(ctx context.Context) error {
	return w.sequencer.Start(ctx)
}

// Cart returns the wizard cart
func (w *Wizard) Cart() *cart.Cart {
	return w.cart
}

// CurrentStepID returns the current step
func (w *Wizard) CurrentStepID() string {
	return w.sequencer.CurrentStepID()
}

// currentStep returns stepID if it is the current step
func (w *Wizard) currentStep(stepID string) (wizard.Step, error) {
	step, err := w.sequencer.Step(stepID)
	if err != nil {
		return nil, err
	}
	if stepID != w.sequencer.CurrentStepID() {
		return nil, fmt.Errorf("%w: %s", ErrStepNotCurrent, stepID)
	}
	return step, nil
}

// SetProperties updates the current step's properties. Values outside the
// allowed options are ignored.
func (w *Wizard) SetProperties(ctx context.Context, stepID string, values map[string]interface{}) error {
	step, err := w.currentStep(stepID)
	if err != nil {
		return err
	}
	return w.sequencer.Run(ctx, func(context.Context) error {
		step.SetProperties(values)
		return nil
	})
}

// Submit submits the current step; false means the step stayed
func (w *Wizard) Submit(ctx context.Context, stepID string) (bool, error) {
	step, err := w.currentStep(stepID)
	if err != nil {
		return false, err
	}

	submitted := false
	err = w.sequencer.Run(ctx, func(ctx context.Context) error {
		submitted = step.Submit(ctx)
		return nil
	})
	return submitted, err
}

// Dispatch handles a wizard event coming from the UI. step_next is a submit of
// the current step: the step validates its input and emits the event itself.
func (w *Wizard) Dispatch(ctx context.Context, event wizard.Event) error {
	if !event.IsValid() {
		return fmt.Errorf("%w: %q from %q", wizard.ErrInvalidEvent, event.Type, event.StepID)
	}
	if event.Type == wizard.EventStepNext {
		_, err := w.Submit(ctx, event.StepID)
		return err
	}
	return w.sequencer.Dispatch(ctx, event)
}

// AddItem starts one more cart item from the cart step
func (w *Wizard) AddItem(ctx context.Context) error {
	if _, err := w.currentStep(steps.StepCart); err != nil {
		return err
	}
	return w.sequencer.Run(ctx, func(context.Context) error {
		w.review.AddItem()
		return nil
	})
}

// RemoveItem drops an item from the cart step
func (w *Wizard) RemoveItem(ctx context.Context, itemID string) error {
	if _, err := w.currentStep(steps.StepCart); err != nil {
		return err
	}
	return w.sequencer.Run(ctx, func(context.Context) error {
		return w.review.RemoveItem(itemID)
	})
}

// ApplyCoupon applies code on the checkout step
func (w *Wizard) ApplyCoupon(ctx context.Context, code string) error {
	if _, err := w.currentStep(steps.StepCheckout); err != nil {
		return err
	}
	return w.checkout.ApplyCoupon(ctx, code)
}

// RemoveCoupon drops the coupon on the checkout step
func (w *Wizard) RemoveCoupon() error {
	if _, err := w.currentStep(steps.StepCheckout); err != nil {
		return err
	}
	w.checkout.RemoveCoupon()
	return nil
}

// ShowDates loads the time slots of another date range on the period step
func (w *Wizard) ShowDates(ctx context.Context, from, to time.Time) error {
	if _, err := w.currentStep(steps.StepPeriod); err != nil {
		return err
	}
	return w.period.SetVisibleRange(ctx, from, to)
}

// State returns the wizard snapshot for the UI
func (w *Wizard) State() State {
	stepList := w.sequencer.Steps()
	states := make([]wizard.State, 0, len(stepList))
	for _, step := range stepList {
		states = append(states, step.State())
	}

	return State{
		CurrentStep: w.sequencer.CurrentStepID(),
		CanGoBack:   w.sequencer.CanGoBack(),
		Steps:       states,
		Order:       w.cart.GetOrder(),
		Currency:    w.settings.Currency,
	}
}

// Snapshot returns what is needed to restore the wizard
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{
		Payload:  w.cart.ToPayload(),
		CartHash: w.cart.GetHash(cart.CartHashAll),
		StepID:   w.sequencer.CurrentStepID(),
	}
}

// Close drops the wizard state
func (w *Wizard) Close() {
	for _, step := range w.sequencer.Steps() {
		step.Hide()
		step.Reset()
	}
	w.cart.Reset()
}
