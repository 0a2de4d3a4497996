package steps

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

// Booking finalizes the booking when it is shown and displays the result
type Booking struct {
	wizard.Base

	cart     *cart.Cart
	api      API
	settings *domain.Settings
	log      Logger

	result     *bookingapi.BookingResult
	resultHash string
	summary    []ItemView
	order      cart.Order
}

// NewBooking creates the final step
func NewBooking(c *cart.Cart, api API, settings *domain.Settings, log Logger) *Booking {
	s := &Booking{cart: c, api: api, settings: settings, log: log}
	s.Base = wizard.NewBase(StepBooking, wizard.ContextCart, wizard.Schema{})
	s.Bind(s)
	return s
}

func (s *Booking) OnLoad(ctx context.Context) error {
	return s.finalize(ctx)
}

// OnReload отправляет бронирование повторно, только если корзина изменилась
func (s *Booking) OnReload(ctx context.Context) error {
	if s.result != nil && !s.cart.DidChange(s.resultHash, cart.CartHashAll) {
		return nil
	}
	return s.finalize(ctx)
}

func (s *Booking) finalize(ctx context.Context) error {
	s.result = nil
	if s.cart.IsEmpty() {
		return userError(ErrEmptyCart, "Your cart is empty.")
	}

	hash := s.cart.GetHash(cart.CartHashAll)
	result, err := s.api.CreateBooking(ctx, s.cart.ToPayload())
	if err != nil {
		s.log.Error("Booking - finalize: %v", err)
		return fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking - finalize: booking %d created with status %s", result.BookingID, result.Status)
	s.result = result
	s.resultHash = hash
	s.summary = itemViews(s.cart, s.settings.TimeLayout)
	s.order = s.cart.GetOrder()
	return nil
}

func (s *Booking) OnReset() {
	s.result = nil
	s.resultHash = ""
	s.summary = nil
	s.order = cart.Order{}
}

func (s *Booking) AfterUpdate(string, interface{}, interface{}) {}

func (s *Booking) React() {}

func (s *Booking) IsValidInput() bool {
	return s.result != nil
}

// MaybeSubmit starts a new booking. The step_next that follows comes from a
// step that is no longer current and is dropped.
func (s *Booking) MaybeSubmit(context.Context) wizard.Outcome {
	s.StartNewBooking()
	return wizard.Proceed()
}

// StartNewBooking clears the wizard for the next booking
func (s *Booking) StartNewBooking() {
	s.Emit(wizard.EventResetBooking)
}

// Result returns the created booking, nil until finalized
func (s *Booking) Result() *bookingapi.BookingResult {
	return s.result
}

// BookingView итог оформления
type BookingView struct {
	BookingID int64      `json:"booking_id,omitempty"`
	Status    string     `json:"status,omitempty"`
	Message   string     `json:"message,omitempty"`
	Items     []ItemView `json:"items,omitempty"`
	Order     cart.Order `json:"order"`
	Currency  string     `json:"currency"`
}

func (s *Booking) Describe() interface{} {
	view := BookingView{
		Items:    s.summary,
		Order:    s.order,
		Currency: s.settings.Currency,
	}
	if s.result != nil {
		view.BookingID = s.result.BookingID
		view.Status = s.result.Status
		view.Message = s.result.Message
	}
	return view
}
