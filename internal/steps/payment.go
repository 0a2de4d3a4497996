package steps

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/payments"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	propGateway       = "gateway"
	propPaymentMethod = payments.FieldPaymentMethod
	propReturnURL     = payments.FieldReturnURL
)

// Payment lets the customer choose a gateway and pays for a draft booking
type Payment struct {
	wizard.Base

	cart     *cart.Cart
	api      API
	registry *payments.Registry
	settings *domain.Settings
	log      Logger

	gateways  []payments.Gateway
	draft     *draftBooking
	draftHash string
}

type draftBooking struct {
	bookingID int64
	paymentID int64
}

// NewPayment creates the payment step
func NewPayment(c *cart.Cart, api API, registry *payments.Registry, settings *domain.Settings, log Logger) *Payment {
	s := &Payment{
		cart:     c,
		api:      api,
		registry: registry,
		settings: settings,
		log:      log,
	}
	s.Base = wizard.NewBase(StepPayment, wizard.ContextCart, wizard.Schema{
		{Name: propGateway, Type: wizard.TypeString, Default: ""},
		{Name: propPaymentMethod, Type: wizard.TypeString, Default: ""},
		{Name: propReturnURL, Type: wizard.TypeString, Default: ""},
	})
	s.Bind(s)
	s.SetHidden(!settings.PaymentsEnabled)
	return s
}

func (s *Payment) OnLoad(ctx context.Context) error {
	if s.IsHidden() {
		return nil
	}

	ids := make([]string, 0)
	for _, g := range s.registry.Available(s.settings) {
		ids = append(ids, g.ID())
	}

	loaded, failed := s.registry.LoadAll(ctx, ids)
	failedIDs := make([]string, 0, len(failed))
	for id := range failed {
		failedIDs = append(failedIDs, id)
	}
	sort.Strings(failedIDs)
	for _, id := range failedIDs {
		s.log.Warn("Payment - OnLoad: gateway %s is unavailable: %v", id, failed[id])
	}

	s.gateways = loaded
	s.refreshGateways()
	return nil
}

func (s *Payment) OnReload(context.Context) error {
	if s.IsHidden() {
		return nil
	}
	s.refreshGateways()
	return nil
}

func (s *Payment) OnReset() {
	s.gateways = nil
	s.draft = nil
	s.draftHash = ""
	for _, g := range s.registry.All() {
		g.Disable()
	}
}

// refreshGateways оставляет только бесплатный шлюз, когда платить нечего
func (s *Payment) refreshGateways() {
	ids := make([]string, 0, len(s.gateways))
	for _, g := range s.available() {
		ids = append(ids, g.ID())
	}
	s.SetOptions(propGateway, stringOptions(ids))

	current := s.GetString(propGateway)
	if current != "" && hasOption(s.Options(propGateway), current) {
		return
	}

	switch {
	case len(ids) == 0:
		s.ResetProperty(propGateway)
	case hasOption(s.Options(propGateway), s.settings.DefaultGateway):
		s.SetProperty(propGateway, s.settings.DefaultGateway)
	default:
		s.SetProperty(propGateway, ids[0])
	}
}

func (s *Payment) available() []payments.Gateway {
	free := s.cart.GetToPayPrice() <= 0

	available := make([]payments.Gateway, 0, len(s.gateways))
	for _, g := range s.gateways {
		if (g.ID() == payments.GatewayFree) == free {
			available = append(available, g)
		}
	}
	return available
}

func (s *Payment) AfterUpdate(name string, value, _ interface{}) {
	switch name {
	case propGateway:
		for _, g := range s.gateways {
			if g.ID() == value {
				g.Enable()
				s.forwardInput(g)
			} else {
				g.Disable()
			}
		}
	case propPaymentMethod, propReturnURL:
		if g := s.selected(); g != nil {
			s.forwardInput(g)
		}
	}
}

func (s *Payment) forwardInput(g payments.Gateway) {
	g.SetInput(map[string]string{
		propPaymentMethod: s.GetString(propPaymentMethod),
		propReturnURL:     s.GetString(propReturnURL),
	})
}

func (s *Payment) React() {}

func (s *Payment) selected() payments.Gateway {
	id := s.GetString(propGateway)
	for _, g := range s.gateways {
		if g.ID() == id && g.IsEnabled() {
			return g
		}
	}
	return nil
}

func (s *Payment) IsValidInput() bool {
	if s.IsHidden() {
		return true
	}
	g := s.selected()
	return g != nil && g.IsValid(s.cart)
}

func (s *Payment) MaybeSubmit(context.Context) wizard.Outcome {
	if s.IsHidden() {
		s.cart.PaymentDetails = nil
		return wizard.Proceed()
	}

	if s.cart.IsEmpty() {
		return wizard.Reject("Your cart is empty.")
	}

	gateway := s.selected()
	return wizard.Await(func(ctx context.Context) error {
		draft, err := s.ensureDraft(ctx)
		if err != nil {
			return err
		}

		details, err := gateway.ProcessPayment(ctx, s.cart, payments.BookingDetails{
			BookingID: draft.bookingID,
			PaymentID: draft.paymentID,
			Currency:  s.settings.Currency,
		})
		if err != nil {
			s.log.Warn("Payment - MaybeSubmit: gateway %s failed for booking %d: %v", gateway.ID(), draft.bookingID, err)
			return err
		}

		s.cart.PaymentDetails = details
		return nil
	})
}

// ensureDraft создаёт черновик бронирования; при изменении заказа создаётся новый
func (s *Payment) ensureDraft(ctx context.Context) (*draftBooking, error) {
	hash := s.cart.GetHash(cart.CartHashOrder)
	if s.draft != nil && hash == s.draftHash {
		return s.draft, nil
	}

	created, err := s.api.CreateDraftBooking(ctx, s.cart.ToPayload())
	if err != nil {
		return nil, fmt.Errorf("create draft booking: %w", err)
	}

	s.draft = &draftBooking{bookingID: created.BookingID, paymentID: created.PaymentID}
	s.draftHash = hash
	return s.draft, nil
}

// PaymentView шлюзы и сумма к оплате
type PaymentView struct {
	Gateways []map[string]string `json:"gateways"`
	ToPay    float64             `json:"to_pay"`
	Currency string              `json:"currency"`
}

func (s *Payment) Describe() interface{} {
	available := s.available()
	views := make([]map[string]string, 0, len(available))
	for _, g := range available {
		views = append(views, g.Describe())
	}
	return PaymentView{
		Gateways: views,
		ToPay:    s.cart.GetToPayPrice(),
		Currency: s.settings.Currency,
	}
}
