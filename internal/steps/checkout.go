package steps

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	propFirstName     = "first_name"
	propLastName      = "last_name"
	propEmail         = "email"
	propPhone         = "phone"
	propNotes         = "notes"
	propCreateAccount = "create_account"
)

var validate = validator.New()

// customerInput правила проверки данных покупателя
type customerInput struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,max=32"`
	Notes     string `validate:"max=500"`
}

// Checkout collects the customer details and the coupon
type Checkout struct {
	wizard.Base

	cart     *cart.Cart
	api      API
	settings *domain.Settings
}

// NewCheckout creates the checkout step
func NewCheckout(c *cart.Cart, api API, settings *domain.Settings) *Checkout {
	s := &Checkout{cart: c, api: api, settings: settings}
	s.Base = wizard.NewBase(StepCheckout, wizard.ContextCart, wizard.Schema{
		{Name: propFirstName, Type: wizard.TypeString, Default: ""},
		{Name: propLastName, Type: wizard.TypeString, Default: ""},
		{Name: propEmail, Type: wizard.TypeString, Default: ""},
		{Name: propPhone, Type: wizard.TypeString, Default: ""},
		{Name: propNotes, Type: wizard.TypeString, Default: ""},
		{Name: propCreateAccount, Type: wizard.TypeBool, Default: false},
	})
	s.Bind(s)
	return s
}

func (s *Checkout) OnLoad(context.Context) error {
	c := s.cart.Customer
	s.SetProperties(map[string]interface{}{
		propFirstName: c.FirstName,
		propLastName:  c.LastName,
		propEmail:     c.Email,
		propPhone:     c.Phone,
		propNotes:     c.Notes,
	})
	s.cart.TestCoupon()
	return nil
}

func (s *Checkout) OnReload(context.Context) error {
	s.cart.TestCoupon()
	return nil
}

func (s *Checkout) OnReset() {}

func (s *Checkout) AfterUpdate(string, interface{}, interface{}) {}

func (s *Checkout) React() {}

func (s *Checkout) input() customerInput {
	return customerInput{
		FirstName: strings.TrimSpace(s.GetString(propFirstName)),
		LastName:  strings.TrimSpace(s.GetString(propLastName)),
		Email:     strings.TrimSpace(s.GetString(propEmail)),
		Phone:     strings.TrimSpace(s.GetString(propPhone)),
		Notes:     s.GetString(propNotes),
	}
}

func (s *Checkout) IsValidInput() bool {
	if !s.cart.AllItemsSet() {
		return false
	}

	in := s.input()
	if s.settings.PhoneRequired && in.Phone == "" {
		return false
	}
	return validate.Struct(in) == nil
}

func (s *Checkout) MaybeSubmit(context.Context) wizard.Outcome {
	in := s.input()
	s.cart.Customer = cart.CustomerDetails{
		ID:        s.cart.Customer.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Notes:     in.Notes,
	}

	if !s.GetBool(propCreateAccount) || !s.settings.AllowAccountCreation || s.cart.Customer.ID != 0 {
		return wizard.Proceed()
	}

	return wizard.Await(func(ctx context.Context) error {
		customer, err := s.api.CreateCustomer(ctx, bookingapi.CustomerRequest{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Phone:     in.Phone,
		})
		if err != nil {
			return err
		}
		s.cart.Customer.ID = customer.ID
		return nil
	})
}

// ApplyCoupon finds the coupon and applies it when it covers at least one item
func (s *Checkout) ApplyCoupon(ctx context.Context, code string) error {
	err := s.applyCoupon(ctx, strings.TrimSpace(code))
	if err != nil {
		s.SetMessage(wizard.MessageFor(err))
	} else {
		s.SetMessage("")
	}
	return err
}

func (s *Checkout) applyCoupon(ctx context.Context, code string) error {
	if !s.settings.AllowCoupons {
		return userError(ErrCouponsDisabled, "Coupons are not accepted.")
	}
	if code == "" || len(code) > domain.MaxCouponCodeSize {
		return userError(ErrInvalidCoupon, "Coupon code is not valid.")
	}

	coupon, err := s.api.FindCoupon(ctx, code)
	if errors.Is(err, bookingapi.ErrNotFound) {
		return userError(ErrInvalidCoupon, "Coupon code is not valid.")
	}
	if err != nil {
		return err
	}

	if !cart.IsCouponApplicable(coupon, s.cart) {
		return userError(ErrCouponNotApplicable, "Coupon is not applicable to your booking.")
	}

	s.cart.SetCoupon(coupon)
	return nil
}

// RemoveCoupon drops the applied coupon
func (s *Checkout) RemoveCoupon() {
	s.cart.RemoveCoupon()
	s.SetMessage("")
}

// CheckoutView заказ и флаги формы
type CheckoutView struct {
	Order                cart.Order `json:"order"`
	Currency             string     `json:"currency"`
	AllowCoupons         bool       `json:"allow_coupons"`
	AllowAccountCreation bool       `json:"allow_account_creation"`
	PhoneRequired        bool       `json:"phone_required"`
}

func (s *Checkout) Describe() interface{} {
	return CheckoutView{
		Order:                s.cart.GetOrder(),
		Currency:             s.settings.Currency,
		AllowCoupons:         s.settings.AllowCoupons,
		AllowAccountCreation: s.settings.AllowAccountCreation,
		PhoneRequired:        s.settings.PhoneRequired,
	}
}
