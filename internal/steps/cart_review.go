package steps

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// CartReview lists the cart items. It is shown only when several items may be booked at once.
type CartReview struct {
	wizard.Base

	cart     *cart.Cart
	settings *domain.Settings
}

// NewCartReview creates the cart step
func NewCartReview(c *cart.Cart, settings *domain.Settings) *CartReview {
	s := &CartReview{cart: c, settings: settings}
	s.Base = wizard.NewBase(StepCart, wizard.ContextCart, wizard.Schema{})
	s.Bind(s)
	s.SetHidden(!settings.AllowMultibooking)
	return s
}

func (s *CartReview) OnLoad(context.Context) error {
	s.cart.TestCoupon()
	return nil
}

func (s *CartReview) OnReload(ctx context.Context) error {
	return s.OnLoad(ctx)
}

func (s *CartReview) OnReset() {}

func (s *CartReview) AfterUpdate(string, interface{}, interface{}) {}

func (s *CartReview) React() {}

func (s *CartReview) IsValidInput() bool {
	return s.cart.AllItemsSet()
}

func (s *CartReview) MaybeSubmit(context.Context) wizard.Outcome {
	return wizard.Proceed()
}

// AddItem starts one more booking item
func (s *CartReview) AddItem() {
	s.Emit(wizard.EventStepNew)
}

// RemoveItem drops an item, repairs the coupon and starts over when the cart becomes empty
func (s *CartReview) RemoveItem(itemID string) error {
	if s.cart.RemoveItem(itemID) == nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	s.cart.TestCoupon()

	if s.cart.IsEmpty() {
		s.Emit(wizard.EventStepNew)
	}
	return nil
}

// ItemView one cart line for display
type ItemView struct {
	ItemID   string  `json:"item_id"`
	Service  string  `json:"service"`
	Employee string  `json:"employee"`
	Location string  `json:"location"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

// CartView позиции и итог корзины
type CartView struct {
	Items []ItemView `json:"items"`
	Order cart.Order `json:"order"`
}

func itemViews(c *cart.Cart, timeLayout string) []ItemView {
	views := make([]ItemView, 0, c.ItemsCount())
	for _, item := range c.Items() {
		v := ItemView{
			ItemID:   item.ItemID,
			Date:     types.FormatDate(item.Date),
			Capacity: item.GetCapacity(),
			Price:    item.GetPrice(),
		}
		if item.Service != nil {
			v.Service = item.Service.Name
		}
		if item.Employee != nil {
			v.Employee = item.Employee.Name
		}
		if item.Location != nil {
			v.Location = item.Location.Name
		}
		if item.Time != nil {
			v.Time = item.Time.Format(types.RenderPublic, timeLayout)
		}
		views = append(views, v)
	}
	return views
}

func (s *CartReview) Describe() interface{} {
	return CartView{
		Items: itemViews(s.cart, s.settings.TimeLayout),
		Order: s.cart.GetOrder(),
	}
}
