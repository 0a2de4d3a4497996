// Package cart holds the booking cart shared by every wizard step.
package cart

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/orderedmap"
)

// Cart is an ordered collection of items plus customer, payment and coupon state.
// ActiveItem, when set, always references an item present in the cart.
type Cart struct {
	items          *orderedmap.Map[string, *CartItem]
	activeItemID   string
	Customer       CustomerDetails
	PaymentDetails *PaymentDetails
	coupon         *domain.Coupon
	timeProvider   TimeProvider
}

// Option configures a Cart
type Option func(*Cart)

// WithTimeProvider overrides the clock used for coupon expiration checks
func WithTimeProvider(tp TimeProvider) Option {
	return func(c *Cart) {
		c.timeProvider = tp
	}
}

// New creates an empty cart
func New(opts ...Option) *Cart {
	c := &Cart{
		items:        orderedmap.New[string, *CartItem](),
		timeProvider: &RealTimeProvider{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateItem adds a new item and makes it active. This is the only way
// items enter the cart.
func (c *Cart) CreateItem(itemID string) *CartItem {
	item := NewCartItem(itemID)
	c.items.Push(item.ItemID, item)
	c.activeItemID = item.ItemID
	return item
}

// GetItem returns the item with itemID
func (c *Cart) GetItem(itemID string) (*CartItem, bool) {
	return c.items.Get(itemID)
}

// Items returns the items in display order
func (c *Cart) Items() []*CartItem {
	return c.items.Values()
}

// ItemsCount returns the number of items
func (c *Cart) ItemsCount() int {
	return c.items.Len()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return c.items.IsEmpty()
}

// AllItemsSet returns true if the cart is not empty and every item is fully set
func (c *Cart) AllItemsSet() bool {
	if c.IsEmpty() {
		return false
	}

	allSet := true
	c.items.ForEach(func(_ string, item *CartItem) bool {
		allSet = item.IsSet()
		return allSet
	})
	return allSet
}

// RemoveItem removes the item and returns it, nil if it was not in the cart.
// Removing the active item clears the active pointer.
func (c *Cart) RemoveItem(itemID string) *CartItem {
	item, ok := c.items.Remove(itemID)
	if !ok {
		return nil
	}
	if c.activeItemID == itemID {
		c.activeItemID = ""
	}
	return item
}

// ActiveItem returns the item being edited, nil if none
func (c *Cart) ActiveItem() *CartItem {
	if c.activeItemID == "" {
		return nil
	}
	item, ok := c.items.Get(c.activeItemID)
	if !ok {
		return nil
	}
	return item
}

// SetActiveItem makes itemID active; false if it is not in the cart
func (c *Cart) SetActiveItem(itemID string) bool {
	if !c.items.Has(itemID) {
		return false
	}
	c.activeItemID = itemID
	return true
}

// Coupon returns the applied coupon, nil if none
func (c *Cart) Coupon() *domain.Coupon {
	return c.coupon
}

// HasCoupon returns true if a coupon is applied
func (c *Cart) HasCoupon() bool {
	return c.coupon != nil
}

// SetCoupon applies coupon without checking it; use IsCouponApplicable first
func (c *Cart) SetCoupon(coupon *domain.Coupon) {
	c.coupon = coupon
}

// RemoveCoupon drops the applied coupon
func (c *Cart) RemoveCoupon() {
	c.coupon = nil
}

// TestCoupon re-checks the applied coupon and silently drops it when it no
// longer applies. Returns true if a coupon remains applied.
func (c *Cart) TestCoupon() bool {
	if c.coupon == nil {
		return false
	}
	if !IsCouponApplicable(c.coupon, c) {
		c.coupon = nil
		return false
	}
	return true
}

// GetSubtotalPrice returns the sum of item prices
func (c *Cart) GetSubtotalPrice() float64 {
	var subtotal float64
	for _, item := range c.items.Values() {
		subtotal += item.GetPrice()
	}
	return subtotal
}

// GetDiscountPrice returns the coupon discount, 0 without a coupon
func (c *Cart) GetDiscountPrice() float64 {
	if c.coupon == nil {
		return 0
	}
	return CalcDiscountAmount(c.coupon, c)
}

// GetTotalPrice returns subtotal minus discount
func (c *Cart) GetTotalPrice() float64 {
	total := c.GetSubtotalPrice() - c.GetDiscountPrice()
	if total < 0 {
		return 0
	}
	return total
}

// GetDepositPrice returns the upfront amount: the sum of item deposits capped by the total
func (c *Cart) GetDepositPrice() float64 {
	var deposit float64
	for _, item := range c.items.Values() {
		deposit += item.GetDeposit()
	}

	if total := c.GetTotalPrice(); deposit > total {
		return total
	}
	return deposit
}

// GetToPayPrice returns what the customer pays now
func (c *Cart) GetToPayPrice() float64 {
	return c.GetDepositPrice()
}

// Reset clears everything back to defaults
func (c *Cart) Reset() {
	c.items.Clear()
	c.activeItemID = ""
	c.Customer = CustomerDetails{}
	c.PaymentDetails = nil
	c.coupon = nil
}
