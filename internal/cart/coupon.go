package cart

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// IsCouponApplicableForItem returns true if coupon covers the item. The item
// must be fully set and pass the service and date filters.
func IsCouponApplicableForItem(coupon *domain.Coupon, item *CartItem) bool {
	if coupon == nil || item == nil || !item.IsSet() {
		return false
	}
	return coupon.MatchesService(item.ServiceID()) && coupon.MatchesDate(item.Date)
}

// IsCouponApplicable returns true if coupon is active and covers at least one item
func IsCouponApplicable(coupon *domain.Coupon, c *Cart) bool {
	if coupon == nil || !coupon.IsActive(c.timeProvider.Now()) {
		return false
	}

	applicable := false
	c.items.ForEach(func(_ string, item *CartItem) bool {
		applicable = IsCouponApplicableForItem(coupon, item)
		return !applicable
	})
	return applicable
}

// CalcDiscountForCartItem returns the discount for one item; never more than the item price
func CalcDiscountForCartItem(coupon *domain.Coupon, item *CartItem) float64 {
	if !IsCouponApplicableForItem(coupon, item) {
		return 0
	}
	return coupon.DiscountFor(item.GetPrice())
}

// CalcDiscountAmount returns the total discount; never more than the cart subtotal
func CalcDiscountAmount(coupon *domain.Coupon, c *Cart) float64 {
	var discount float64
	for _, item := range c.items.Values() {
		discount += CalcDiscountForCartItem(coupon, item)
	}

	if subtotal := c.GetSubtotalPrice(); discount > subtotal {
		return subtotal
	}
	return discount
}
