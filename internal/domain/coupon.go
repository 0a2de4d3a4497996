package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// CouponStatus publication status of a coupon
type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
)

// DiscountType defines how a coupon amount is interpreted
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon represents a discount code
type Coupon struct {
	ID             int64
	Code           string
	Status         CouponStatus
	Type           DiscountType
	Amount         float64
	ExpirationDate *time.Time // last day the coupon can be applied
	MinDate        *time.Time // earliest booking date it covers
	MaxDate        *time.Time // latest booking date it covers
	ServiceIDs     []int64    // empty = every service
	UsageLimit     int        // 0 = unlimited
	UsageCount     int
}

// IsUsedUp returns true if the usage limit is reached
func (c *Coupon) IsUsedUp() bool {
	return c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit
}

// IsExpired returns true if now is after the expiration date
func (c *Coupon) IsExpired(now time.Time) bool {
	if c.ExpirationDate == nil {
		return false
	}
	return types.DateOnly(now).After(types.DateOnly(*c.ExpirationDate))
}

// IsActive returns true if the coupon can be applied at all right now
func (c *Coupon) IsActive(now time.Time) bool {
	return c.Status == CouponActive && !c.IsExpired(now) && !c.IsUsedUp()
}

// MatchesService returns true if the coupon covers serviceID
func (c *Coupon) MatchesService(serviceID int64) bool {
	if len(c.ServiceIDs) == 0 {
		return true
	}
	for _, id := range c.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// MatchesDate returns true if a booking on date falls into the coupon's date bounds
func (c *Coupon) MatchesDate(date time.Time) bool {
	d := types.DateOnly(date)
	if c.MinDate != nil && d.Before(types.DateOnly(*c.MinDate)) {
		return false
	}
	if c.MaxDate != nil && d.After(types.DateOnly(*c.MaxDate)) {
		return false
	}
	return true
}

// DiscountFor returns the discount for an item of itemPrice, never below
// zero and never above the price itself
func (c *Coupon) DiscountFor(itemPrice float64) float64 {
	if itemPrice <= 0 {
		return 0
	}

	var discount float64
	switch c.Type {
	case DiscountFixed:
		discount = c.Amount
	case DiscountPercentage:
		discount = itemPrice * c.Amount / 100
	}

	if discount < 0 {
		return 0
	}
	if discount > itemPrice {
		return itemPrice
	}
	return discount
}
