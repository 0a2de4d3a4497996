package cart

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Restore rebuilds a cart from a stored payload. Entities are loaded through
// resolver; a coupon that cannot be found or no longer applies is dropped.
func Restore(ctx context.Context, payload Payload, resolver EntityResolver, opts ...Option) (*Cart, error) {
	c := New(opts...)
	c.Customer = payload.Customer
	c.PaymentDetails = payload.PaymentDetails

	for _, p := range payload.Items {
		item := c.CreateItem("")
		if err := restoreItem(ctx, item, p, resolver); err != nil {
			return nil, err
		}
		item.Capacity = p.Capacity
	}

	if payload.Coupon != "" {
		coupon, err := resolver.Coupon(ctx, payload.Coupon)
		if err == nil && coupon != nil {
			c.SetCoupon(coupon)
			c.TestCoupon()
		}
	}

	return c, nil
}

func restoreItem(ctx context.Context, item *CartItem, p ItemPayload, resolver EntityResolver) error {
	var err error

	if p.ServiceID != 0 {
		if item.Service, err = resolver.Service(ctx, p.ServiceID); err != nil {
			return fmt.Errorf("%w: service %d: %v", ErrResolveEntity, p.ServiceID, err)
		}
	}
	if p.EmployeeID != 0 {
		if item.Employee, err = resolver.Employee(ctx, p.EmployeeID); err != nil {
			return fmt.Errorf("%w: employee %d: %v", ErrResolveEntity, p.EmployeeID, err)
		}
	}
	if p.LocationID != 0 {
		if item.Location, err = resolver.Location(ctx, p.LocationID); err != nil {
			return fmt.Errorf("%w: location %d: %v", ErrResolveEntity, p.LocationID, err)
		}
	}

	if p.Date == "" || p.Time == "" {
		return nil
	}

	date, err := types.ParseDate(p.Date)
	if err != nil {
		return fmt.Errorf("%w: item date: %v", ErrInvalidPayload, err)
	}
	period, err := types.ParseTimePeriod(p.Time)
	if err != nil {
		return fmt.Errorf("%w: item time: %v", ErrInvalidPayload, err)
	}
	item.SetPeriod(date, period)

	return nil
}
