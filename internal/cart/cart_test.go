package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var today = time.Date(2030, time.January, 10, 9, 0, 0, 0, time.UTC)

func newTestCart() *Cart {
	return New(WithTimeProvider(fixedTime{now: today}))
}

func fillItem(item *CartItem, serviceID int64, price float64) {
	item.Service = &domain.Service{ID: serviceID, Name: "Massage", Price: price, MinCapacity: 1, MaxCapacity: 3}
	item.Employee = &domain.Employee{ID: 2, Name: "Anna"}
	item.Location = &domain.Location{ID: 1, Name: "Main"}
	item.SetPeriod(
		time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC),
		types.MustParseTimePeriod("10:00 - 11:00"),
	)
}

func TestCart_HappyPath(t *testing.T) {
	c := newTestCart()
	item := c.CreateItem("")

	require.NotEmpty(t, item.ItemID)
	assert.Same(t, item, c.ActiveItem())
	assert.False(t, item.IsSet())

	fillItem(item, 5, 30)
	assert.True(t, item.IsSet())

	items := c.ItemsPayload()
	require.Len(t, items, 1)
	assert.Equal(t, ItemPayload{
		ServiceID:  5,
		EmployeeID: 2,
		LocationID: 1,
		Date:       "2030-02-01",
		Time:       "10:00 - 11:00",
		Capacity:   1,
	}, items[0])
}

func TestCart_HashStability(t *testing.T) {
	c := newTestCart()
	item := c.CreateItem("a")
	fillItem(item, 5, 30)

	hash := c.GetHash(CartHashItems)
	assert.Equal(t, hash, c.GetHash(CartHashItems))
	assert.False(t, c.DidChange(hash, CartHashItems))

	item.Capacity = 2
	assert.True(t, c.DidChange(hash, CartHashItems), "item field changed")

	hash = c.GetHash(CartHashItems)
	c.CreateItem("b")
	assert.True(t, c.DidChange(hash, CartHashItems), "item added")
}

func TestCartItem_Hash(t *testing.T) {
	item := NewCartItem("a")
	fillItem(item, 5, 30)

	ids := item.GetHash(HashIDs)
	period := item.GetHash(HashPeriod)

	item.SetPeriod(item.Date, types.MustParseTimePeriod("12:00 - 13:00"))
	assert.False(t, item.DidChange(ids, HashIDs))
	assert.True(t, item.DidChange(period, HashPeriod))
}

func TestCartItem_SetEmployeeClearsPeriod(t *testing.T) {
	anna := &domain.Employee{ID: 2}
	bob := &domain.Employee{ID: 3}

	item := NewCartItem("")
	fillItem(item, 5, 30)
	item.SetEmployee(nil, []*domain.Employee{anna, bob})
	item.SetPeriod(time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC), types.MustParseTimePeriod("10:00 - 11:00"))

	// picking one of the candidates keeps the period
	item.Employee = anna
	hash := item.GetHash(HashAvailability)
	item.SetEmployee(anna, []*domain.Employee{anna, bob})
	assert.False(t, item.DidChange(hash, HashAvailability))
	assert.True(t, item.HasPeriod())

	item.SetEmployee(bob, []*domain.Employee{bob})
	assert.False(t, item.HasPeriod())
}

func TestCart_Prices(t *testing.T) {
	c := newTestCart()
	first := c.CreateItem("")
	fillItem(first, 5, 30)
	first.Service.DepositType = domain.DepositFixed
	first.Service.DepositAmount = 10

	second := c.CreateItem("")
	fillItem(second, 6, 20)

	assert.Equal(t, 50.0, c.GetSubtotalPrice())
	assert.Equal(t, 50.0, c.GetTotalPrice())
	assert.Equal(t, 30.0, c.GetDepositPrice(), "fixed deposit plus the full price of the second item")

	c.SetCoupon(&domain.Coupon{Code: "ALL", Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 100})
	assert.Equal(t, 50.0, c.GetDiscountPrice(), "discount never exceeds the subtotal")
	assert.Equal(t, 0.0, c.GetTotalPrice())
	assert.Equal(t, 0.0, c.GetToPayPrice())

	order := c.GetOrder()
	require.Len(t, order.Products, 2)
	assert.Equal(t, Product{Name: "Massage", Price: 30}, order.Products[0])
	require.NotNil(t, order.Coupon)
	assert.Equal(t, "ALL", order.Coupon.Code)
}

func TestCart_CouponDiscountCap(t *testing.T) {
	coupons := []*domain.Coupon{
		{Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 5},
		{Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 500},
		{Status: domain.CouponActive, Type: domain.DiscountPercentage, Amount: 30},
		{Status: domain.CouponActive, Type: domain.DiscountPercentage, Amount: 300},
		{Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 5, ServiceIDs: []int64{6}},
	}
	prices := []float64{0, 10, 45.5}

	for _, coupon := range coupons {
		c := newTestCart()
		for idx, price := range prices {
			fillItem(c.CreateItem(""), int64(5+idx), price)
		}

		for _, item := range c.Items() {
			assert.LessOrEqual(t, CalcDiscountForCartItem(coupon, item), item.GetPrice())
		}
		assert.LessOrEqual(t, CalcDiscountAmount(coupon, c), c.GetSubtotalPrice())
	}
}

func TestCart_CouponInvalidatedByItemRemoval(t *testing.T) {
	c := newTestCart()
	massage := c.CreateItem("")
	fillItem(massage, 5, 30)
	yoga := c.CreateItem("")
	fillItem(yoga, 7, 15)

	c.SetCoupon(&domain.Coupon{Code: "MASSAGE", Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 5, ServiceIDs: []int64{5}})
	require.True(t, c.TestCoupon())
	assert.Equal(t, 5.0, c.GetDiscountPrice())

	removed := c.RemoveItem(massage.ItemID)
	assert.Same(t, massage, removed)

	assert.False(t, c.TestCoupon())
	assert.False(t, c.HasCoupon())
	assert.Equal(t, 15.0, c.GetTotalPrice())
}

func TestCart_RemoveActiveItem(t *testing.T) {
	c := newTestCart()
	first := c.CreateItem("first")
	second := c.CreateItem("second")

	assert.Same(t, second, c.ActiveItem())
	assert.Nil(t, c.RemoveItem("missing"))

	c.RemoveItem(second.ItemID)
	assert.Nil(t, c.ActiveItem())

	assert.True(t, c.SetActiveItem(first.ItemID))
	assert.False(t, c.SetActiveItem(second.ItemID))
	assert.Same(t, first, c.ActiveItem())
}

func TestCart_ExpiredCouponIsNotApplicable(t *testing.T) {
	c := newTestCart()
	fillItem(c.CreateItem(""), 5, 30)

	yesterday := today.AddDate(0, 0, -1)
	coupon := &domain.Coupon{Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 5, ExpirationDate: &yesterday}
	assert.False(t, IsCouponApplicable(coupon, c))
}

func TestCart_Reset(t *testing.T) {
	c := newTestCart()
	fillItem(c.CreateItem(""), 5, 30)
	c.Customer.FirstName = "Jane"
	c.PaymentDetails = &PaymentDetails{GatewayID: "manual"}
	c.SetCoupon(&domain.Coupon{Code: "X"})

	c.Reset()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.ActiveItem())
	assert.Equal(t, CustomerDetails{}, c.Customer)
	assert.Nil(t, c.PaymentDetails)
	assert.False(t, c.HasCoupon())
}

type fakeResolver struct {
	services map[int64]*domain.Service
	coupons  map[string]*domain.Coupon
}

func (r *fakeResolver) Service(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *fakeResolver) Employee(_ context.Context, id int64) (*domain.Employee, error) {
	return &domain.Employee{ID: id}, nil
}

func (r *fakeResolver) Location(_ context.Context, id int64) (*domain.Location, error) {
	return &domain.Location{ID: id}, nil
}

func (r *fakeResolver) Coupon(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func TestRestore(t *testing.T) {
	resolver := &fakeResolver{
		services: map[int64]*domain.Service{5: {ID: 5, Price: 30, MinCapacity: 1, MaxCapacity: 2}},
		coupons:  map[string]*domain.Coupon{"FIVE": {Code: "FIVE", Status: domain.CouponActive, Type: domain.DiscountFixed, Amount: 5}},
	}

	payload := Payload{
		Items: []ItemPayload{
			{ServiceID: 5, EmployeeID: 2, LocationID: 1, Date: "2030-02-01", Time: "10:00 - 11:00", Capacity: 2},
		},
		Customer: CustomerDetails{FirstName: "Jane", Email: "jane@example.com"},
		Coupon:   "FIVE",
	}

	c, err := Restore(context.Background(), payload, resolver, WithTimeProvider(fixedTime{now: today}))
	require.NoError(t, err)

	assert.Equal(t, payload, c.ToPayload())
	assert.True(t, c.AllItemsSet())
	assert.Equal(t, 5.0, c.GetDiscountPrice())

	payload.Items[0].ServiceID = 99
	_, err = Restore(context.Background(), payload, resolver)
	assert.ErrorIs(t, err, ErrResolveEntity)

	payload.Items[0].ServiceID = 5
	payload.Items[0].Time = "bad"
	_, err = Restore(context.Background(), payload, resolver)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
