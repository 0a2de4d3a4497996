package cart

// ItemsPayload returns the wire shape of every item in display order
func (c *Cart) ItemsPayload() []ItemPayload {
	items := make([]ItemPayload, 0, c.items.Len())
	for _, item := range c.items.Values() {
		items = append(items, item.ToPayload())
	}
	return items
}

// ToPayload returns the cart in the shape the backend consumes
func (c *Cart) ToPayload() Payload {
	payload := Payload{
		Items:          c.ItemsPayload(),
		Customer:       c.Customer,
		PaymentDetails: c.PaymentDetails,
	}
	if c.coupon != nil {
		payload.Coupon = c.coupon.Code
	}
	return payload
}

// GetOrder builds the order snapshot; it is recomputed on every call
func (c *Cart) GetOrder() Order {
	order := Order{
		Products: make([]Product, 0, c.items.Len()),
		Subtotal: c.GetSubtotalPrice(),
		Total:    c.GetTotalPrice(),
		Customer: c.Customer,
		Deposit:  c.GetDepositPrice(),
	}

	for _, item := range c.items.Values() {
		name := ""
		if item.Service != nil {
			name = item.Service.Name
		}
		order.Products = append(order.Products, Product{Name: name, Price: item.GetPrice()})
	}

	if c.coupon != nil {
		order.Coupon = &OrderCoupon{
			Code:   c.coupon.Code,
			Amount: c.GetDiscountPrice(),
		}
	}

	return order
}
