package cart

// CustomerDetails данные покупателя, заполняются на шаге оформления
type CustomerDetails struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes,omitempty"`
}

// FullName returns "first last" without extra spaces
func (c CustomerDetails) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// PaymentDetails данные об оплате: черновик бронирования и результат шлюза
type PaymentDetails struct {
	GatewayID string            `json:"gateway_id"`
	BookingID int64             `json:"booking_id,omitempty"`
	PaymentID int64             `json:"payment_id,omitempty"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// ItemPayload wire shape of one cart item
type ItemPayload struct {
	ServiceID  int64  `json:"service_id"`
	EmployeeID int64  `json:"employee_id"`
	LocationID int64  `json:"location_id"`
	Date       string `json:"date"` // 2006-01-02
	Time       string `json:"time"` // HH:MM - HH:MM
	Capacity   int    `json:"capacity"`
}

// Payload wire shape of the whole cart consumed by the backend
type Payload struct {
	Items          []ItemPayload   `json:"items"`
	Customer       CustomerDetails `json:"customer"`
	PaymentDetails *PaymentDetails `json:"payment_details,omitempty"`
	Coupon         string          `json:"coupon,omitempty"`
}

// Product one order line
type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderCoupon applied coupon as shown in the order
type OrderCoupon struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// Order derived snapshot of the cart; recomputed on every call
type Order struct {
	Products []Product       `json:"products"`
	Subtotal float64         `json:"subtotal"`
	Total    float64         `json:"total"`
	Customer CustomerDetails `json:"customer"`
	Coupon   *OrderCoupon    `json:"coupon,omitempty"`
	Deposit  float64         `json:"deposit"`
}

// ItemHashFields selects the item fields covered by a hash
type ItemHashFields string

const (
	HashAll          ItemHashFields = "all"
	HashIDs          ItemHashFields = "ids"
	HashPeriod       ItemHashFields = "period"
	HashAvailability ItemHashFields = "availability"
)

// CartHashFields selects the cart fields covered by a hash
type CartHashFields string

const (
	CartHashAll   CartHashFields = "all"
	CartHashItems CartHashFields = "items"
	CartHashOrder CartHashFields = "order"
)
