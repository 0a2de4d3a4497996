package bookingapi

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
)

// ErrorResponse тело ошибки сервера
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SettingsDTO ответ GET /settings
type SettingsDTO struct {
	Currency             string   `json:"currency"`
	TimeFormat           string   `json:"time_format"`
	AllowMultibooking    bool     `json:"allow_multibooking"`
	AllowCoupons         bool     `json:"allow_coupons"`
	AllowAccountCreation bool     `json:"allow_account_creation"`
	PhoneRequired        bool     `json:"phone_required"`
	PaymentsEnabled      bool     `json:"payments_enabled"`
	EnabledGateways      []string `json:"enabled_gateways"`
	DefaultGateway       string   `json:"default_gateway"`
	CalendarDays         int      `json:"calendar_days"`
}

// VariationDTO вариация услуги для сотрудника. Price nil: цена услуги.
type VariationDTO struct {
	EmployeeID  int64    `json:"employee_id"`
	Price       *float64 `json:"price"`
	Duration    int      `json:"duration"`
	MinCapacity int      `json:"min_capacity"`
	MaxCapacity int      `json:"max_capacity"`
}

// ServiceDTO услуга
type ServiceDTO struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Categories    []string       `json:"categories"`
	Price         float64        `json:"price"`
	Duration      int            `json:"duration"`
	BufferBefore  int            `json:"buffer_before"`
	BufferAfter   int            `json:"buffer_after"`
	LeadTime      int            `json:"lead_time"`
	MinCapacity   int            `json:"min_capacity"`
	MaxCapacity   int            `json:"max_capacity"`
	MultiplyPrice bool           `json:"multiply_price"`
	DepositType   string         `json:"deposit_type"`
	DepositAmount float64        `json:"deposit_amount"`
	Variations    []VariationDTO `json:"variations"`
}

// EmployeeDTO сотрудник
type EmployeeDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ScheduleID int64  `json:"schedule_id"`
}

// LocationDTO локация
type LocationDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WorkingHoursDTO рабочий период в локации
type WorkingHoursDTO struct {
	LocationID int64  `json:"location_id"`
	Time       string `json:"time"` // HH:MM - HH:MM
}

// CustomWorkdayDTO дополнительный рабочий день
type CustomWorkdayDTO struct {
	Date       string `json:"date"`
	LocationID int64  `json:"location_id"`
	Time       string `json:"time"`
}

// ScheduleDTO расписание сотрудника; working_hours по дням недели ("monday", ...)
type ScheduleDTO struct {
	ID             int64                        `json:"id"`
	EmployeeID     int64                        `json:"employee_id"`
	WorkingHours   map[string][]WorkingHoursDTO `json:"working_hours"`
	DaysOff        []string                     `json:"days_off"` // Y-m-d - Y-m-d
	CustomWorkdays []CustomWorkdayDTO           `json:"custom_workdays"`
}

// CouponDTO купон
type CouponDTO struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Status         string  `json:"status"`
	Type           string  `json:"type"`
	Amount         float64 `json:"amount"`
	ExpirationDate string  `json:"expiration_date"`
	MinDate        string  `json:"min_date"`
	MaxDate        string  `json:"max_date"`
	ServiceIDs     []int64 `json:"service_ids"`
	UsageLimit     int     `json:"usage_limit"`
	UsageCount     int     `json:"usage_count"`
}

// ReservationDTO резервация
type ReservationDTO struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"booking_id"`
	ServiceID  int64  `json:"service_id"`
	EmployeeID int64  `json:"employee_id"`
	LocationID int64  `json:"location_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Capacity   int    `json:"capacity"`
	Status     string `json:"status"`
}

// TimeSlotsDTO ответ GET /calendar/time: дата -> период -> пары [employee_id, location_id]
type TimeSlotsDTO map[string]map[string][][2]int64

// TimeSlotsRequest фильтр для GET /calendar/time
type TimeSlotsRequest struct {
	ServiceID   int64
	EmployeeIDs []int64
	LocationIDs []int64
	From        time.Time
	To          time.Time
	Capacity    int
	// Exclude слоты, уже занятые другими позициями корзины
	Exclude []cart.ItemPayload
}

// BookingResult ответ POST /bookings
type BookingResult struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// DraftBooking ответ POST /bookings/draft
type DraftBooking struct {
	BookingID int64 `json:"booking_id"`
	PaymentID int64 `json:"payment_id"`
}

// PreparePaymentRequest тело POST /payments/prepare
type PreparePaymentRequest struct {
	GatewayID string  `json:"gateway_id"`
	BookingID int64   `json:"booking_id"`
	PaymentID int64   `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// PreparedPayment ответ POST /payments/prepare
type PreparedPayment struct {
	PaymentID    int64  `json:"payment_id"`
	IntentID     string `json:"intent_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
	ApprovalURL  string `json:"approval_url,omitempty"`
}

// CustomerRequest тело POST /customers/create
type CustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Customer ответ POST /customers/create
type Customer struct {
	ID int64 `json:"id"`
}
