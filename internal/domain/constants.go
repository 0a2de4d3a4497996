package domain

// Default capacity values
const (
	DefaultMinCapacity = 1
	DefaultMaxCapacity = 1
)

// Default settings values
const (
	DefaultCurrency     = "USD"
	DefaultTimeLayout   = "15:04"
	DefaultCalendarDays = 60
)

// Business validation constants
const (
	MaxNotesLength    = 500
	MaxNameLength     = 100
	MaxCouponCodeSize = 64
)

// Entity names used by the generic REST endpoints (GET /{entity}s?id=...)
const (
	EntityService  = "service"
	EntityEmployee = "employee"
	EntityLocation = "location"
	EntitySchedule = "schedule"
	EntityCoupon   = "coupon"
)

// ActiveStatuses statuses of reservations that occupy a time slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusDraft,
}
