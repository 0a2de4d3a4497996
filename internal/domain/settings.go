package domain

// Settings plugin-wide booking settings served by GET /settings
type Settings struct {
	Currency             string
	TimeLayout           string // Go time layout for public rendering
	AllowMultibooking    bool
	AllowCoupons         bool
	AllowAccountCreation bool
	PhoneRequired        bool
	PaymentsEnabled      bool
	EnabledGateways      []string
	DefaultGateway       string
	CalendarDays         int // how many days ahead the period step shows
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() *Settings {
	return &Settings{
		Currency:     DefaultCurrency,
		TimeLayout:   DefaultTimeLayout,
		CalendarDays: DefaultCalendarDays,
	}
}

// IsGatewayEnabled returns true if gatewayID is in the enabled list
func (s *Settings) IsGatewayEnabled(gatewayID string) bool {
	for _, id := range s.EnabledGateways {
		if id == gatewayID {
			return true
		}
	}
	return false
}
