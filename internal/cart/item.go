package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// CartItem is one prospective booking: service + employee + location + date + time + capacity.
// Employee and Location stay nil while the customer accepts "any"; the candidates
// then live in AvailableEmployees/AvailableLocations until a time slot is picked.
type CartItem struct {
	ItemID             string
	Service            *domain.Service
	Employee           *domain.Employee
	Location           *domain.Location
	AvailableEmployees []*domain.Employee
	AvailableLocations []*domain.Location
	Date               time.Time
	Time               *types.TimePeriod
	Capacity           int
}

// NewCartItem creates an empty item; an empty itemID gets a generated one.
func NewCartItem(itemID string) *CartItem {
	if itemID == "" {
		itemID = uuid.NewString()
	}
	return &CartItem{ItemID: itemID}
}

// IsSet returns true when service, employee, location, date and time are all chosen
func (i *CartItem) IsSet() bool {
	return i.Service != nil &&
		i.Employee != nil &&
		i.Location != nil &&
		!i.Date.IsZero() &&
		i.Time != nil
}

// HasPeriod returns true if date and time are chosen
func (i *CartItem) HasPeriod() bool {
	return !i.Date.IsZero() && i.Time != nil
}

// ServiceID returns the chosen service ID or 0
func (i *CartItem) ServiceID() int64 {
	if i.Service == nil {
		return 0
	}
	return i.Service.ID
}

// EmployeeID returns the chosen employee ID or 0
func (i *CartItem) EmployeeID() int64 {
	if i.Employee == nil {
		return 0
	}
	return i.Employee.ID
}

// LocationID returns the chosen location ID or 0
func (i *CartItem) LocationID() int64 {
	if i.Location == nil {
		return 0
	}
	return i.Location.ID
}

// EmployeeIDs returns the chosen employee or, if none, all candidates
func (i *CartItem) EmployeeIDs() []int64 {
	if i.Employee != nil {
		return []int64{i.Employee.ID}
	}
	return domain.EmployeeIDs(i.AvailableEmployees)
}

// LocationIDs returns the chosen location or, if none, all candidates
func (i *CartItem) LocationIDs() []int64 {
	if i.Location != nil {
		return []int64{i.Location.ID}
	}
	return domain.LocationIDs(i.AvailableLocations)
}

// GetCapacity returns the capacity, falling back to the service minimum
func (i *CartItem) GetCapacity() int {
	if i.Capacity > 0 {
		return i.Capacity
	}
	if i.Service != nil {
		return i.Service.GetMinCapacity(i.EmployeeID())
	}
	return domain.DefaultMinCapacity
}

// GetPrice returns the price of the item, 0 without a service
func (i *CartItem) GetPrice() float64 {
	if i.Service == nil {
		return 0
	}
	return i.Service.GetPrice(i.EmployeeID(), i.Capacity)
}

// GetDeposit returns the upfront amount of the item
func (i *CartItem) GetDeposit() float64 {
	if i.Service == nil {
		return 0
	}
	return i.Service.GetDeposit(i.EmployeeID(), i.Capacity)
}

// SetService sets the service; a changed availability drops the chosen period
func (i *CartItem) SetService(service *domain.Service) {
	i.keepPeriodIfAvailable(func() {
		i.Service = service
	})
}

// SetEmployee sets the chosen employee (nil for "any") and the candidates
func (i *CartItem) SetEmployee(employee *domain.Employee, candidates []*domain.Employee) {
	i.keepPeriodIfAvailable(func() {
		i.Employee = employee
		i.AvailableEmployees = candidates
	})
}

// SetLocation sets the chosen location (nil for "any") and the candidates
func (i *CartItem) SetLocation(location *domain.Location, candidates []*domain.Location) {
	i.keepPeriodIfAvailable(func() {
		i.Location = location
		i.AvailableLocations = candidates
	})
}

func (i *CartItem) keepPeriodIfAvailable(update func()) {
	hash := i.GetHash(HashAvailability)
	update()
	if i.DidChange(hash, HashAvailability) {
		i.ClearPeriod()
	}
}

// SetPeriod sets the booking date and the time period rebased onto that date
func (i *CartItem) SetPeriod(date time.Time, period types.TimePeriod) {
	i.Date = types.DateOnly(date)
	p := period.Clone()
	p.SetDate(i.Date)
	i.Time = &p
}

// ClearPeriod drops the chosen date and time
func (i *CartItem) ClearPeriod() {
	i.Date = time.Time{}
	i.Time = nil
}

// FindEmployee returns the candidate with id, or the chosen employee if it matches
func (i *CartItem) FindEmployee(id int64) *domain.Employee {
	if i.Employee != nil && i.Employee.ID == id {
		return i.Employee
	}
	for _, e := range i.AvailableEmployees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FindLocation returns the candidate with id, or the chosen location if it matches
func (i *CartItem) FindLocation(id int64) *domain.Location {
	if i.Location != nil && i.Location.ID == id {
		return i.Location
	}
	for _, l := range i.AvailableLocations {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// ToPayload converts the item to the backend wire shape
func (i *CartItem) ToPayload() ItemPayload {
	payload := ItemPayload{
		ServiceID:  i.ServiceID(),
		EmployeeID: i.EmployeeID(),
		LocationID: i.LocationID(),
		Date:       types.FormatDate(i.Date),
		Capacity:   i.GetCapacity(),
	}
	if i.Time != nil {
		payload.Time = i.Time.String()
	}
	return payload
}

// GetHash returns a content digest over the selected fields
func (i *CartItem) GetHash(fields ItemHashFields) string {
	return digest(i.snapshot(fields))
}

// DidChange returns true if the selected fields no longer match hash
func (i *CartItem) DidChange(hash string, fields ItemHashFields) bool {
	return i.GetHash(fields) != hash
}

func (i *CartItem) snapshot(fields ItemHashFields) interface{} {
	ids := struct {
		ServiceID  int64 `json:"service_id"`
		EmployeeID int64 `json:"employee_id"`
		LocationID int64 `json:"location_id"`
	}{i.ServiceID(), i.EmployeeID(), i.LocationID()}

	period := struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}{Date: types.FormatDate(i.Date)}
	if i.Time != nil {
		period.Time = i.Time.String()
	}

	availability := struct {
		ServiceID   int64   `json:"service_id"`
		EmployeeIDs []int64 `json:"employee_ids"`
		LocationIDs []int64 `json:"location_ids"`
		Capacity    int     `json:"capacity"`
	}{i.ServiceID(), i.availableEmployeeIDs(), i.availableLocationIDs(), i.GetCapacity()}

	switch fields {
	case HashIDs:
		return ids
	case HashPeriod:
		return period
	case HashAvailability:
		return availability
	default:
		return struct {
			ItemID       string      `json:"item_id"`
			IDs          interface{} `json:"ids"`
			Period       interface{} `json:"period"`
			Availability interface{} `json:"availability"`
		}{i.ItemID, ids, period, availability}
	}
}

// availableEmployeeIDs prefers the candidate list, so picking one of the
// candidates for a time slot does not count as an availability change
func (i *CartItem) availableEmployeeIDs() []int64 {
	if len(i.AvailableEmployees) > 0 {
		return domain.EmployeeIDs(i.AvailableEmployees)
	}
	return i.EmployeeIDs()
}

func (i *CartItem) availableLocationIDs() []int64 {
	if len(i.AvailableLocations) > 0 {
		return domain.LocationIDs(i.AvailableLocations)
	}
	return i.LocationIDs()
}
