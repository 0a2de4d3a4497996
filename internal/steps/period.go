package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

const (
	propDate = "date"
	propTime = "time"
)

// Period lets the customer pick a date and a time slot for the active item
type Period struct {
	wizard.Base

	cart     *cart.Cart
	api      API
	settings *domain.Settings
	clock    TimeProvider

	visible  types.DatePeriod
	slots    domain.TimeSlots
	slotsKey string
}

// NewPeriod creates the period step
func NewPeriod(c *cart.Cart, api API, settings *domain.Settings, clock TimeProvider) *Period {
	s := &Period{
		cart:     c,
		api:      api,
		settings: settings,
		clock:    clock,
	}
	s.Base = wizard.NewBase(StepPeriod, wizard.ContextCartItem, wizard.Schema{
		{Name: propDate, Type: wizard.TypeString, Default: ""},
		{Name: propTime, Type: wizard.TypeString, Default: ""},
	})
	s.Bind(s)
	return s
}

func (s *Period) OnLoad(ctx context.Context) error {
	today := types.DateOnly(s.clock.Now())
	s.visible = types.NewDatePeriod(today, today.AddDate(0, 0, s.settings.CalendarDays))

	if err := s.loadSlots(ctx); err != nil {
		return err
	}

	if item := s.cart.ActiveItem(); item != nil && item.HasPeriod() {
		s.SetProperties(map[string]interface{}{
			propDate: types.FormatDate(item.Date),
			propTime: item.Time.String(),
		})
	}
	return nil
}

// OnReload запрашивает слоты заново, только если изменились услуга, исполнители
// или другие позиции корзины
func (s *Period) OnReload(ctx context.Context) error {
	if s.currentSlotsKey() == s.slotsKey {
		return nil
	}

	s.ResetProperty(propDate)
	return s.loadSlots(ctx)
}

func (s *Period) OnReset() {
	s.slots = nil
	s.slotsKey = ""
}

// SetVisibleRange загружает слоты другого диапазона дат (листание календаря)
func (s *Period) SetVisibleRange(ctx context.Context, from, to time.Time) error {
	s.visible = types.NewDatePeriod(from, to)
	s.slotsKey = ""

	if err := s.loadSlots(ctx); err != nil {
		s.SetMessage(wizard.MessageFor(err))
		return err
	}
	s.keepValid()
	return nil
}

// others возвращает заполненные позиции корзины, кроме активной
func (s *Period) others(active *cart.CartItem) []*cart.CartItem {
	others := make([]*cart.CartItem, 0)
	for _, item := range s.cart.Items() {
		if item != active && item.IsSet() {
			others = append(others, item)
		}
	}
	return others
}

func (s *Period) currentSlotsKey() string {
	item := s.cart.ActiveItem()
	if item == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(item.GetHash(cart.HashAvailability))
	b.WriteString("|" + s.visible.String())
	for _, other := range s.others(item) {
		b.WriteString("|" + other.GetHash(cart.HashAll))
	}
	return b.String()
}

func (s *Period) loadSlots(ctx context.Context) error {
	item := s.cart.ActiveItem()
	if item == nil || item.Service == nil {
		return userError(ErrNoActiveItem, "Please select a service first.")
	}

	others := s.others(item)
	exclude := make([]cart.ItemPayload, 0, len(others))
	for _, other := range others {
		exclude = append(exclude, other.ToPayload())
	}

	slots, err := s.api.GetTimeSlots(ctx, bookingapi.TimeSlotsRequest{
		ServiceID:   item.ServiceID(),
		EmployeeIDs: item.EmployeeIDs(),
		LocationIDs: item.LocationIDs(),
		From:        s.visible.StartDate,
		To:          s.visible.EndDate,
		Capacity:    item.GetCapacity(),
		Exclude:     exclude,
	})
	if err != nil {
		return err
	}

	s.slots = filterCollisions(slots, others)
	s.slotsKey = s.currentSlotsKey()
	s.refreshOptions()

	return nil
}

// filterCollisions убирает слоты, в которые сотрудник уже занят другой позицией корзины
func filterCollisions(slots domain.TimeSlots, others []*cart.CartItem) domain.TimeSlots {
	if len(others) == 0 {
		return slots
	}

	filtered := make(domain.TimeSlots, len(slots))
	for date, periods := range slots {
		day, err := types.ParseDate(date)
		if err != nil {
			continue
		}

		filtered[date] = make(map[string][]domain.SlotResource, len(periods))
		for periodStr, resources := range periods {
			period, err := types.ParseTimePeriod(periodStr)
			if err != nil {
				continue
			}
			period.SetDate(day)

			free := make([]domain.SlotResource, 0, len(resources))
			for _, r := range resources {
				if !collides(r, period, others) {
					free = append(free, r)
				}
			}
			if len(free) > 0 {
				filtered[date][periodStr] = free
			}
		}
	}
	return filtered
}

func collides(r domain.SlotResource, period types.TimePeriod, others []*cart.CartItem) bool {
	for _, other := range others {
		if other.EmployeeID() != r.EmployeeID || !types.IsSameDay(other.Date, period.StartTime) {
			continue
		}
		if other.Time.IntersectsWith(period) {
			return true
		}
	}
	return false
}

func (s *Period) refreshOptions() {
	if s.slots == nil {
		return
	}
	s.SetOptions(propDate, stringOptions(s.slots.Dates()))
	s.SetOptions(propTime, stringOptions(s.slots.Periods(s.GetString(propDate))))
}

func (s *Period) keepValid() {
	for _, name := range []string{propDate, propTime} {
		value := s.GetString(name)
		if value != "" && !hasOption(s.Options(name), value) {
			s.ResetProperty(name)
		}
	}
}

func (s *Period) AfterUpdate(name string, _, _ interface{}) {
	s.refreshOptions()
	if name == propDate {
		s.keepValid()
	}
}

func (s *Period) React() {}

func (s *Period) IsValidInput() bool {
	return s.slots.HasSlot(s.GetString(propDate), s.GetString(propTime))
}

func (s *Period) MaybeSubmit(context.Context) wizard.Outcome {
	item := s.cart.ActiveItem()
	if item == nil {
		return wizard.Reject("Please start a new booking.")
	}

	date, err := types.ParseDate(s.GetString(propDate))
	if err != nil {
		return wizard.Reject("Please select a date.")
	}
	period, err := types.ParseTimePeriod(s.GetString(propTime))
	if err != nil {
		return wizard.Reject("Please select a time.")
	}

	for _, r := range s.slots.Resources(s.GetString(propDate), s.GetString(propTime)) {
		employee := item.FindEmployee(r.EmployeeID)
		location := item.FindLocation(r.LocationID)
		if employee == nil || location == nil {
			continue
		}

		item.Employee = employee
		item.Location = location
		item.SetPeriod(date, period)
		return wizard.Proceed()
	}

	return wizard.Reject(fmt.Sprintf("%s is no longer available.", period.Format(types.RenderPublic, s.settings.TimeLayout)))
}

// PeriodView видимый диапазон и слоты по датам
type PeriodView struct {
	From  string              `json:"from"`
	To    string              `json:"to"`
	Slots map[string][]string `json:"slots"`
}

func (s *Period) Describe() interface{} {
	view := PeriodView{
		From:  types.FormatDate(s.visible.StartDate),
		To:    types.FormatDate(s.visible.EndDate),
		Slots: make(map[string][]string),
	}
	for _, date := range s.slots.Dates() {
		view.Slots[date] = s.slots.Periods(date)
	}
	return view
}
