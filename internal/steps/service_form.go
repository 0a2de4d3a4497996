package steps

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	propCategory = "category"
	propService  = "service"
	propLocation = "location"
	propEmployee = "employee"
	propCapacity = "capacity"
)

// FormOptions preset values and visible selectors of the service form
type FormOptions struct {
	Category   string
	ServiceID  int64
	LocationID int64
	EmployeeID int64

	ShowCategory bool
	ShowService  bool
	ShowLocation bool
	ShowEmployee bool
}

// DefaultFormOptions shows every selector without presets
func DefaultFormOptions() FormOptions {
	return FormOptions{ShowCategory: true, ShowService: true, ShowLocation: true, ShowEmployee: true}
}

// ServiceForm lets the customer pick a service, location, employee and capacity
// for the active cart item. Employee and location 0 mean "any".
type ServiceForm struct {
	wizard.Base

	cart     *cart.Cart
	api      API
	entities Entities
	opts     FormOptions

	available domain.AvailableServices
	services  map[int64]*domain.Service
	employees map[int64]*domain.Employee
	locations map[int64]*domain.Location
}

// NewServiceForm creates the service form step
func NewServiceForm(c *cart.Cart, api API, entities Entities, opts FormOptions) *ServiceForm {
	s := &ServiceForm{
		cart:     c,
		api:      api,
		entities: entities,
		opts:     opts,
	}
	s.Base = wizard.NewBase(StepServiceForm, wizard.ContextCartItem, wizard.Schema{
		{Name: propCategory, Type: wizard.TypeString, Default: ""},
		{Name: propService, Type: wizard.TypeInteger, Default: 0},
		{Name: propLocation, Type: wizard.TypeInteger, Default: 0},
		{Name: propEmployee, Type: wizard.TypeInteger, Default: 0},
		{Name: propCapacity, Type: wizard.TypeInteger, Default: 0},
	})
	s.Bind(s)
	s.SetHidden(!opts.ShowCategory && !opts.ShowService && !opts.ShowLocation && !opts.ShowEmployee)
	return s
}

func (s *ServiceForm) OnLoad(ctx context.Context) error {
	if s.available == nil {
		if err := s.loadEntities(ctx); err != nil {
			return err
		}
	}

	s.refreshOptions()

	// Пресеты из настроек формы, затем значения уже заполненной позиции
	s.SetProperties(map[string]interface{}{
		propCategory: s.opts.Category,
		propService:  s.opts.ServiceID,
		propLocation: s.opts.LocationID,
		propEmployee: s.opts.EmployeeID,
	})

	if item := s.cart.ActiveItem(); item != nil && item.Service != nil {
		s.SetProperties(map[string]interface{}{
			propService:  item.ServiceID(),
			propLocation: item.LocationID(),
			propEmployee: item.EmployeeID(),
			propCapacity: item.Capacity,
		})
	}

	s.fitCapacity()
	return nil
}

func (s *ServiceForm) OnReload(context.Context) error {
	return nil
}

func (s *ServiceForm) OnReset() {}

func (s *ServiceForm) loadEntities(ctx context.Context) error {
	available, err := s.api.GetAvailableServices(ctx)
	if err != nil {
		return err
	}

	services, err := s.entities.FindServices(ctx, available.ServiceIDs())
	if err != nil {
		return err
	}
	employees, err := s.entities.FindEmployees(ctx, available.EmployeeIDsAll())
	if err != nil {
		return err
	}
	locations, err := s.entities.FindLocations(ctx, available.LocationIDsAll())
	if err != nil {
		return err
	}

	s.services = make(map[int64]*domain.Service, len(services))
	for _, v := range services {
		s.services[v.ID] = v
	}
	s.employees = make(map[int64]*domain.Employee, len(employees))
	for _, v := range employees {
		s.employees[v.ID] = v
	}
	s.locations = make(map[int64]*domain.Location, len(locations))
	for _, v := range locations {
		s.locations[v.ID] = v
	}

	// услуги, которых нет в репозитории, не предлагаем
	s.available = make(domain.AvailableServices, len(available))
	for id, employees := range available {
		if _, ok := s.services[id]; ok {
			s.available[id] = employees
		}
	}

	return nil
}

func (s *ServiceForm) service() *domain.Service {
	return s.services[int64(s.GetInt(propService))]
}

func (s *ServiceForm) refreshOptions() {
	if s.available == nil {
		return
	}

	serviceID := int64(s.GetInt(propService))
	employeeID := int64(s.GetInt(propEmployee))
	locationID := int64(s.GetInt(propLocation))

	s.SetOptions(propCategory, stringOptions(serviceCategories(s.services)))

	category := s.GetString(propCategory)
	serviceIDs := make([]int64, 0, len(s.available))
	for _, id := range s.available.ServiceIDs() {
		if s.services[id].InCategory(category) {
			serviceIDs = append(serviceIDs, id)
		}
	}
	s.SetOptions(propService, idOptions(serviceIDs))

	if serviceID == 0 {
		s.SetOptions(propLocation, idOptions(s.available.LocationIDsAll()))
		s.SetOptions(propEmployee, idOptions(s.available.EmployeeIDsAll()))
		s.SetOptions(propCapacity, nil)
		return
	}

	s.SetOptions(propLocation, idOptions(s.available.LocationIDs(serviceID, employeeID)))
	s.SetOptions(propEmployee, idOptions(s.available.EmployeeIDs(serviceID, locationID)))
	if service := s.service(); service != nil {
		s.SetOptions(propCapacity, intRangeOptions(service.GetCapacityRange(employeeID)))
	}
}

// keepValid сбрасывает значение, которого больше нет среди вариантов
func (s *ServiceForm) keepValid(name string) {
	value := s.GetProperty(name)
	if wizard.IsEmptyValue(value) {
		return
	}
	if !hasOption(s.Options(name), value) {
		s.ResetProperty(name)
	}
}

// fitCapacity ставит минимальную вместимость, если текущая вне диапазона
func (s *ServiceForm) fitCapacity() {
	service := s.service()
	if service == nil {
		s.ResetProperty(propCapacity)
		return
	}
	if !hasOption(s.Options(propCapacity), s.GetInt(propCapacity)) {
		s.SetProperty(propCapacity, service.GetMinCapacity(int64(s.GetInt(propEmployee))))
	}
}

func (s *ServiceForm) AfterUpdate(name string, _, _ interface{}) {
	s.refreshOptions()

	switch name {
	case propCategory:
		s.keepValid(propService)
	case propService:
		s.keepValid(propLocation)
		s.keepValid(propEmployee)
		s.fitCapacity()
	case propLocation:
		s.keepValid(propEmployee)
	case propEmployee:
		s.keepValid(propLocation)
		s.fitCapacity()
	}
}

func (s *ServiceForm) React() {
	s.refreshOptions()
}

func (s *ServiceForm) IsValidInput() bool {
	service := s.service()
	if service == nil {
		return false
	}

	employeeID := int64(s.GetInt(propEmployee))
	locationID := int64(s.GetInt(propLocation))
	if !s.available.Has(service.ID, employeeID, locationID) {
		return false
	}

	capacity := s.GetInt(propCapacity)
	return capacity >= service.GetMinCapacity(employeeID) && capacity <= service.GetMaxCapacity(employeeID)
}

func (s *ServiceForm) MaybeSubmit(context.Context) wizard.Outcome {
	item := s.cart.ActiveItem()
	if item == nil {
		return wizard.Reject("Please start a new booking.")
	}

	service := s.service()
	employeeID := int64(s.GetInt(propEmployee))
	locationID := int64(s.GetInt(propLocation))

	employees := make([]*domain.Employee, 0)
	for _, id := range s.available.EmployeeIDs(service.ID, locationID) {
		if e, ok := s.employees[id]; ok && (employeeID == 0 || id == employeeID) {
			employees = append(employees, e)
		}
	}
	locations := make([]*domain.Location, 0)
	for _, id := range s.available.LocationIDs(service.ID, employeeID) {
		if l, ok := s.locations[id]; ok && (locationID == 0 || id == locationID) {
			locations = append(locations, l)
		}
	}
	if len(employees) == 0 || len(locations) == 0 {
		return wizard.Reject(fmt.Sprintf("%s is not available at the moment.", service.Name))
	}

	item.SetService(service)
	item.SetEmployee(s.employees[employeeID], employees)
	item.SetLocation(s.locations[locationID], locations)
	item.Capacity = s.GetInt(propCapacity)

	return wizard.Proceed()
}

// FormView названия вариантов для отображения
type FormView struct {
	Services  map[int64]string `json:"services"`
	Employees map[int64]string `json:"employees"`
	Locations map[int64]string `json:"locations"`
	Price     float64          `json:"price"`
}

func (s *ServiceForm) Describe() interface{} {
	view := FormView{
		Services:  make(map[int64]string, len(s.services)),
		Employees: make(map[int64]string, len(s.employees)),
		Locations: make(map[int64]string, len(s.locations)),
	}
	for id, v := range s.services {
		view.Services[id] = v.Name
	}
	for id, v := range s.employees {
		view.Employees[id] = v.Name
	}
	for id, v := range s.locations {
		view.Locations[id] = v.Name
	}
	if service := s.service(); service != nil {
		view.Price = service.GetPrice(int64(s.GetInt(propEmployee)), s.GetInt(propCapacity))
	}
	return view
}
