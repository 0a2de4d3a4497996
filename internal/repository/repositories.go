package repository

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Repositories репозитории всех сущностей визарда; создаются один раз в main
type Repositories struct {
	Services  *EntityRepository[domain.Service]
	Employees *EntityRepository[domain.Employee]
	Locations *EntityRepository[domain.Location]
	Schedules *EntityRepository[domain.Schedule]

	api API
}

// New создает репозитории поверх API. cache может быть nil.
func New(api API, cache Cache, ttl time.Duration, clock TimeProvider, log Logger) *Repositories {
	return &Repositories{
		Services: NewEntityRepository(domain.EntityService, api.GetServices,
			func(s *domain.Service) int64 { return s.ID }, cache, ttl, clock, log),
		Employees: NewEntityRepository(domain.EntityEmployee, api.GetEmployees,
			func(e *domain.Employee) int64 { return e.ID }, cache, ttl, clock, log),
		Locations: NewEntityRepository(domain.EntityLocation, api.GetLocations,
			func(l *domain.Location) int64 { return l.ID }, cache, ttl, clock, log),
		Schedules: NewEntityRepository(domain.EntitySchedule, api.GetSchedules,
			func(s *domain.Schedule) int64 { return s.ID }, cache, ttl, clock, log),
		api: api,
	}
}

// Service возвращает услугу по ID
func (r *Repositories) Service(ctx context.Context, id int64) (*domain.Service, error) {
	return r.Services.FindByID(ctx, id)
}

// Employee возвращает сотрудника по ID
func (r *Repositories) Employee(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.Employees.FindByID(ctx, id)
}

// Location возвращает локацию по ID
func (r *Repositories) Location(ctx context.Context, id int64) (*domain.Location, error) {
	return r.Locations.FindByID(ctx, id)
}

// Coupon ищет купон по коду. Купоны не кэшируются: счетчик использований меняется.
func (r *Repositories) Coupon(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.api.FindCoupon(ctx, code)
}

// FindServices возвращает услуги в порядке ids
func (r *Repositories) FindServices(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	return r.Services.FindAll(ctx, ids)
}

// FindEmployees возвращает сотрудников в порядке ids
func (r *Repositories) FindEmployees(ctx context.Context, ids []int64) ([]*domain.Employee, error) {
	return r.Employees.FindAll(ctx, ids)
}

// FindLocations возвращает локации в порядке ids
func (r *Repositories) FindLocations(ctx context.Context, ids []int64) ([]*domain.Location, error) {
	return r.Locations.FindAll(ctx, ids)
}

// FindSchedules возвращает расписания в порядке ids
func (r *Repositories) FindSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error) {
	return r.Schedules.FindAll(ctx, ids)
}

// Schedule возвращает расписание по ID
func (r *Repositories) Schedule(ctx context.Context, id int64) (*domain.Schedule, error) {
	return r.Schedules.FindByID(ctx, id)
}
