package get_free_periods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/repository"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// UseCase use case свободного времени сотрудника на дату
type UseCase struct {
	entities     Entities
	reservations ReservationsClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(entities Entities, reservations ReservationsClient, logger Logger) *UseCase {
	return &UseCase{
		entities:     entities,
		reservations: reservations,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case: рабочие периоды по расписанию минус активные бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreePeriods: employee=%d, location=%d, service=%d, date=%s",
		req.EmployeeID, req.LocationID, req.ServiceID, types.FormatDate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreePeriods: validation failed: %v", err)
		return nil, err
	}

	date := types.DateOnly(req.Date)
	now := uc.timeProvider.Now()
	response := &Response{
		Date:       date,
		EmployeeID: req.EmployeeID,
		LocationID: req.LocationID,
		Periods:    []types.TimePeriod{},
		Slots:      []types.TimePeriod{},
	}

	// 2. Прошедшие даты не имеют свободного времени
	if isDateInPast(date, now) {
		return response, nil
	}

	// 3. Сотрудник и его расписание
	employee, err := uc.entities.Employee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.logger.Warn("GetFreePeriods: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetFreePeriods: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if employee.ScheduleID == 0 {
		return nil, ErrScheduleNotFound
	}

	schedule, err := uc.entities.Schedule(ctx, employee.ScheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.logger.Warn("GetFreePeriods: schedule id=%d not found", employee.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetFreePeriods: failed to get schedule id=%d: %v", employee.ScheduleID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Услуга, если нужна нарезка на слоты
	var service *domain.Service
	if req.ServiceID != 0 {
		service, err = uc.entities.Service(ctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				uc.logger.Warn("GetFreePeriods: service id=%d not found", req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetFreePeriods: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 5. Рабочие периоды на дату
	working := schedule.WorkingPeriods(date, req.LocationID)
	if len(working) == 0 {
		uc.logger.Info("GetFreePeriods: employee=%d does not work on %s", req.EmployeeID, types.FormatDate(date))
		return response, nil
	}

	// 6. Бронирования сотрудника в любой локации
	reservations, err := uc.reservations.GetReservations(ctx, domain.ReservationsFilter{
		EmployeeID: req.EmployeeID,
		From:       date,
		To:         date,
		Statuses:   domain.ActiveStatuses,
	})
	if err != nil {
		uc.logger.Error("GetFreePeriods: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	free := subtractReservations(working, reservations)

	// 7. Сегодня время до текущего момента (и до срока записи услуги) недоступно
	if types.IsSameDay(date, now) {
		notBefore := now
		if service != nil {
			notBefore = now.Add(time.Duration(service.LeadTime) * time.Minute)
		}
		free = clipBefore(free, notBefore)
	}
	response.Periods = free

	// 8. Слоты услуги
	if service != nil {
		response.Slots = generateSlots(free, service.GetDuration(req.EmployeeID), service.BufferBefore, service.BufferAfter)
	}

	uc.logger.Info("GetFreePeriods: employee=%d has %d free periods, %d slots on %s",
		req.EmployeeID, len(response.Periods), len(response.Slots), types.FormatDate(date))

	return response, nil
}
