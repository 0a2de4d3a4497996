package bookingapi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/ptr"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func toDomainSettings(dto SettingsDTO) *domain.Settings {
	s := domain.DefaultSettings()

	if dto.Currency != "" {
		s.Currency = strings.ToUpper(dto.Currency)
	}
	if dto.TimeFormat != "" {
		s.TimeLayout = dto.TimeFormat
	}
	if dto.CalendarDays > 0 {
		s.CalendarDays = dto.CalendarDays
	}
	s.AllowMultibooking = dto.AllowMultibooking
	s.AllowCoupons = dto.AllowCoupons
	s.AllowAccountCreation = dto.AllowAccountCreation
	s.PhoneRequired = dto.PhoneRequired
	s.PaymentsEnabled = dto.PaymentsEnabled
	s.EnabledGateways = dto.EnabledGateways
	s.DefaultGateway = dto.DefaultGateway

	return s
}

// capacityRange приводит вместимость к инварианту 1 <= min <= max
func capacityRange(min, max int) (int, int) {
	if min < domain.DefaultMinCapacity {
		min = domain.DefaultMinCapacity
	}
	if max < min {
		max = min
	}
	return min, max
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func toDomainService(dto ServiceDTO) (*domain.Service, error) {
	if dto.ID <= 0 {
		return nil, errors.New("service without id")
	}

	s := &domain.Service{
		ID:            dto.ID,
		Name:          dto.Name,
		Categories:    dto.Categories,
		Price:         nonNegative(dto.Price),
		Duration:      dto.Duration,
		BufferBefore:  dto.BufferBefore,
		BufferAfter:   dto.BufferAfter,
		LeadTime:      dto.LeadTime,
		MultiplyPrice: dto.MultiplyPrice,
		DepositType:   domain.DepositDisabled,
		DepositAmount: nonNegative(dto.DepositAmount),
	}
	s.MinCapacity, s.MaxCapacity = capacityRange(dto.MinCapacity, dto.MaxCapacity)

	switch domain.DepositType(dto.DepositType) {
	case domain.DepositFixed, domain.DepositPercentage:
		s.DepositType = domain.DepositType(dto.DepositType)
	}

	if len(dto.Variations) > 0 {
		s.Variations = make(map[int64]domain.Variation, len(dto.Variations))
		for _, v := range dto.Variations {
			if v.EmployeeID <= 0 {
				continue
			}
			min, max := v.MinCapacity, v.MaxCapacity
			if min <= 0 {
				min = s.MinCapacity
			}
			if max <= 0 {
				max = s.MaxCapacity
			}
			min, max = capacityRange(min, max)
			price := s.Price
			if v.Price != nil {
				price = nonNegative(*v.Price)
			}

			s.Variations[v.EmployeeID] = domain.Variation{
				EmployeeID:  v.EmployeeID,
				Price:       price,
				Duration:    v.Duration,
				MinCapacity: min,
				MaxCapacity: max,
			}
		}
	}

	return s, nil
}

func toDomainEmployee(dto EmployeeDTO) (*domain.Employee, error) {
	if dto.ID <= 0 {
		return nil, errors.New("employee without id")
	}
	return &domain.Employee{ID: dto.ID, Name: dto.Name, ScheduleID: dto.ScheduleID}, nil
}

func toDomainLocation(dto LocationDTO) (*domain.Location, error) {
	if dto.ID <= 0 {
		return nil, errors.New("location without id")
	}
	return &domain.Location{ID: dto.ID, Name: dto.Name, Address: dto.Address}, nil
}

func toDomainSchedule(dto ScheduleDTO) (*domain.Schedule, error) {
	if dto.ID <= 0 {
		return nil, errors.New("schedule without id")
	}

	s := &domain.Schedule{
		ID:           dto.ID,
		EmployeeID:   dto.EmployeeID,
		WorkingHours: make(map[time.Weekday][]domain.WorkingHours),
	}

	for day, hours := range dto.WorkingHours {
		weekday, ok := weekdays[strings.ToLower(day)]
		if !ok {
			return nil, fmt.Errorf("schedule %d: unknown weekday %q", dto.ID, day)
		}
		for _, h := range hours {
			period, err := types.ParseTimePeriod(h.Time)
			if err != nil {
				return nil, fmt.Errorf("schedule %d: %v", dto.ID, err)
			}
			s.WorkingHours[weekday] = append(s.WorkingHours[weekday], domain.WorkingHours{
				LocationID: h.LocationID,
				Period:     period,
			})
		}
	}

	for _, off := range dto.DaysOff {
		period, err := types.ParseDatePeriod(off)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %v", dto.ID, err)
		}
		s.DaysOff = append(s.DaysOff, period)
	}

	for _, w := range dto.CustomWorkdays {
		date, err := types.ParseDate(w.Date)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %v", dto.ID, err)
		}
		period, err := types.ParseTimePeriod(w.Time)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %v", dto.ID, err)
		}
		s.CustomWorkdays = append(s.CustomWorkdays, domain.CustomWorkday{
			Date:       date,
			LocationID: w.LocationID,
			Period:     period,
		})
	}

	return s, nil
}

// optionalDate разбирает необязательную дату; пустая строка даёт nil
func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return ptr.Ptr(d), nil
}

func toDomainCoupon(dto CouponDTO) (*domain.Coupon, error) {
	c := &domain.Coupon{
		ID:         dto.ID,
		Code:       dto.Code,
		Status:     domain.CouponInactive,
		Amount:     dto.Amount,
		ServiceIDs: dto.ServiceIDs,
		UsageLimit: dto.UsageLimit,
		UsageCount: dto.UsageCount,
	}

	if domain.CouponStatus(dto.Status) == domain.CouponActive {
		c.Status = domain.CouponActive
	}

	switch domain.DiscountType(dto.Type) {
	case domain.DiscountFixed, domain.DiscountPercentage:
		c.Type = domain.DiscountType(dto.Type)
	default:
		return nil, fmt.Errorf("coupon %q: unknown discount type %q", dto.Code, dto.Type)
	}

	var err error
	if c.ExpirationDate, err = optionalDate(dto.ExpirationDate); err != nil {
		return nil, fmt.Errorf("coupon %q: %v", dto.Code, err)
	}
	if c.MinDate, err = optionalDate(dto.MinDate); err != nil {
		return nil, fmt.Errorf("coupon %q: %v", dto.Code, err)
	}
	if c.MaxDate, err = optionalDate(dto.MaxDate); err != nil {
		return nil, fmt.Errorf("coupon %q: %v", dto.Code, err)
	}

	return c, nil
}

func toDomainReservation(dto ReservationDTO) (*domain.Reservation, error) {
	date, err := types.ParseDate(dto.Date)
	if err != nil {
		return nil, fmt.Errorf("reservation %d: %v", dto.ID, err)
	}
	period, err := types.ParseTimePeriod(dto.Time)
	if err != nil {
		return nil, fmt.Errorf("reservation %d: %v", dto.ID, err)
	}

	return &domain.Reservation{
		ID:         dto.ID,
		BookingID:  dto.BookingID,
		ServiceID:  dto.ServiceID,
		EmployeeID: dto.EmployeeID,
		LocationID: dto.LocationID,
		Date:       date,
		Time:       period,
		Capacity:   dto.Capacity,
		Status:     domain.BookingStatus(dto.Status),
	}, nil
}

func toDomainTimeSlots(dto TimeSlotsDTO) domain.TimeSlots {
	slots := make(domain.TimeSlots, len(dto))
	for date, periods := range dto {
		slots[date] = make(map[string][]domain.SlotResource, len(periods))
		for period, pairs := range periods {
			resources := make([]domain.SlotResource, 0, len(pairs))
			for _, pair := range pairs {
				resources = append(resources, domain.SlotResource{EmployeeID: pair[0], LocationID: pair[1]})
			}
			slots[date][period] = resources
		}
	}
	return slots
}

func toDomainAvailableServices(dto map[string]map[string][]int64) (domain.AvailableServices, error) {
	available := make(domain.AvailableServices, len(dto))
	for serviceKey, employees := range dto {
		serviceID, err := parseID(serviceKey)
		if err != nil {
			return nil, err
		}
		available[serviceID] = make(map[int64][]int64, len(employees))
		for employeeKey, locations := range employees {
			employeeID, err := parseID(employeeKey)
			if err != nil {
				return nil, err
			}
			available[serviceID][employeeID] = locations
		}
	}
	return available, nil
}
