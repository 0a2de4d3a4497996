package steps

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// API методы REST-клиента, которые вызывают шаги
type API interface {
	GetAvailableServices(ctx context.Context) (domain.AvailableServices, error)
	GetTimeSlots(ctx context.Context, req bookingapi.TimeSlotsRequest) (domain.TimeSlots, error)
	FindCoupon(ctx context.Context, code string) (*domain.Coupon, error)
	CreateCustomer(ctx context.Context, req bookingapi.CustomerRequest) (*bookingapi.Customer, error)
	CreateDraftBooking(ctx context.Context, payload cart.Payload) (*bookingapi.DraftBooking, error)
	CreateBooking(ctx context.Context, payload cart.Payload) (*bookingapi.BookingResult, error)
}

// Entities репозитории сущностей
type Entities interface {
	FindServices(ctx context.Context, ids []int64) ([]*domain.Service, error)
	FindEmployees(ctx context.Context, ids []int64) ([]*domain.Employee, error)
	FindLocations(ctx context.Context, ids []int64) ([]*domain.Location, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}
