package get_free_periods

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Entities репозитории сущностей
type Entities interface {
	Employee(ctx context.Context, id int64) (*domain.Employee, error)
	Service(ctx context.Context, id int64) (*domain.Service, error)
	Schedule(ctx context.Context, id int64) (*domain.Schedule, error)
}

// ReservationsClient клиент REST API бэкенда
type ReservationsClient interface {
	GetReservations(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
