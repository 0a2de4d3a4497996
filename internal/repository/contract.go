package repository

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache общий кэш сущностей (Redis)
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// API методы REST-клиента, через которые загружаются сущности
type API interface {
	GetServices(ctx context.Context, ids []int64) ([]*domain.Service, error)
	GetEmployees(ctx context.Context, ids []int64) ([]*domain.Employee, error)
	GetLocations(ctx context.Context, ids []int64) ([]*domain.Location, error)
	GetSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error)
	FindCoupon(ctx context.Context, code string) (*domain.Coupon, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
