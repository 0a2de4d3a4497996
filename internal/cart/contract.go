package cart

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

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

// EntityResolver загружает сущности при восстановлении корзины из сохранённого payload
type EntityResolver interface {
	Service(ctx context.Context, id int64) (*domain.Service, error)
	Employee(ctx context.Context, id int64) (*domain.Employee, error)
	Location(ctx context.Context, id int64) (*domain.Location, error)
	Coupon(ctx context.Context, code string) (*domain.Coupon, error)
}
