package app

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/payments"
	"github.com/m04kA/SMC-BookingWizard/internal/steps"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// API REST-клиент бэкенда: методы шагов и платёжных шлюзов
type API interface {
	steps.API
	payments.API
}

// Entities репозитории сущностей: выбор в форме и восстановление корзины
type Entities interface {
	steps.Entities
	cart.EntityResolver
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

// Deps общие зависимости всех мастеров. Stripe и Observer могут быть nil.
type Deps struct {
	API      API
	Entities Entities
	Stripe   payments.IntentConfirmer
	Clock    TimeProvider
	Logger   Logger
	Observer wizard.TransitionObserver
}
