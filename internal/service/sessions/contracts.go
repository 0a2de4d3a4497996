package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/session"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	Save(ctx context.Context, record *sessionRepo.Record) error
	Get(ctx context.Context, id string) (*sessionRepo.Record, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// SettingsSource источник настроек мастера (REST API бэкенда)
type SettingsSource interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// Metrics счётчик активных сессий
type Metrics interface {
	SessionOpened()
	SessionClosed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}
