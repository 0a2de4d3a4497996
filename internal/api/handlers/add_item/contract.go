package add_item

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
)

type SessionService interface {
	AddItem(ctx context.Context, id string) (app.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
