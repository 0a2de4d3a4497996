package dispatch_event

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

type SessionService interface {
	Dispatch(ctx context.Context, id string, event wizard.Event) (app.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
