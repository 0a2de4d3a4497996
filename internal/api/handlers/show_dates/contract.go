package show_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
)

type SessionService interface {
	ShowDates(ctx context.Context, id string, from, to time.Time) (app.State, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
