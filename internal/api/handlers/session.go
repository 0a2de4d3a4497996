package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
)

const (
	msgSessionNotFound = "сессия не найдена"
	msgStepConflict    = "шаг сейчас не активен"
	msgInvalidInput    = "некорректные данные"
)

// SessionResponse состояние мастера в ответах API
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	State     app.State `json:"state"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondSessionError переводит ошибку сервиса сессий в HTTP статус
func RespondSessionError(w http.ResponseWriter, logger Logger, route, sessionID string, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		logger.Warn("%s - Session not found: session_id=%s", route, sessionID)
		RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, sessions.ErrStepConflict):
		logger.Warn("%s - Step conflict: session_id=%s, error=%v", route, sessionID, err)
		RespondConflict(w, msgStepConflict)

	case errors.Is(err, sessions.ErrInvalidInput):
		logger.Warn("%s - Invalid input: session_id=%s, error=%v", route, sessionID, err)
		RespondBadRequest(w, msgInvalidInput)

	default:
		logger.Error("%s - Failed: session_id=%s, error=%v", route, sessionID, err)
		RespondInternalError(w)
	}
}
