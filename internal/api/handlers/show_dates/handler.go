package show_dates

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

const (
	route = "GET /sessions/{sessionId}/dates"

	msgMissingDates = "параметры from и to обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}/dates
// Query params: from, to (YYYY-MM-DD). Загружает слоты шага выбора времени на другой диапазон.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	query := r.URL.Query()

	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	from, err := types.ParseDate(fromStr)
	if err != nil {
		h.logger.Warn("%s - Invalid from date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := types.ParseDate(toStr)
	if err != nil {
		h.logger.Warn("%s - Invalid to date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	state, err := h.service.ShowDates(r.Context(), sessionID, from, to)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &handlers.SessionResponse{SessionID: sessionID, State: state})
}
