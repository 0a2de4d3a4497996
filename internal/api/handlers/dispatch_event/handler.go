package dispatch_event

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const (
	route = "POST /sessions/{sessionId}/events"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEvent       = "неизвестное событие"
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

// Handle POST /api/v1/sessions/{sessionId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event := req.ToEvent()
	if !event.IsValid() {
		h.logger.Warn("%s - Invalid event: type=%q, step=%q", route, req.Type, req.StepID)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	state, err := h.service.Dispatch(r.Context(), sessionID, event)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	h.logger.Info("%s - Event dispatched: session_id=%s, event=%s, current=%s",
		route, sessionID, event.Type, state.CurrentStep)
	handlers.RespondJSON(w, http.StatusOK, &handlers.SessionResponse{SessionID: sessionID, State: state})
}
