package update_step

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const (
	route = "PATCH /sessions/{sessionId}/steps/{stepId}"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingProperties  = "свойства шага обязательны"
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

// Handle PATCH /api/v1/sessions/{sessionId}/steps/{stepId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, stepID := vars["sessionId"], vars["stepId"]

	var req UpdateStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.Properties) == 0 {
		handlers.RespondBadRequest(w, msgMissingProperties)
		return
	}

	state, err := h.service.SetProperties(r.Context(), sessionID, stepID, req.Properties)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &handlers.SessionResponse{SessionID: sessionID, State: state})
}
