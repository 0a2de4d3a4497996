package submit_step

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const route = "POST /sessions/{sessionId}/steps/{stepId}/submit"

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

// Handle POST /api/v1/sessions/{sessionId}/steps/{stepId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, stepID := vars["sessionId"], vars["stepId"]

	submitted, state, err := h.service.Submit(r.Context(), sessionID, stepID)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	h.logger.Info("%s - Step submitted: session_id=%s, step=%s, submitted=%t, current=%s",
		route, sessionID, stepID, submitted, state.CurrentStep)
	handlers.RespondJSON(w, http.StatusOK, &SubmitStepResponse{
		SessionID: sessionID,
		Submitted: submitted,
		State:     state,
	})
}
