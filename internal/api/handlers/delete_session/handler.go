package delete_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const route = "DELETE /sessions/{sessionId}"

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

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Delete(r.Context(), sessionID); err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	h.logger.Info("%s - Session deleted: session_id=%s", route, sessionID)
	w.WriteHeader(http.StatusNoContent)
}
