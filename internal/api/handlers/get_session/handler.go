package get_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const route = "GET /sessions/{sessionId}"

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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	state, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &handlers.SessionResponse{SessionID: sessionID, State: state})
}
