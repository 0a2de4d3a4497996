package apply_coupon

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

const (
	route = "POST /sessions/{sessionId}/coupon"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCode        = "код купона обязателен"
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

// Handle POST /api/v1/sessions/{sessionId}/coupon
// Отказ в купоне не является ошибкой запроса: причина приходит в сообщении шага оформления.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ApplyCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	state, err := h.service.ApplyCoupon(r.Context(), sessionID, code)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &handlers.SessionResponse{SessionID: sessionID, State: state})
}
