package get_free_periods

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	getFreePeriods "github.com/m04kA/SMC-BookingWizard/internal/usecase/get_free_periods"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput      = "некорректные параметры запроса"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgScheduleNotFound  = "у сотрудника нет расписания"
)

type Handler struct {
	useCase GetFreePeriodsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreePeriodsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// optionalID разбирает необязательный числовой query параметр; пустое значение: 0
func optionalID(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// Handle GET /api/v1/employees/{employeeId}/free-periods
// Query params: date (required, YYYY-MM-DD), locationId, serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{sessionId}/free-periods - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	query := r.URL.Query()

	locationID, err := optionalID(query.Get("locationId"))
	if err != nil {
		h.logger.Warn("GET /employees/{sessionId}/free-periods - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	serviceID, err := optionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /employees/{sessionId}/free-periods - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{sessionId}/free-periods - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(employeeID, locationID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /employees/{sessionId}/free-periods - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getFreePeriods.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getFreePeriods.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{sessionId}/free-periods - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getFreePeriods.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{sessionId}/free-periods - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getFreePeriods.ErrScheduleNotFound):
			h.logger.Warn("GET /employees/{sessionId}/free-periods - Schedule not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /employees/{sessionId}/free-periods - Failed to get free periods: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{sessionId}/free-periods - Free periods retrieved: employee_id=%d, date=%s, periods=%d",
		employeeID, dateStr, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
