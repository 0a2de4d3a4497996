package get_free_periods

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.LocationID < 0 {
		return fmt.Errorf("%w: locationID must not be negative", ErrInvalidInput)
	}

	if req.ServiceID < 0 {
		return fmt.Errorf("%w: serviceID must not be negative", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return types.DateOnly(date).Before(types.DateOnly(now))
}
