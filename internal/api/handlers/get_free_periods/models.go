package get_free_periods

import (
	getFreePeriods "github.com/m04kA/SMC-BookingWizard/internal/usecase/get_free_periods"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// FreePeriodsResponse HTTP response model
type FreePeriodsResponse struct {
	Date       string   `json:"date"`
	EmployeeID int64    `json:"employee_id"`
	LocationID int64    `json:"location_id,omitempty"`
	Periods    []string `json:"periods"`
	Slots      []string `json:"slots,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreePeriods.Response) *FreePeriodsResponse {
	return &FreePeriodsResponse{
		Date:       types.FormatDate(resp.Date),
		EmployeeID: resp.EmployeeID,
		LocationID: resp.LocationID,
		Periods:    formatPeriods(resp.Periods),
		Slots:      formatPeriods(resp.Slots),
	}
}

func formatPeriods(periods []types.TimePeriod) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		out[i] = p.String()
	}
	return out
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(employeeID, locationID, serviceID int64, dateStr string) (*getFreePeriods.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getFreePeriods.Request{
		EmployeeID: employeeID,
		LocationID: locationID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
