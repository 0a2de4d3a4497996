package get_free_periods

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Request модель запроса свободного времени сотрудника
type Request struct {
	EmployeeID int64     // ID сотрудника
	LocationID int64     // ID локации, 0 = любая
	ServiceID  int64     // ID услуги, 0 = без нарезки на слоты
	Date       time.Time // Дата (без времени)
}

// Response модель ответа
type Response struct {
	Date       time.Time
	EmployeeID int64
	LocationID int64
	Periods    []types.TimePeriod // Свободные периоды
	Slots      []types.TimePeriod // Слоты услуги внутри свободных периодов
}
