package get_free_periods

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// subtractReservations вычитает активные бронирования из рабочих периодов.
// Пустые фрагменты отбрасываются.
func subtractReservations(periods []types.TimePeriod, reservations []*domain.Reservation) []types.TimePeriod {
	free := periods
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}

		busy := r.Period()
		next := make([]types.TimePeriod, 0, len(free)+1)
		for _, p := range free {
			for _, fragment := range p.SplitByPeriod(busy) {
				if !fragment.IsEmpty() {
					next = append(next, fragment)
				}
			}
		}
		free = next
	}
	return domain.MergePeriods(free)
}

// clipBefore обрезает периоды, начинающиеся раньше notBefore
func clipBefore(periods []types.TimePeriod, notBefore time.Time) []types.TimePeriod {
	clipped := make([]types.TimePeriod, 0, len(periods))
	for _, p := range periods {
		if !p.EndTime.After(notBefore) {
			continue
		}
		if p.StartTime.Before(notBefore) {
			p = types.NewTimePeriod(notBefore, p.EndTime)
		}
		clipped = append(clipped, p)
	}
	return clipped
}

// generateSlots нарезает свободные периоды на слоты услуги с шагом длительности.
// Буферы до и после услуги должны помещаться в тот же свободный период.
func generateSlots(free []types.TimePeriod, duration, bufferBefore, bufferAfter int) []types.TimePeriod {
	slots := make([]types.TimePeriod, 0)
	if duration <= 0 {
		return slots
	}

	length := time.Duration(duration) * time.Minute
	before := time.Duration(bufferBefore) * time.Minute
	after := time.Duration(bufferAfter) * time.Minute

	for _, p := range free {
		for start := p.StartTime.Add(before); !start.Add(length + after).After(p.EndTime); start = start.Add(length) {
			slots = append(slots, types.NewTimePeriod(start, start.Add(length)))
		}
	}
	return slots
}
