package dispatch_event

import "github.com/m04kA/SMC-BookingWizard/internal/wizard"

// EventRequest событие мастера от клиента
type EventRequest struct {
	Type   string `json:"type"`
	StepID string `json:"step"`
}

// ToEvent конвертирует запрос в событие мастера
func (r *EventRequest) ToEvent() wizard.Event {
	return wizard.Event{Type: wizard.EventType(r.Type), StepID: r.StepID}
}
