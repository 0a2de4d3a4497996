package wizard

// EventType names the four events steps use to drive the sequencer
type EventType string

const (
	EventStepNext     EventType = "step_next"
	EventStepBack     EventType = "step_back"
	EventStepNew      EventType = "step_new"
	EventResetBooking EventType = "reset_booking"
)

// Event carries the ID of the step that raised it
type Event struct {
	Type   EventType `json:"type"`
	StepID string    `json:"step"`
}

// IsValid returns true for a known event type
func (e Event) IsValid() bool {
	switch e.Type {
	case EventStepNext, EventStepBack, EventStepNew, EventResetBooking:
		return e.StepID != ""
	default:
		return false
	}
}

// Emitter receives events raised by steps
type Emitter interface {
	Emit(event Event)
}
