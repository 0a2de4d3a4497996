package wizard

import "errors"

var (
	// ErrStepNotFound возвращается, если шага с таким ID нет
	ErrStepNotFound = errors.New("wizard: step not found")

	// ErrInvalidEvent возвращается для неизвестного типа события или пустого ID шага
	ErrInvalidEvent = errors.New("wizard: invalid event")

	// ErrNoSteps возвращается при запуске визарда без шагов
	ErrNoSteps = errors.New("wizard: no steps")
)
