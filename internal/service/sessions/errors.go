package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии нет ни в памяти, ни в хранилище
	ErrSessionNotFound = errors.New("session not found")

	// ErrStepConflict возвращается при действии над шагом, который сейчас не показан
	ErrStepConflict = errors.New("step is not current")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
