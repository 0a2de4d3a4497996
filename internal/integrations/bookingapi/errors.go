package bookingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается при ответе 404
	ErrNotFound = errors.New("bookingapi: not found")

	// ErrAPI возвращается, когда сервер ответил ошибкой с телом {message}
	ErrAPI = errors.New("bookingapi: api error")

	// ErrRequestFailed возвращается при ошибках транспорта и неожиданных статусах
	ErrRequestFailed = errors.New("bookingapi: request failed")

	// ErrInvalidResponse возвращается, когда ответ нельзя разобрать или он нарушает инварианты
	ErrInvalidResponse = errors.New("bookingapi: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi: internal error")
)

// DefaultUserMessage текст для клиента, когда сервер не прислал своего
const DefaultUserMessage = "REST request failed"

// Error ошибка REST-вызова; Message, если есть, пришло от сервера
type Error struct {
	Endpoint string
	Status   int
	Message  string
	Err      error
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Err, e.Endpoint)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage возвращает текст, который можно показать клиенту
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return DefaultUserMessage
}
