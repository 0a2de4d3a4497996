package bookingapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CallObserver получает длительность и статус каждого REST-вызова (метрики)
type CallObserver interface {
	ObserveRESTCall(endpoint string, status int, d time.Duration)
}
