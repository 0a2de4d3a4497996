package wizard

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TransitionObserver получает каждый переход между шагами (метрики)
type TransitionObserver interface {
	ObserveStepTransition(from, to string)
}
