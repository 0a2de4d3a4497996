package app

import "errors"

var (
	// ErrStepNotCurrent возвращается при изменении шага, который сейчас не показан
	ErrStepNotCurrent = errors.New("app: step is not current")

	// ErrRestore возвращается, если сохранённое состояние не удалось восстановить
	ErrRestore = errors.New("app: failed to restore wizard")
)
