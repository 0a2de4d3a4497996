package config

import "errors"

var (
	// ErrLoad возвращается, если файл конфигурации не удалось прочитать
	ErrLoad = errors.New("config: load failed")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)
