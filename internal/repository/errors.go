package repository

import "errors"

var (
	// ErrNotFound возвращается, если сущности с таким ID нет на бэкенде
	ErrNotFound = errors.New("repository: entity not found")

	// ErrFetch возвращается при ошибке загрузки сущностей
	ErrFetch = errors.New("repository: fetch failed")
)
