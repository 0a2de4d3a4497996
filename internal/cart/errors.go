package cart

import "errors"

var (
	// ErrInvalidPayload возвращается, когда сохранённую корзину нельзя разобрать
	ErrInvalidPayload = errors.New("cart: invalid payload")

	// ErrResolveEntity возвращается, когда не удалось загрузить сущность для восстановления
	ErrResolveEntity = errors.New("cart: failed to resolve entity")
)
