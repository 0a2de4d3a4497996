package payments

import "errors"

var (
	// ErrGatewayNotFound возвращается для неизвестного или выключенного шлюза
	ErrGatewayNotFound = errors.New("payments: gateway not found")

	// ErrNotFree возвращается, если бесплатный шлюз выбран для заказа с суммой к оплате
	ErrNotFree = errors.New("payments: order is not free")

	// ErrInvalidInput возвращается, если не заполнены поля шлюза
	ErrInvalidInput = errors.New("payments: invalid payment input")

	// ErrPaymentFailed возвращается, когда провайдер отклонил платеж
	ErrPaymentFailed = errors.New("payments: payment failed")
)

// Error ошибка платежа с текстом для клиента
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Err.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage возвращает текст, который можно показать клиенту
func (e *Error) UserMessage() string {
	return e.Message
}

func paymentError(err error, message string) error {
	return &Error{Message: message, Err: err}
}
