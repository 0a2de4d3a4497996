package steps

import "errors"

var (
	// ErrNoActiveItem возвращается, если в корзине нет редактируемой позиции
	ErrNoActiveItem = errors.New("steps: no active cart item")

	// ErrItemNotFound возвращается, если позиции нет в корзине
	ErrItemNotFound = errors.New("steps: cart item not found")

	// ErrCouponsDisabled возвращается, если купоны выключены в настройках
	ErrCouponsDisabled = errors.New("steps: coupons are disabled")

	// ErrInvalidCoupon возвращается для несуществующего или неактивного купона
	ErrInvalidCoupon = errors.New("steps: invalid coupon")

	// ErrCouponNotApplicable возвращается, если купон не подходит ни к одной позиции
	ErrCouponNotApplicable = errors.New("steps: coupon is not applicable")

	// ErrEmptyCart возвращается при оформлении пустой корзины
	ErrEmptyCart = errors.New("steps: cart is empty")
)

// stepError ошибка с текстом для клиента
type stepError struct {
	message string
	err     error
}

func (e *stepError) Error() string {
	return e.err.Error()
}

func (e *stepError) Unwrap() error {
	return e.err
}

func (e *stepError) UserMessage() string {
	return e.message
}

func userError(err error, message string) error {
	return &stepError{message: message, err: err}
}
