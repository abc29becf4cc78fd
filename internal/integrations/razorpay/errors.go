package razorpay

import "errors"

var (
	// ErrInternal возвращается при сетевых и прочих внутренних ошибках клиента
	ErrInternal = errors.New("razorpay: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе шлюза
	ErrInvalidResponse = errors.New("razorpay: invalid gateway response")

	// ErrOrderRejected возвращается, когда шлюз отклонил создание заказа
	ErrOrderRejected = errors.New("razorpay: order rejected by gateway")
)
