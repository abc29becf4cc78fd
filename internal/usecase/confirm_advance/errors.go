package confirm_advance

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_advance: invalid input data")

	// ErrPaymentVerification возвращается при несовпадении подписи платежа.
	// Всегда фатальна для попытки; никаких изменений состояния.
	ErrPaymentVerification = errors.New("confirm_advance: payment signature verification failed")

	// ErrCapacityExceeded возвращается, когда на момент резервации в слоте
	// не осталось мест. Аванс при этом уже списан - возврат средств
	// инициируется вызывающей стороной вне этого ядра.
	ErrCapacityExceeded = errors.New("confirm_advance: slot capacity exceeded")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("confirm_advance: service not found")

	// ErrInvalidTimeSlot возвращается, когда метка времени не входит в сетку дня
	ErrInvalidTimeSlot = errors.New("confirm_advance: invalid time slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_advance: internal error")
)
