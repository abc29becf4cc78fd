package initiate_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initiate_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("initiate_booking: service not found")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("initiate_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда метка времени не входит в сетку дня
	ErrInvalidTimeSlot = errors.New("initiate_booking: invalid time slot")

	// ErrSlotFull возвращается, когда в слоте не осталось мест.
	// Проверка здесь рекомендательная: авторитетная выполняется при подтверждении аванса.
	ErrSlotFull = errors.New("initiate_booking: slot is full")

	// ErrGateway возвращается, когда платежный шлюз не смог создать заказ
	ErrGateway = errors.New("initiate_booking: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_booking: internal error")
)
