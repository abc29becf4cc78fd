package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateOrder возвращается при нарушении уникальности order id -
	// бронирование для этого платежного заказа уже существует
	ErrDuplicateOrder = errors.New("booking.repository: booking for this order already exists")

	// ErrNotInExpectedStatus возвращается, когда условный переход статуса не затронул
	// ни одной строки: бронирование существует, но уже не в ожидаемом статусе
	ErrNotInExpectedStatus = errors.New("booking.repository: booking is not in expected status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
