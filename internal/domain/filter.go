package domain

import "time"

// LedgerFilter фильтр для выборки бронирований из журнала (admin-список)
type LedgerFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}

// BookingStats сводные показатели журнала для административной панели
type BookingStats struct {
	TotalBookings    int64
	CollectedRevenue int64 // advance сумм активных + balance завершённых, в минимальных единицах
	PendingBalance   int64 // balance сумм, ещё не оплаченных
}
