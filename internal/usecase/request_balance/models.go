package request_balance

// Request параметры запроса на доплату
type Request struct {
	BookingID int64
	UserID    int64
}

// Response созданный заказ на доплату
type Response struct {
	OrderID  string
	Amount   int64
	Currency string
}
