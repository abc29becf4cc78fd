package confirm_advance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/catalog"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

// fakeBookingRepo потокобезопасный in-memory репозиторий с уникальностью
// по advance_order_id, как у настоящей таблицы
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking

	// имитация гонки: первые skipLookups запросов идемпотентности
	// отвечают «не найдено», даже если строка уже есть
	skipLookups int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.AdvanceOrderID == b.AdvanceOrderID {
			return nil, bookingRepo.ErrDuplicateOrder
		}
	}

	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByAdvanceOrderID(_ context.Context, orderID string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.skipLookups > 0 {
		f.skipLookups--
		return nil, bookingRepo.ErrBookingNotFound
	}

	for _, b := range f.bookings {
		if b.AdvanceOrderID == orderID {
			found := *b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) CountActiveForSlot(_ context.Context, date time.Time, timeLabel types.TimeString) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.bookings {
		if b.BookingDate.Equal(date) && b.TimeLabel == timeLabel && b.IsActive() {
			count++
		}
	}
	return count, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

// fakeGateway принимает единственную подпись
type fakeGateway struct{}

func (fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == "valid-signature"
}

// fakeTxManager сериализует транзакции мьютексом: check-then-insert внутри
// fn выполняется атомарно, как под SERIALIZABLE
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSettings(t *testing.T) domain.FacilitySettings {
	t.Helper()
	return domain.FacilitySettings{
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("20:00"),
		SlotDurationMinutes: 60,
		SlotCapacity:        4,
		Currency:            "INR",
	}
}

func newTestUseCase(t *testing.T, repo *fakeBookingRepo) *UseCase {
	t.Helper()
	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		7: {ID: 7, Name: "Keratin Treatment", Category: "Hair", Price: 100000},
	}}
	return NewUseCase(repo, catalog, fakeGateway{}, &fakeTxManager{}, testSettings(t), nopLogger{})
}

func validRequest(orderID string) *Request {
	return &Request{
		OrderID:   orderID,
		PaymentID: "pay_" + orderID,
		Signature: "valid-signature",
		UserID:    42,
		ServiceID: 7,
		Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		TimeLabel: types.TimeString("14:00"),
	}
}

func TestConfirmAdvance_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest("order_1"))
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.False(t, resp.AlreadyProcessed)

	b := resp.Booking
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, int64(100000), b.TotalAmount)
	assert.Equal(t, int64(80000), b.AdvanceAmount)
	assert.Equal(t, int64(20000), b.BalanceAmount)
	assert.Equal(t, "order_1", b.AdvanceOrderID)
	assert.Equal(t, "pay_order_1", b.AdvancePaymentID)
	assert.Equal(t, "Keratin Treatment", b.ServiceName)
}

func TestConfirmAdvance_BadSignature(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	req := validRequest("order_1")
	req.Signature = "tampered"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentVerification)
	assert.Empty(t, repo.bookings, "failed verification must not create bookings")
}

func TestConfirmAdvance_IdempotentRedelivery(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	first, err := uc.Execute(context.Background(), validRequest("order_1"))
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), validRequest("order_1"))
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Len(t, repo.bookings, 1, "redelivery must not create a second booking")
}

func TestConfirmAdvance_ConcurrentDuplicateCollapses(t *testing.T) {
	// Идемпотентная проверка «не видит» существующую строку, как при
	// гонке двух доставок; дубликат ловит уникальный индекс при вставке
	repo := &fakeBookingRepo{skipLookups: 1}
	uc := newTestUseCase(t, repo)

	first, err := uc.Execute(context.Background(), validRequest("order_1"))
	require.NoError(t, err)
	require.False(t, first.AlreadyProcessed)

	repo.mu.Lock()
	repo.skipLookups = 1
	repo.mu.Unlock()

	second, err := uc.Execute(context.Background(), validRequest("order_1"))
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Len(t, repo.bookings, 1)
}

func TestConfirmAdvance_CapacityExceeded(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	for i := 0; i < 4; i++ {
		_, err := uc.Execute(context.Background(), validRequest("order_"+string(rune('a'+i))))
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), validRequest("order_overflow"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, repo.bookings, 4)
}

func TestConfirmAdvance_RedeliveryIntoFullSlot(t *testing.T) {
	// Повторная доставка для заказа, уже занявшего место в заполненном
	// слоте: идемпотентная проверка промахивается (доставка обогнала
	// коммит победителя), транзакция видит count >= C - но заказ обязан
	// получить своё бронирование, а не CapacityExceeded
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	first, err := uc.Execute(context.Background(), validRequest("order_dup"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), validRequest("order_"+string(rune('a'+i))))
		require.NoError(t, err)
	}

	repo.mu.Lock()
	repo.skipLookups = 1
	repo.mu.Unlock()

	second, err := uc.Execute(context.Background(), validRequest("order_dup"))
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Len(t, repo.bookings, 4)
}

func TestConfirmAdvance_ServiceNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	req := validRequest("order_1")
	req.ServiceID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestConfirmAdvance_InvalidTimeSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	req := validRequest("order_1")
	req.TimeLabel = types.TimeString("14:30") // не совпадает с сеткой

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestConfirmAdvance_Validation(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing order id", mutate: func(r *Request) { r.OrderID = "" }},
		{name: "missing payment id", mutate: func(r *Request) { r.PaymentID = "" }},
		{name: "missing signature", mutate: func(r *Request) { r.Signature = "" }},
		{name: "bad user id", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "bad service id", mutate: func(r *Request) { r.ServiceID = -1 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty time label", mutate: func(r *Request) { r.TimeLabel = "" }},
		{name: "malformed time label", mutate: func(r *Request) { r.TimeLabel = "2pm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("order_1")
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestConfirmAdvance_ConcurrentAdmission(t *testing.T) {
	// 10 конкурирующих подтверждений на один слот при C=4:
	// ровно 4 получают место, остальные - ErrCapacityExceeded
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo)

	const attempts = 10
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			req := validRequest("order_" + string(rune('0'+n)))
			_, errs[n] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var won, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, ErrCapacityExceeded)
			rejected++
		}
	}

	assert.Equal(t, 4, won, "exactly C bookings must be admitted")
	assert.Equal(t, 6, rejected)
	assert.Len(t, repo.bookings, 4)
}
