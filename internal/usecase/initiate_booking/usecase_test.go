package initiate_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	catalogRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/catalog"
	"github.com/looklab/LookLab-BookingService/internal/integrations/razorpay"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	count int
	err   error
}

func (f *fakeBookingRepo) CountActiveForSlot(_ context.Context, _ time.Time, _ types.TimeString) (int, error) {
	return f.count, f.err
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

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency string) (*razorpay.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amount
	f.lastCurrency = currency
	return &razorpay.Order{ID: "order_test", Amount: amount, Currency: currency, Status: "created"}, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSettings() domain.FacilitySettings {
	return domain.FacilitySettings{
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("20:00"),
		SlotDurationMinutes: 60,
		SlotCapacity:        4,
		Currency:            "INR",
	}
}

func newTestUseCase(repo *fakeBookingRepo, gateway *fakeGateway) *UseCase {
	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		7:  {ID: 7, Name: "Hydra Facial", Category: "Skin", Price: 250000},
		13: {ID: 13, Name: "Consultation", Category: "Misc", Price: 0},
	}}
	uc := NewUseCase(repo, catalog, gateway, testSettings(), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    42,
		ServiceID: 7,
		Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		TimeLabel: types.TimeString("14:00"),
	}
}

func TestInitiateBooking_Success(t *testing.T) {
	gateway := &fakeGateway{}
	uc := newTestUseCase(&fakeBookingRepo{count: 2}, gateway)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "order_test", resp.OrderID)
	assert.Equal(t, int64(200000), resp.Amount, "order amount is the advance")
	assert.Equal(t, int64(250000), resp.TotalAmount)
	assert.Equal(t, int64(200000), resp.AdvanceAmount)
	assert.Equal(t, int64(50000), resp.BalanceAmount)
	assert.Equal(t, "INR", resp.Currency)

	assert.Equal(t, int64(200000), gateway.lastAmount, "gateway must be charged the advance only")
}

func TestInitiateBooking_SlotFull(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{count: 4}, &fakeGateway{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestInitiateBooking_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeGateway{})

	req := validRequest()
	req.Date = time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestInitiateBooking_OffGridLabel(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeGateway{})

	req := validRequest()
	req.TimeLabel = types.TimeString("14:17")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestInitiateBooking_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeGateway{})

	req := validRequest()
	req.ServiceID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestInitiateBooking_FreeServiceNotBookable(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeGateway{})

	req := validRequest()
	req.ServiceID = 13

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestInitiateBooking_GatewayError(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("connection refused")}
	uc := newTestUseCase(&fakeBookingRepo{}, gateway)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGateway)
}
