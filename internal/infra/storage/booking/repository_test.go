package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func bookingRow(id int64, status domain.BookingStatus, orderID string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		id, int64(7), int64(3), "Haircut", now.Truncate(24*time.Hour), "14:00", string(status),
		int64(100000), int64(80000), int64(20000),
		orderID, "pay_adv_1", nil, nil,
		nil, nil, nil, nil, nil, nil,
		now, now,
	)
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			UserID:           7,
			ServiceID:        3,
			ServiceName:      "Haircut",
			BookingDate:      now.Truncate(24 * time.Hour),
			TimeLabel:        mustTimeString(t, "14:00"),
			Status:           domain.StatusConfirmed,
			TotalAmount:      100000,
			AdvanceAmount:    80000,
			BalanceAmount:    20000,
			AdvanceOrderID:   "order_adv_1",
			AdvancePaymentID: "pay_adv_1",
		}
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))

		created, err := repo.Create(context.Background(), newBooking())
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.WithinDuration(t, now, created.CreatedAt, time.Second)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Order", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_advance_order_id_key"})

		created, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrDuplicateOrder)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("connection reset"))

		created, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByAdvanceOrderID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM bookings`).
			WithArgs("order_adv_1").
			WillReturnRows(bookingRow(42, domain.StatusConfirmed, "order_adv_1", time.Now()))

		b, err := repo.GetByAdvanceOrderID(context.Background(), "order_adv_1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), b.ID)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.Equal(t, "order_adv_1", b.AdvanceOrderID)
		assert.Nil(t, b.BalanceOrderID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM bookings`).
			WithArgs("order_missing").
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		b, err := repo.GetByAdvanceOrderID(context.Background(), "order_missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Nil(t, b)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM bookings`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(bookingColumns))

		b, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Nil(t, b)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkServiceDone(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkServiceDone(context.Background(), 42)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not In Expected Status", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkServiceDone(context.Background(), 42)
		assert.ErrorIs(t, err, ErrNotInExpectedStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompleteWithBalancePayment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CompleteWithBalancePayment(context.Background(), "order_bal_1", "pay_bal_1")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Completed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CompleteWithBalancePayment(context.Background(), "order_bal_1", "pay_bal_1")
		assert.ErrorIs(t, err, ErrNotInExpectedStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancel(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(context.Background(), 42, "передумал")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Terminal Status", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), 42, "передумал")
		assert.ErrorIs(t, err, ErrNotInExpectedStatus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountActiveForSlot(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("Counts Rows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).
				AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))

		count, err := repo.CountActiveForSlot(context.Background(), date, mustTimeString(t, "14:00"))
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Slot", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		count, err := repo.CountActiveForSlot(context.Background(), date, mustTimeString(t, "14:00"))
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountActiveByDate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT time_label, COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"time_label", "count"}).
			AddRow("10:00", 4).
			AddRow("14:00", 1))

	counts, err := repo.CountActiveByDate(context.Background(), date)
	require.NoError(t, err)
	assert.Len(t, counts, 2)
	assert.Equal(t, 4, counts[mustTimeString(t, "10:00")])
	assert.Equal(t, 1, counts[mustTimeString(t, "14:00")])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Without Filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count", "collected", "pending"}).
				AddRow(12, int64(640000), int64(60000)))

		stats, err := repo.Stats(context.Background(), domain.LedgerFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(12), stats.TotalBookings)
		assert.Equal(t, int64(640000), stats.CollectedRevenue)
		assert.Equal(t, int64(60000), stats.PendingBalance)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("With Date Range", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count", "collected", "pending"}).
				AddRow(3, int64(240000), int64(20000)))

		stats, err := repo.Stats(context.Background(), domain.LedgerFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalBookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetBalanceOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetBalanceOrder(context.Background(), 42, "order_bal_1")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Order Reused Elsewhere", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_balance_order_id_key"})

		err := repo.SetBalanceOrder(context.Background(), 42, "order_bal_1")
		assert.ErrorIs(t, err, ErrDuplicateOrder)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
