package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/cancel_booking"
	confirmAdvanceHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/confirm_advance"
	confirmBalanceHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/confirm_balance"
	getAdminBookingsHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/get_admin_bookings"
	getAdminStatsHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/get_admin_stats"
	getAvailableSlotsHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/get_user_bookings"
	initiateBookingHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/initiate_booking"
	listServicesHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/list_services"
	markServiceDoneHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/mark_service_done"
	requestBalanceHandler "github.com/looklab/LookLab-BookingService/internal/api/handlers/request_balance"
	"github.com/looklab/LookLab-BookingService/internal/api/middleware"
	"github.com/looklab/LookLab-BookingService/internal/config"
	"github.com/looklab/LookLab-BookingService/internal/domain"
	bookingRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/looklab/LookLab-BookingService/internal/infra/storage/catalog"
	"github.com/looklab/LookLab-BookingService/internal/integrations/razorpay"
	bookingsService "github.com/looklab/LookLab-BookingService/internal/service/bookings"
	confirmAdvanceUC "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_advance"
	confirmBalanceUC "github.com/looklab/LookLab-BookingService/internal/usecase/confirm_balance"
	getAvailableSlotsUC "github.com/looklab/LookLab-BookingService/internal/usecase/get_available_slots"
	initiateBookingUC "github.com/looklab/LookLab-BookingService/internal/usecase/initiate_booking"
	requestBalanceUC "github.com/looklab/LookLab-BookingService/internal/usecase/request_balance"
	"github.com/looklab/LookLab-BookingService/pkg/dbmetrics"
	"github.com/looklab/LookLab-BookingService/pkg/logger"
	"github.com/looklab/LookLab-BookingService/pkg/metrics"
	"github.com/looklab/LookLab-BookingService/pkg/simpletxmanager"
	"github.com/looklab/LookLab-BookingService/pkg/txmanager"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting LookLab-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Собираем настройки салона
	settings, err := buildFacilitySettings(cfg)
	if err != nil {
		log.Fatal("Invalid booking configuration: %v", err)
	}
	log.Info("Facility settings: open=%s close=%s slot=%dm capacity=%d",
		settings.OpenTime, settings.CloseTime, settings.SlotDurationMinutes, settings.SlotCapacity)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент платежного шлюза
	gateway := razorpay.NewClient(
		cfg.Razorpay.BaseURL,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		time.Duration(cfg.Razorpay.Timeout)*time.Second,
		log,
	)
	log.Info("Razorpay client initialized (base_url=%s timeout=%ds)", cfg.Razorpay.BaseURL, cfg.Razorpay.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.Wrap(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, settings, log)
	initiateBookingUseCase := initiateBookingUC.NewUseCase(bookingRepository, catalogRepository, gateway, settings, log)
	confirmAdvanceUseCase := confirmAdvanceUC.NewUseCase(bookingRepository, catalogRepository, gateway, txMgr, settings, log)
	requestBalanceUseCase := requestBalanceUC.NewUseCase(bookingRepository, gateway, log, settings.Currency)
	confirmBalanceUseCase := confirmBalanceUC.NewUseCase(bookingRepository, gateway, log)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogRepository, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	initiateBooking := initiateBookingHandler.NewHandler(initiateBookingUseCase, log)
	confirmAdvance := confirmAdvanceHandler.NewHandler(confirmAdvanceUseCase, log)
	requestBalance := requestBalanceHandler.NewHandler(requestBalanceUseCase, log)
	confirmBalance := confirmBalanceHandler.NewHandler(confirmBalanceUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	markServiceDone := markServiceDoneHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getAdminStats := getAdminStatsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; флаг персонала вычисляется для всех маршрутов
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.StaffFlag(cfg.Auth.StaffKey))

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Сетка доступности слотов на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Инициация бронирования: создание авансового заказа
	protected.HandleFunc("/bookings/initiate", initiateBooking.Handle).Methods(http.MethodPost)

	// Подтверждение авансового платежа: создание бронирования
	protected.HandleFunc("/payments/advance/confirm", confirmAdvance.Handle).Methods(http.MethodPost)

	// Заказ на доплату после оказания услуги
	protected.HandleFunc("/bookings/{bookingId}/balance/order", requestBalance.Handle).Methods(http.MethodPost)

	// Подтверждение доплаты: завершение бронирования
	protected.HandleFunc("/payments/balance/confirm", confirmBalance.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-Key header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// Отметка об оказании услуги
	staff.HandleFunc("/bookings/{bookingId}/service-done", markServiceDone.Handle).Methods(http.MethodPatch)

	// Журнал бронирований
	staff.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

	// Сводные показатели
	staff.HandleFunc("/admin/stats", getAdminStats.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// buildFacilitySettings собирает настройки салона из секции [booking]
func buildFacilitySettings(cfg *config.Config) (domain.FacilitySettings, error) {
	openTime, err := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	if err != nil {
		return domain.FacilitySettings{}, fmt.Errorf("parse open_time: %w", err)
	}

	closeTime, err := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	if err != nil {
		return domain.FacilitySettings{}, fmt.Errorf("parse close_time: %w", err)
	}

	return domain.FacilitySettings{
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		SlotCapacity:        cfg.Booking.SlotCapacity,
		Currency:            cfg.Booking.Currency,
	}, nil
}
