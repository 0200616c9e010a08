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

	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createFacilityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_facility"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_facility"
	getFacilityBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_facility_bookings"
	getOptimalSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_optimal_slot"
	getQuoteHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listFacilitiesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_facilities"
	markSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/mark_slot"
	updateFacilityConfigHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_facility_config"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	userServiceClient "github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocation"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	facilitiesService "github.com/m04kA/SMC-ParkingService/internal/service/facilities"
	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
	cancelBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_booking"
	completeBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/complete_booking"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	createFacilityUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_facility"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		facilityRepository *facilityRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	// Интерфейс transaction manager (используется в use cases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		facilityRepository = facilityRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем движки подбора слотов и ценообразования
	allocationEngine := allocation.NewEngine()
	pricingEngine := pricing.NewEngine()

	// Инициализируем сервисы
	facilitySvc := facilitiesService.NewService(
		facilityRepository,
		allocationEngine,
		pricingEngine,
		&facilitiesService.RealTimeProvider{},
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		facilityRepository,
		log,
	)

	// Инициализируем use cases
	createFacilityUseCase := createFacilityUC.NewUseCase(
		facilityRepository,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		facilityRepository,
		bookingRepository,
		userClient,
		allocationEngine,
		pricingEngine,
		txMgr,
		log,
	)
	completeBookingUseCase := completeBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		facilityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listFacilities := listFacilitiesHandler.NewHandler(facilitySvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitySvc, log)
	getQuote := getQuoteHandler.NewHandler(facilitySvc, log)
	getOptimalSlot := getOptimalSlotHandler.NewHandler(facilitySvc, log)
	createFacility := createFacilityHandler.NewHandler(createFacilityUseCase, log)
	updateFacilityConfig := updateFacilityConfigHandler.NewHandler(facilitySvc, log)
	markSlot := markSlotHandler.NewHandler(facilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(completeBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу проставляется X-Request-ID
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список парковок
	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)

	// Парковка с полной сеткой слотов
	api.HandleFunc("/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)

	// Действующий тариф парковки
	api.HandleFunc("/facilities/{facilityId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// Подбор оптимального слота без бронирования
	api.HandleFunc("/facilities/{facilityId}/optimal-slot", getOptimalSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Парковки (для владельцев) ---
	// Создание парковки
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)

	// Обновление параметров парковки
	protected.HandleFunc("/facilities/{facilityId}/config", updateFacilityConfig.Handle).Methods(http.MethodPut)

	// Ручное изменение статуса слота
	protected.HandleFunc("/facilities/{facilityId}/slots/{slotId}", markSlot.Handle).Methods(http.MethodPatch)

	// Список бронирований парковки
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Завершение бронирования с расчетом суммы
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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
