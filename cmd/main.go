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

	cancelBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_booking"
	quotePriceHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/quote_price"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningService/internal/config"
	"github.com/m04kA/SMC-CleaningService/internal/infra/cache"
	dayRecordRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/dayrecord"
	serviceConfigRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/serviceconfig"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	bookingsService "github.com/m04kA/SMC-CleaningService/internal/service/bookings"
	pricingService "github.com/m04kA/SMC-CleaningService/internal/service/pricing"
	cancelBookingUC "github.com/m04kA/SMC-CleaningService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-CleaningService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
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

	log.Info("Starting SMC-CleaningService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории (с метриками или без)
	var dbExecutor dayRecordRepo.DBExecutor = db
	if cfg.Metrics.Enabled {
		dbExecutor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	dayRepository := dayRecordRepo.NewRepository(dbExecutor)
	configRepository := serviceConfigRepo.NewRepository(dbExecutor)
	settingsRepository := settingsRepo.NewRepository(dbExecutor)

	// Инициализируем кеш доступности.
	// Redis опционален: при недоступности переключаемся на in-memory кеш
	cacheTTL := time.Duration(cfg.Redis.CacheTTL) * time.Second
	memoryCache := cache.NewMemoryAvailabilityCache(cacheTTL)

	var availabilityCache cache.AvailabilityCache = memoryCache
	if cfg.Redis.Enabled {
		redisClient := cache.NewRedisClient(cfg.Redis)

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx, redisClient); err != nil {
			log.Warn("Redis unavailable at startup, failover cache will retry: %v", err)
		} else {
			log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Address, cfg.Redis.DB)
		}
		cancelPing()

		redisCache := cache.NewRedisAvailabilityCache(redisClient, cacheTTL)
		availabilityCache = cache.NewFailoverAvailabilityCache(redisCache, memoryCache, log)
	} else {
		log.Info("Redis disabled, using in-memory availability cache")
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(configRepository, settingsRepository, log)
	bookingsSvc := bookingsService.NewService(dayRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		dayRepository,
		configRepository,
		settingsRepository,
		availabilityCache,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		dayRepository,
		settingsRepository,
		availabilityCache,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		dayRepository,
		settingsRepository,
		availabilityCache,
		log,
	)

	if cfg.Metrics.Enabled {
		createBookingUseCase.WithMetrics(metricsCollector)
		cancelBookingUseCase.WithMetrics(metricsCollector)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	quotePrice := quotePriceHandler.NewHandler(pricingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Календарь доступности для виджета записи
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по дате и ID
	api.HandleFunc("/bookings/{date}/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (идемпотентная)
	api.HandleFunc("/bookings/{date}/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Предварительный расчет цены без резервирования слотов
	api.HandleFunc("/price-quote", quotePrice.Handle).Methods(http.MethodPost)

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
