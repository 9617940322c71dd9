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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	cancelAllocationHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/cancel_allocation"
	changeAllocationStatusHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/change_allocation_status"
	checkAvailabilityHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/check_availability"
	deleteAllocationHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/delete_allocation"
	getAllocationHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_allocation"
	getAllocationSummaryHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_allocation_summary"
	getAlternativeSlotsHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_alternative_slots"
	getAvailableSlotsHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_available_slots"
	getResourceHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_resource"
	getResourceAllocationsHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_resource_allocations"
	getResourceConflictsHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/get_resource_conflicts"
	listResourcesHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/list_resources"
	requestAllocationHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/request_allocation"
	rescheduleAllocationHandler "github.com/m04kA/RMS-AvailabilityService/internal/api/handlers/reschedule_allocation"
	"github.com/m04kA/RMS-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/RMS-AvailabilityService/internal/config"
	allocationRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/allocation"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	resourceRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/resource"
	"github.com/m04kA/RMS-AvailabilityService/internal/integrations/notifier"
	"github.com/m04kA/RMS-AvailabilityService/internal/integrations/rabbitmq"
	"github.com/m04kA/RMS-AvailabilityService/internal/integrations/webhook"
	allocationsService "github.com/m04kA/RMS-AvailabilityService/internal/service/allocations"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/slots"
	checkAvailabilityUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/check_availability"
	getAllocationSummaryUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_allocation_summary"
	getAlternativeSlotsUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_alternative_slots"
	getAvailableSlotsUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_available_slots"
	requestAllocationUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/request_allocation"
	rescheduleAllocationUC "github.com/m04kA/RMS-AvailabilityService/internal/usecase/reschedule_allocation"
	"github.com/m04kA/RMS-AvailabilityService/pkg/clock"
	"github.com/m04kA/RMS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/RMS-AvailabilityService/pkg/locker"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/metrics"
	"github.com/m04kA/RMS-AvailabilityService/pkg/txmanager"
)

// Интерфейсы зависимостей, выбираемых драйвером из конфигурации
type (
	allocationStore interface {
		allocationsService.AllocationRepository
		requestAllocationUC.AllocationRepository
		rescheduleAllocationUC.AllocationRepository
		conflicts.AllocationRepository
		getAllocationSummaryUC.AllocationRepository
	}

	resourceStore interface {
		registry.ResourceRepository
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	resourceLocker interface {
		Lock(ctx context.Context, key string) (func(), error)
	}
)

func main() {
	// Переменные из .env не перекрывают уже заданные в окружении
	_ = godotenv.Load()

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

	log.Info("Starting RMS-AvailabilityService...")
	log.Info("Configuration loaded: storage=%s, locker=%s, notifiers=%v",
		cfg.Storage.Driver, cfg.Locker.Driver, cfg.Notifier.Drivers)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	handlers.SetLocation(loc)

	grids, err := cfg.SlotGrids()
	if err != nil {
		log.Fatal("Invalid slot grids: %v", err)
	}

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var (
		allocations allocationStore
		resources   resourceStore
		txMgr       txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		allocations = allocationRepo.NewRepository(wrappedDB, loc)
		resources = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	case config.StorageDriverMemory:
		seed := cfg.SeedResources()
		allocations = memory.NewAllocations()
		resources = memory.NewResources(seed)
		txMgr = txmanager.Noop{}
		log.Info("In-memory storage initialized with %d resources", len(seed))
	}

	// Блокировка ресурса на время проверки и записи
	var lock resourceLocker
	switch cfg.Locker.Driver {
	case config.LockerDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		lock = locker.NewRedis(client, cfg.Locker.Prefix, cfg.LockTTL(), cfg.LockRetryInterval(), log)
		log.Info("Redis locker initialized (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.LockTTL())
	default:
		lock = locker.NewLocal()
	}

	// Уведомления
	var senders []notifier.Sender
	var publisher *rabbitmq.Publisher
	for _, driver := range cfg.Notifier.Drivers {
		switch driver {
		case config.NotifierDriverLog:
			senders = append(senders, notifier.NewLog(log))
		case config.NotifierDriverRabbitMQ:
			publisher, err = rabbitmq.NewPublisher(
				cfg.Notifier.RabbitMQ.URL,
				cfg.Notifier.RabbitMQ.Exchange,
				time.Duration(cfg.Notifier.RabbitMQ.Timeout)*time.Second,
				log,
			)
			if err != nil {
				log.Fatal("Failed to connect to RabbitMQ: %v", err)
			}
			senders = append(senders, publisher)
		case config.NotifierDriverWebhook:
			senders = append(senders, webhook.NewClient(
				cfg.Notifier.Webhook.URL,
				time.Duration(cfg.Notifier.Webhook.Timeout)*time.Second,
				log,
			))
		}
	}
	allocationNotifier := notifier.NewMulti(senders...)
	log.Info("Notifiers initialized: %v", cfg.Notifier.Drivers)

	// Инициализируем сервисы
	timeProvider := clock.Real{}
	resourceRegistry := registry.NewService(resources, cfg.Equipment, log)
	detector := conflicts.NewDetector(resourceRegistry, allocations, log)
	finder := slots.NewFinder(detector, grids, cfg.Engine.MaxSuggestions, log)
	allocationSvc := allocationsService.NewService(
		allocations,
		resourceRegistry,
		allocationNotifier,
		metricsCollector,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	requestAllocationUseCase := requestAllocationUC.NewUseCase(
		allocations,
		resourceRegistry,
		detector,
		finder,
		lock,
		txMgr,
		allocationNotifier,
		metricsCollector,
		timeProvider,
		log,
	)
	rescheduleAllocationUseCase := rescheduleAllocationUC.NewUseCase(
		allocations,
		resourceRegistry,
		detector,
		finder,
		lock,
		txMgr,
		allocationNotifier,
		metricsCollector,
		timeProvider,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(resourceRegistry, detector, finder, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(resourceRegistry, finder, timeProvider, log)
	getAlternativeSlotsUseCase := getAlternativeSlotsUC.NewUseCase(resourceRegistry, finder, log)
	getAllocationSummaryUseCase := getAllocationSummaryUC.NewUseCase(resourceRegistry, allocations, finder, log)

	// Инициализируем handlers
	requestAllocation := requestAllocationHandler.NewHandler(requestAllocationUseCase, log)
	rescheduleAllocation := rescheduleAllocationHandler.NewHandler(rescheduleAllocationUseCase, log)
	getAllocation := getAllocationHandler.NewHandler(allocationSvc, log)
	cancelAllocation := cancelAllocationHandler.NewHandler(allocationSvc, log)
	changeAllocationStatus := changeAllocationStatusHandler.NewHandler(allocationSvc, log)
	deleteAllocation := deleteAllocationHandler.NewHandler(allocationSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAlternativeSlots := getAlternativeSlotsHandler.NewHandler(getAlternativeSlotsUseCase, log)
	getAllocationSummary := getAllocationSummaryHandler.NewHandler(getAllocationSummaryUseCase, log)
	listResources := listResourcesHandler.NewHandler(resourceRegistry, log)
	getResource := getResourceHandler.NewHandler(resourceRegistry, log)
	getResourceAllocations := getResourceAllocationsHandler.NewHandler(allocationSvc, log)
	getResourceConflicts := getResourceConflictsHandler.NewHandler(detector, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log), middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Аллокации ---
	api.HandleFunc("/allocations", requestAllocation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/allocations/{allocationId}", getAllocation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/allocations/{allocationId}", deleteAllocation.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/allocations/{allocationId}/window", rescheduleAllocation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/allocations/{allocationId}/cancel", cancelAllocation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/allocations/{allocationId}/{action:confirm|complete}",
		changeAllocationStatus.Handle).Methods(http.MethodPatch)

	// --- Доступность ---
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Ресурсы ---
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/allocations", getResourceAllocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/alternatives", getAlternativeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/conflicts", getResourceConflicts.Handle).Methods(http.MethodGet)

	// --- Сводка загрузки ---
	api.HandleFunc("/summary", getAllocationSummary.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close RabbitMQ publisher: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
