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

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/confirm_booking"
	getAvailableServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_services"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getClientPackagesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_client_packages"
	getCompanyBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_company_bookings"
	getCompanyConfigHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_company_config"
	getPendingServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_pending_services"
	manageDraftHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/manage_draft"
	paymentWebhookHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/process_payment_webhook"
	selectPendingServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/select_pending_service"
	startRescheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/start_reschedule"
	updateCompanyConfigHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_company_config"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/cache/companyname"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	clientPackageRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/clientpackage"
	configRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/config"
	employeeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/employee"
	pendingServiceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/pendingservice"
	transactionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/transaction"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/mercadopago"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	configService "github.com/m04kA/SMC-SalonBooking/internal/service/config"
	eligibilityService "github.com/m04kA/SMC-SalonBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	packagesService "github.com/m04kA/SMC-SalonBooking/internal/service/packages"
	pendingService "github.com/m04kA/SMC-SalonBooking/internal/service/pending"
	confirmBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
	getAvailableServicesUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_services"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	paymentWebhookUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/process_payment_webhook"
	selectPendingServiceUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/select_pending_service"
	startRescheduleUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/start_reschedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/dynamo"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ratelimit"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// При выключенных метриках collector остается nil: его методы ничего не делают
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к документному хранилищу
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	dynamoClient, err := dynamo.NewClient(initCtx, dynamo.Config{
		Region:          cfg.DynamoDB.Region,
		Endpoint:        cfg.DynamoDB.Endpoint,
		AccessKeyID:     cfg.DynamoDB.AccessKeyID,
		SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
	})
	initCancel()
	if err != nil {
		log.Fatal("Failed to create DynamoDB client: %v", err)
	}
	documents := dynamo.NewLimited(dynamoClient, ratelimit.New(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	log.Info("DynamoDB client initialized (region=%s, endpoint=%q, rate=%.1f/s, burst=%d)",
		cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint, cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	// Платежный провайдер
	paymentGateway, err := mercadopago.NewClient(cfg.MercadoPago.AccessToken, cfg.MercadoPago.MockMode, log)
	if err != nil {
		log.Fatal("Failed to create payment client: %v", err)
	}
	log.Info("Payment client initialized (mock=%t)", cfg.MercadoPago.MockMode)

	// Окно записи
	windowStart, windowEnd, err := cfg.Booking.Window()
	if err != nil {
		log.Fatal("Invalid booking window: %v", err)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	employeeRepository := employeeRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)

	tables := cfg.DynamoDB.Tables
	clientPackageRepository := clientPackageRepo.NewRepository(documents, tables.ClientPackages)
	pendingServiceRepository := pendingServiceRepo.NewRepository(documents, tables.PendingServices)
	clientRepository := clientRepo.NewRepository(documents, tables.Clients)
	transactionRepository := transactionRepo.NewRepository(documents, tables.Transactions, tables.Subscriptions)

	// Кэш отображаемого имени салона
	nameCache := companyname.New(time.Duration(cfg.Cache.NameTTL) * time.Second)

	// Черновики рабочих процессов записи (только в памяти)
	drafts := lines.NewStoreWithConfig(lines.StoreConfig{
		IdleTTL:   cfg.Booking.DraftIdleTTL(),
		MaxDrafts: cfg.Booking.MaxDrafts,
	})

	// Инициализируем сервисы
	packageSvc := packagesService.NewService(
		clientPackageRepository,
		catalogRepository,
		metricsCollector,
		log,
	)
	pendingSvc := pendingService.NewService(
		pendingServiceRepository,
		clientRepository,
		catalogRepository,
		metricsCollector,
		log,
	)
	eligibilitySvc := eligibilityService.NewService(
		catalogRepository,
		packageSvc,
		pendingSvc,
		metricsCollector,
		log,
	)
	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		employeeRepository,
		catalogRepository,
		clientPackageRepository,
		pendingServiceRepository,
		documents,
		txMgr,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		nameCache,
		log,
	)

	// Инициализируем use cases
	getAvailableServicesUseCase := getAvailableServicesUC.NewUseCase(
		employeeRepository,
		eligibilitySvc,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		drafts,
		appointmentRepository,
		employeeRepository,
		catalogRepository,
		log,
	).WithSlotWindow(windowStart, windowEnd)

	startRescheduleUseCase := startRescheduleUC.NewUseCase(drafts, packageSvc, log)
	selectPendingServiceUseCase := selectPendingServiceUC.NewUseCase(drafts, pendingSvc, log)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		drafts,
		packageSvc,
		bookingSvc,
		metricsCollector,
		log,
	)

	paymentWebhookUseCase := paymentWebhookUC.NewUseCase(
		paymentGateway,
		transactionRepository,
		transactionRepository,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	manageDraft := manageDraftHandler.NewHandler(drafts, log)
	getAvailableServices := getAvailableServicesHandler.NewHandler(getAvailableServicesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	startReschedule := startRescheduleHandler.NewHandler(startRescheduleUseCase, log)
	selectPendingService := selectPendingServiceHandler.NewHandler(selectPendingServiceUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(paymentWebhookUseCase, log)
	getClientPackages := getClientPackagesHandler.NewHandler(packageSvc, log)
	getPendingServices := getPendingServicesHandler.NewHandler(pendingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyConfig := getCompanyConfigHandler.NewHandler(configSvc, log)
	updateCompanyConfig := updateCompanyConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Отображаемое имя салона
	api.HandleFunc("/company", getCompanyConfig.HandleDisplayName).Methods(http.MethodGet)

	// Уведомления платежного провайдера
	api.HandleFunc("/webhooks/payments", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Салон ---
	protected.HandleFunc("/company/settings", getCompanyConfig.HandleSettings).Methods(http.MethodGet)
	protected.HandleFunc("/company", updateCompanyConfig.Handle).Methods(http.MethodPut)

	// --- Клиенты: пакеты и долги по услугам ---
	protected.HandleFunc("/clients/{clientId}/packages", getClientPackages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/packages/{packageId}/sessions",
		getClientPackages.HandleSessions).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/pending-services", getPendingServices.Handle).Methods(http.MethodGet)

	// --- Сотрудники ---
	protected.HandleFunc("/employees/{employeeId}/available-services",
		getAvailableServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/appointments", getCompanyBookings.Handle).Methods(http.MethodGet)

	// --- Рабочий процесс мультизаписи ---
	protected.HandleFunc("/drafts", manageDraft.HandleOpen).Methods(http.MethodPost)

	// Черновик доступен только открывшему его сотруднику
	draftRoutes := protected.PathPrefix("/drafts/{draftId}").Subrouter()
	draftRoutes.Use(middleware.DraftOwner(drafts))
	draftRoutes.HandleFunc("", manageDraft.HandleGet).Methods(http.MethodGet)
	draftRoutes.HandleFunc("", manageDraft.HandleDiscard).Methods(http.MethodDelete)
	draftRoutes.HandleFunc("/selection", manageDraft.HandleSelect).Methods(http.MethodPut)
	draftRoutes.HandleFunc("/lines", manageDraft.HandleAddLine).Methods(http.MethodPost)
	draftRoutes.HandleFunc("/lines/{index}", manageDraft.HandleRemoveLine).Methods(http.MethodDelete)
	draftRoutes.HandleFunc("/lines/{index}", manageDraft.HandleUpdateLine).Methods(http.MethodPatch)
	draftRoutes.HandleFunc("/lines/{index}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	draftRoutes.HandleFunc("/reschedule", startReschedule.Handle).Methods(http.MethodPost)
	draftRoutes.HandleFunc("/pending", selectPendingService.Handle).Methods(http.MethodPost)
	draftRoutes.HandleFunc("/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

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

	log.Info("Server stopped gracefully, open drafts discarded: %d", drafts.Len())
}
