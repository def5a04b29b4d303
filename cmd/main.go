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

	adminAddonsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_addons"
	adminBlockedDatesHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_blocked_dates"
	adminListBookingsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_list_bookings"
	adminRecordPaymentHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_record_payment"
	adminShowingConfigHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_showing_config"
	adminShowingWindowsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_showing_windows"
	adminUpdateStatusHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/admin_update_status"
	cancelManagedBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/cancel_managed_booking"
	confirmPaymentHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_booking"
	createCheckoutHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_checkout"
	getAvailabilityHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_availability"
	getManagedBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_managed_booking"
	getShowingSlotsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_showing_slots"
	listAddonsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/list_addons"
	updateManagedBookingHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/update_managed_booking"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/calendar"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/stripeclient"
	"github.com/m04kA/SMC-VenueBookingService/internal/pricing"
	availabilityService "github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/SMC-VenueBookingService/internal/service/notifications"
	tokensService "github.com/m04kA/SMC-VenueBookingService/internal/service/tokens"
	confirmPaymentUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	createCheckoutUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_checkout"
	getAvailabilityUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
	getShowingSlotsUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_showing_slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-VenueBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Календарь площадки: все даты и времена интерпретируются в её таймзоне
	cal, err := calendar.New(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}
	log.Info("Business timezone: %s", cfg.Business.Timezone)

	// Инициализируем метрики. Коллекторы регистрируются всегда,
	// endpoint и HTTP middleware включаются конфигом.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
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

	// Инициализируем интеграции
	stripeClient, err := stripeclient.NewClient(stripeclient.Config{
		SecretKey:  cfg.Stripe.SecretKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
		Currency:   cfg.Stripe.Currency,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize stripe client: %v", err)
	}

	mail := mailer.New(mailer.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromName:   cfg.SMTP.FromName,
		VenueName:  cfg.Business.VenueName,
		AdminEmail: cfg.Business.AdminEmail,
		ManageURL:  cfg.Business.ManageURL,
	}, cal, log)
	log.Info("Integrations initialized (stripe currency=%s, smtp host=%q)",
		cfg.Stripe.Currency, cfg.SMTP.Host)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Ценовой движок с фиксированными тарифами из конфига
	pricingEngine := pricing.NewEngine(pricing.Rates{
		WeekdayHourlyRateCents:    cfg.Pricing.WeekdayHourlyRateCents,
		WeekendHourlyRateCents:    cfg.Pricing.WeekendHourlyRateCents,
		ExtraSetupHourlyRateCents: cfg.Pricing.ExtraSetupHourlyRateCents,
		DepositCents:              cfg.Pricing.DepositCents,
	})

	// Инициализируем сервисы
	notifier := notificationsService.New(mail, log, metricsCollector)
	tokenSvc := tokensService.New(bookingRepository, log)
	availabilitySvc := availabilityService.New(bookingRepository, scheduleRepository, cal, log)
	bookingSvc := bookingsService.New(
		bookingRepository,
		catalogRepository,
		tokenSvc,
		notifier,
		txMgr,
		log,
		metricsCollector,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		availabilitySvc,
		pricingEngine,
		tokenSvc,
		notifier,
		txMgr,
		cal,
		createBookingUC.ContractTerms{
			Version: cfg.Business.ContractVersion,
			Text:    cfg.Business.ContractText,
		},
		log,
		metricsCollector,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(availabilitySvc, log)

	getShowingSlotsUseCase := getShowingSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		cal,
		log,
	)

	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		bookingRepository,
		stripeClient,
		cfg.Business.VenueName,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		stripeClient,
		tokenSvc,
		notifier,
		txMgr,
		log,
		metricsCollector,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, cal, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getShowingSlots := getShowingSlotsHandler.NewHandler(getShowingSlotsUseCase, log)
	listAddons := listAddonsHandler.NewHandler(catalogRepository, log)
	getManagedBooking := getManagedBookingHandler.NewHandler(bookingSvc, cal, log)
	updateManagedBooking := updateManagedBookingHandler.NewHandler(bookingSvc, cal, log)
	cancelManagedBooking := cancelManagedBookingHandler.NewHandler(bookingSvc, cal, log)
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, cal, log)

	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, cal, log)
	adminUpdateStatus := adminUpdateStatusHandler.NewHandler(bookingSvc, cal, log)
	adminRecordPayment := adminRecordPaymentHandler.NewHandler(bookingSvc, cal, log)
	adminBlockedDates := adminBlockedDatesHandler.NewHandler(scheduleRepository, cal, log)
	adminShowingWindows := adminShowingWindowsHandler.NewHandler(scheduleRepository, log)
	adminShowingConfig := adminShowingConfigHandler.NewHandler(scheduleRepository, log)
	adminAddons := adminAddonsHandler.NewHandler(catalogRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Статус дня и слоты показов
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/showings", getShowingSlots.Handle).Methods(http.MethodGet)

	// Каталог доп. позиций
	api.HandleFunc("/addons", listAddons.Handle).Methods(http.MethodGet)

	// Создание бронирования (аренда или тур)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Платежи
	api.HandleFunc("/payments/checkout", createCheckout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	// Self-service по токену управления. Токен - bearer-секрет в пути,
	// поэтому эти роуты живут только за HTTPS.
	api.HandleFunc("/manage/bookings/{token}", getManagedBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/manage/bookings/{token}", updateManagedBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/manage/bookings/{token}/cancel", cancelManagedBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.APIKey))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", adminUpdateStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/payments", adminRecordPayment.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	admin.HandleFunc("/blocked-dates", adminBlockedDates.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates", adminBlockedDates.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates/{id}", adminBlockedDates.HandleDelete).Methods(http.MethodDelete)

	admin.HandleFunc("/showing-windows", adminShowingWindows.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/showing-windows", adminShowingWindows.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/showing-windows/{id}", adminShowingWindows.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/showing-windows/{id}", adminShowingWindows.HandleDelete).Methods(http.MethodDelete)

	admin.HandleFunc("/showing-config", adminShowingConfig.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/showing-config", adminShowingConfig.HandleUpdate).Methods(http.MethodPut)

	// --- Каталог ---
	admin.HandleFunc("/addons", adminAddons.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/addons", adminAddons.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/addons/{id}", adminAddons.HandleUpdate).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся фоновых рассылок, чтобы письма не потерялись на рестарте
	notifier.Wait()

	log.Info("Server stopped gracefully")
}
