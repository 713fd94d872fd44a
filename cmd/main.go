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

	addWaitlistHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/add_waitlist"
	changePasswordHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/change_password"
	checkWaitlistHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/check_waitlist"
	createPaymentLinkHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/create_payment_link"
	deleteBookingHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/delete_booking"
	fixTeeTimesHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/fix_tee_times"
	getBookingHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/get_booking"
	getBookingEmailsHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/get_booking_emails"
	getBookingsHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/get_bookings"
	getSegmentsHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/get_segments"
	healthHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/health"
	loginHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/login"
	removeWaitlistHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/remove_waitlist"
	updateBookingStatusHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/update_booking_status"
	updateNoteHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/update_note"
	updateTeeTimeHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/update_tee_time"
	updateWaitlistHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/update_waitlist"
	waitlistMatchesHandler "github.com/jimbobirecode/teemail-service/internal/api/handlers/waitlist_matches"
	"github.com/jimbobirecode/teemail-service/internal/api/middleware"
	"github.com/jimbobirecode/teemail-service/internal/config"
	bookingRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/booking"
	dashuserRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/dashuser"
	inboundemailRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/inboundemail"
	waitlistRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/waitlist"
	sendgridClient "github.com/jimbobirecode/teemail-service/internal/integrations/sendgrid"
	stripeClient "github.com/jimbobirecode/teemail-service/internal/integrations/stripe"
	"github.com/jimbobirecode/teemail-service/internal/mailer"
	authService "github.com/jimbobirecode/teemail-service/internal/service/auth"
	bookingsService "github.com/jimbobirecode/teemail-service/internal/service/bookings"
	marketingService "github.com/jimbobirecode/teemail-service/internal/service/marketing"
	waitlistService "github.com/jimbobirecode/teemail-service/internal/service/waitlist"
	fixTeeTimesUC "github.com/jimbobirecode/teemail-service/internal/usecase/fix_tee_times"
	"github.com/jimbobirecode/teemail-service/pkg/dbmetrics"
	"github.com/jimbobirecode/teemail-service/pkg/logger"
	"github.com/jimbobirecode/teemail-service/pkg/metrics"
	"github.com/jimbobirecode/teemail-service/pkg/simpletxmanager"
	"github.com/jimbobirecode/teemail-service/pkg/txmanager"
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

	log.Info("Starting teemail-service...")
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

	// Инициализируем интеграционных клиентов
	sendgrid := sendgridClient.NewClient(
		cfg.SendGrid.BaseURL,
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		time.Duration(cfg.SendGrid.Timeout)*time.Second,
		log,
	)
	stripe := stripeClient.NewClient(
		cfg.Stripe.BaseURL,
		cfg.Stripe.SecretKey,
		time.Duration(cfg.Stripe.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (SendGrid=%s timeout=%ds, Stripe=%s timeout=%ds)",
		cfg.SendGrid.BaseURL, cfg.SendGrid.Timeout, cfg.Stripe.BaseURL, cfg.Stripe.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
		userRepository     *dashuserRepo.Repository
		emailRepository    *inboundemailRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		userRepository = dashuserRepo.NewRepository(wrappedDB)
		emailRepository = inboundemailRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		userRepository = dashuserRepo.NewRepository(db)
		emailRepository = inboundemailRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		emailRepository,
		stripe,
		cfg.Stripe.Currency,
		log,
	)
	waitlistSvc := waitlistService.NewService(waitlistRepository, log)
	authSvc := authService.NewService(userRepository, log)
	marketingSvc := marketingService.NewService(bookingRepository, log)

	// Инициализируем use cases
	fixTeeTimesUseCase := fixTeeTimesUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(db)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateTeeTime := updateTeeTimeHandler.NewHandler(bookingSvc, log)
	updateNote := updateNoteHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getBookingEmails := getBookingEmailsHandler.NewHandler(bookingSvc, log)
	createPaymentLink := createPaymentLinkHandler.NewHandler(bookingSvc, log)
	fixTeeTimes := fixTeeTimesHandler.NewHandler(fixTeeTimesUseCase, log)
	addWaitlist := addWaitlistHandler.NewHandler(waitlistSvc, log)
	checkWaitlist := checkWaitlistHandler.NewHandler(waitlistSvc, log)
	updateWaitlist := updateWaitlistHandler.NewHandler(waitlistSvc, log)
	waitlistMatches := waitlistMatchesHandler.NewHandler(waitlistSvc, log)
	removeWaitlist := removeWaitlistHandler.NewHandler(waitlistSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	changePassword := changePasswordHandler.NewHandler(authSvc, log)
	getSegments := getSegmentsHandler.NewHandler(marketingSvc, log)

	// Запускаем фоновую рассылку (если включена)
	if cfg.Mailer.Enabled {
		mailRunner := mailer.NewRunner(cfg.Mailer, bookingRepository, sendgrid, log)
		go mailRunner.Start(context.Background(), stopMetricsCh)
		log.Info("Mailer started for club=%s", cfg.Mailer.Club)
	}

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/api/health", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют API ключ)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKey(cfg.API.Key))

	// --- Аутентификация дашборда ---
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/password", changePassword.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Массовое восстановление tee time; регистрируется до {bookingId}
	api.HandleFunc("/bookings/fix-tee-times", fixTeeTimes.Handle).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/tee-time", updateTeeTime.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/note", updateNote.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/emails", getBookingEmails.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/payment-link", createPaymentLink.Handle).Methods(http.MethodPost)

	// --- Очередь ожидания ---
	api.HandleFunc("/waitlist", addWaitlist.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist/check", checkWaitlist.Handle).Methods(http.MethodGet)
	api.HandleFunc("/waitlist/matches", waitlistMatches.Handle).Methods(http.MethodGet)
	api.HandleFunc("/waitlist/{waitlistId}", updateWaitlist.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/waitlist/{waitlistId}", removeWaitlist.Handle).Methods(http.MethodDelete)

	// --- Маркетинг ---
	api.HandleFunc("/marketing/segments", getSegments.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые горутины (метрики пула и рассылку)
	close(stopMetricsCh)

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
