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

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	checkAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/create_booking"
	createListingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/create_listing"
	createReviewHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/create_review"
	getAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_booking"
	getConversationHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_conversation"
	getListingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_listing"
	getMyBookingsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_my_bookings"
	getProviderHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_provider"
	getProviderListingsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_provider_listings"
	getProviderReviewsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/get_provider_reviews"
	onboardProviderHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/onboard_provider"
	searchListingsHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/search_listings"
	sendMessageHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/send_message"
	setListingActiveHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/set_listing_active"
	updateAvailabilityHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/update_booking_status"
	updateListingHandler "github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers/update_listing"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/config"
	availabilityRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	listingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/listing"
	messageRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/message"
	profileRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/profile"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	reviewRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	availabilityService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings"
	listingsService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
	messagesService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages"
	providersService "github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers"
	checkAvailabilityUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
	createReviewUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_review"
	getAvailableSlotsUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/get_available_slots"
	transitionBookingUC "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/kafka"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	configPath := config.PathFromEnv(defaultConfigPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	baseLog, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer baseLog.Close()
	log := baseLog.WithService(cfg.Metrics.ServiceName)

	log.Info("Starting SMC-MarketplaceBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики нужны use case'ам всегда, наружу реестр отдаётся только если включено
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	availabilityRepository := availabilityRepo.NewRepository(executor)
	listingRepository := listingRepo.NewRepository(executor)
	providerRepository := providerRepo.NewRepository(executor)
	profileRepository := profileRepo.NewRepository(executor)
	reviewRepository := reviewRepo.NewRepository(executor)
	messageRepository := messageRepo.NewRepository(executor)
	txMgr := txmanager.NewTransactionManager(executor)

	// Канал уведомлений: Kafka, если настроена, иначе только лог
	var (
		publisher notification.Publisher
		producer  *kafka.Producer
	)
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			MaxAttempts:  cfg.Kafka.MaxAttempts,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeoutMs) * time.Millisecond,
			RequiredAcks: cfg.Kafka.RequiredAcks,
			Compression:  cfg.Kafka.Compression,
		})
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		publisher = notification.NewKafkaPublisher(producer, cfg.Metrics.ServiceName)
		log.Info("Lifecycle events published to kafka (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = notification.NewLogPublisher(log)
		log.Info("Kafka disabled, lifecycle events are only logged")
	}

	dispatcher := notification.NewDispatcher(
		publisher,
		cfg.Kafka.QueueSize,
		time.Duration(cfg.Kafka.PublishTimeout)*time.Second,
		metricsCollector,
		log,
	)

	engine := lifecycle.NewEngine(lifecycle.Policy{
		ClientCanCancelConfirmed: cfg.Lifecycle.ClientCanCancelConfirmed,
	})

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		engine,
		bookingRepository,
		availabilityRepository,
		listingRepository,
		providerRepository,
		dispatcher,
		txMgr,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		engine,
		bookingRepository,
		availabilityRepository,
		providerRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		providerRepository,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		providerRepository,
		log,
	)
	createReviewUseCase := createReviewUC.NewUseCase(
		bookingRepository,
		reviewRepository,
		providerRepository,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, providerRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, providerRepository, txMgr, log)
	listingSvc := listingsService.NewService(listingRepository, providerRepository, log)
	providerSvc := providersService.NewService(providerRepository, profileRepository, reviewRepository, log)
	messageSvc := messagesService.NewService(messageRepository, profileRepository, bookingRepository, providerRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(transitionBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	createReview := createReviewHandler.NewHandler(createReviewUseCase, log)

	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)

	getProvider := getProviderHandler.NewHandler(providerSvc, log)
	getProviderReviews := getProviderReviewsHandler.NewHandler(providerSvc, log)
	onboardProvider := onboardProviderHandler.NewHandler(providerSvc, log)

	getProviderListings := getProviderListingsHandler.NewHandler(listingSvc, log)
	getListing := getListingHandler.NewHandler(listingSvc, log)
	searchListings := searchListingsHandler.NewHandler(listingSvc, log)
	createListing := createListingHandler.NewHandler(listingSvc, log)
	updateListing := updateListingHandler.NewHandler(listingSvc, log)
	setListingActive := setListingActiveHandler.NewHandler(listingSvc, log)

	sendMessage := sendMessageHandler.NewHandler(messageSvc, log)
	getConversation := getConversationHandler.NewHandler(messageSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metricsCollector.Registry, promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Исполнители и каталог ---
	api.HandleFunc("/providers/{providerId}", getProvider.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/listings", getProviderListings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/reviews", getProviderReviews.Handle).Methods(http.MethodGet)
	api.HandleFunc("/listings", searchListings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/listings/{listingId}", getListing.Handle).Methods(http.MethodGet)

	// --- Доступность исполнителя ---
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability/check", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/review", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me/bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет исполнителя ---
	protected.HandleFunc("/providers", onboardProvider.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/listings", createListing.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/listings/{listingId}", updateListing.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/listings/{listingId}/active", setListingActive.Handle).Methods(http.MethodPatch)

	// --- Сообщения ---
	protected.HandleFunc("/messages", sendMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{profileId}", getConversation.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAge).Handler(r),
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

	// Сначала дожидаемся доставки очереди уведомлений, потом закрываем продюсер
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("Notification queue not drained: %v", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
