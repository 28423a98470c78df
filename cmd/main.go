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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	auditViewsHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/audit_views"
	cancelBookingHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/get_customer_bookings"
	getScheduleConfigHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/get_schedule_config"
	getShopBookingsHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/get_shop_bookings"
	intentHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/intent"
	updateScheduleConfigHandler "github.com/m04kA/SMC-WorkshopAppointments/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/config"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/events"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/memory"
	kvMongo "github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/mongo"
	kvPostgres "github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/postgres"
	kvRedis "github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv/redis"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/dispatcher"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/reservations"
	"github.com/m04kA/SMC-WorkshopAppointments/internal/service/schedule"
	cancelBookingUC "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-WorkshopAppointments/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/logger"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/metrics"
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
	// Код выхода выставляется перед return, чтобы отработали все отложенные Close
	exitCode := 0
	defer func() {
		log.Close()
		os.Exit(exitCode)
	}()

	log.Info("Starting SMC-WorkshopAppointments...")

	// Метрики собираются всегда, наружу отдаются только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаемся к хранилищу
	backend, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("Failed to open %s store: %v", cfg.Storage.Backend, err)
		exitCode = 1
		return
	}
	store := kv.NewTimeout(
		kv.NewMetered(backend, cfg.Storage.Backend, metricsCollector),
		time.Duration(cfg.Storage.RequestTimeout)*time.Second,
	)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("Failed to close store: %v", err)
		}
	}()

	// Публикация событий
	var publisher events.Publisher = events.NewNoop()
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			log.Error("Failed to create event publisher: %v", err)
			exitCode = 1
			return
		}
		publisher = kafkaPublisher
		log.Info("Events are published to topic %s (brokers=%v)", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	scheduleSvc := schedule.NewService(store, log)
	reservationSvc := reservations.NewService(store, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store,
		scheduleSvc,
		createBookingUC.UUIDGenerator{},
		publisher,
		createBookingUC.Options{
			DefaultShopID:   cfg.Booking.DefaultShopID,
			StrictSlotGuard: cfg.Booking.StrictSlotGuard,
			AtomicViews:     cfg.Booking.UseAtomicViews(),
		},
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store,
		publisher,
		cancelBookingUC.Options{
			DefaultShopID:    cfg.Booking.DefaultShopID,
			AtomicViews:      cfg.Booking.UseAtomicViews(),
			ReleaseSlotGuard: cfg.Booking.StrictSlotGuard,
		},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, scheduleSvc, cfg.Booking.DefaultShopID, log)

	intentDispatcher := dispatcher.NewDispatcher(
		createBookingUseCase,
		cancelBookingUseCase,
		getAvailableSlotsUseCase,
		scheduleSvc,
		metricsCollector,
		log,
		cfg.Booking.DefaultShopID,
		cfg.Booking.MaxListedSlots,
	)
	log.Info("Booking engine ready (backend=%s, strict_slot_guard=%t, atomic_views=%t)",
		cfg.Storage.Backend, cfg.Booking.StrictSlotGuard, cfg.Booking.UseAtomicViews())

	// Инициализируем handlers
	intent := intentHandler.NewHandler(intentDispatcher, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(reservationSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(reservationSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(reservationSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	auditViews := auditViewsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// DIALOGUE WEBHOOK
	// ============================================================

	var webhook http.Handler = http.HandlerFunc(intent.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RPS,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.TTL)*time.Second,
			log,
		)
		go limiter.Run(ctx, time.Minute)
		webhook = limiter.Limit(webhook)
		log.Info("Rate limit enabled for intents: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Handle("/intents", webhook).Methods(http.MethodPost)

	// ============================================================
	// REST
	// ============================================================

	// --- Записи ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/customers/{phone}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Мастерские ---
	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/bookings/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/hours", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/hours", updateScheduleConfig.Handle).Methods(http.MethodPut)
	api.HandleFunc("/shops/{shopId}/audit", auditViews.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Ожидаем сигнал завершения или ошибку сервера
	if err := serve(ctx, srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second, log); err != nil {
		log.Error("%v", err)
		exitCode = 1
	}
}

// openStore подключает выбранный бэкенд хранилища
func openStore(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}
		repo := kvPostgres.NewRepository(db, cfg.Postgres.Table)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Connected to PostgreSQL (host=%s, port=%d, db=%s, table=%s)",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, cfg.Postgres.Table)
		return repo, nil

	case config.BackendRedis:
		client := goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping: %w", err)
		}
		log.Info("Connected to Redis (addrs=%v, db=%d)", cfg.Redis.Addrs, cfg.Redis.DB)
		return kvRedis.NewStore(client, cfg.Redis.KeyPrefix), nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ping: %w", err)
		}
		store := kvMongo.NewStore(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info("Connected to MongoDB (db=%s, collection=%s); atomic views fall back to sequential writes",
			cfg.Mongo.Database, cfg.Mongo.Collection)
		return store, nil

	default:
		log.Warn("Using in-memory store: data is lost on restart")
		return memory.NewStore(), nil
	}
}
