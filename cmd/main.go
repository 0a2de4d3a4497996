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
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"golang.org/x/time/rate"

	addItemHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/add_item"
	applyCouponHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/apply_coupon"
	createSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/delete_session"
	dispatchEventHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/dispatch_event"
	getFreePeriodsHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_free_periods"
	getSessionHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/get_session"
	removeCouponHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/remove_coupon"
	removeItemHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/remove_item"
	showDatesHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/show_dates"
	submitStepHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/submit_step"
	updateStepHandler "github.com/m04kA/SMC-BookingWizard/internal/api/handlers/update_step"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/config"
	"github.com/m04kA/SMC-BookingWizard/internal/infra/cache"
	sessionRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingWizard/internal/payments"
	"github.com/m04kA/SMC-BookingWizard/internal/repository"
	sessionsService "github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/internal/steps"
	getFreePeriodsUC "github.com/m04kA/SMC-BookingWizard/internal/usecase/get_free_periods"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
	"github.com/m04kA/SMC-BookingWizard/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию (.env + config.toml)
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

	log.Info("Starting SMC-BookingWizard...")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector   *metrics.Metrics
		restObserver       bookingapi.CallObserver
		transitionObserver wizard.TransitionObserver
		sessionMetrics     sessionsService.Metrics
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, nil)
		restObserver = metricsCollector
		transitionObserver = metricsCollector
		sessionMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных сессий
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Redis: общий кэш сущностей бэкенда
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// REST клиент бэкенда бронирований
	var apiLimiter *rate.Limiter
	if cfg.BookingAPI.RateLimit > 0 {
		apiLimiter = rate.NewLimiter(rate.Limit(cfg.BookingAPI.RateLimit), max(cfg.BookingAPI.RateBurst, 1))
	}
	apiClient := bookingapi.NewClient(
		cfg.BookingAPI.URL,
		config.Seconds(cfg.BookingAPI.Timeout),
		apiLimiter,
		log,
		restObserver,
	)
	log.Info("Booking API client initialized (url=%s, timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)

	// Репозитории сущностей поверх REST API и Redis
	clock := &app.RealTimeProvider{}
	entities := repository.New(
		apiClient,
		cache.NewRedisCache(redisClient, cfg.Redis.KeyPrefix),
		config.Seconds(cfg.Redis.TTL),
		clock,
		log,
	)

	// Stripe подключается только при наличии ключа
	var stripeConfirmer payments.IntentConfirmer
	if cfg.Stripe.SecretKey != "" {
		stripeConfirmer = &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: cfg.Stripe.SecretKey,
		}
		log.Info("Stripe gateway enabled")
	}

	// Сервис сессий мастера
	sessionRepository := sessionRepo.NewRepository(db)
	sessionSvc := sessionsService.NewService(
		app.Deps{
			API:      apiClient,
			Entities: entities,
			Stripe:   stripeConfirmer,
			Clock:    clock,
			Logger:   log,
			Observer: transitionObserver,
		},
		sessionsService.Config{
			Form: steps.FormOptions{
				Category:     cfg.Wizard.Category,
				ServiceID:    cfg.Wizard.ServiceID,
				LocationID:   cfg.Wizard.LocationID,
				EmployeeID:   cfg.Wizard.EmployeeID,
				ShowCategory: cfg.Wizard.ShowCategory,
				ShowService:  cfg.Wizard.ShowService,
				ShowLocation: cfg.Wizard.ShowLocation,
				ShowEmployee: cfg.Wizard.ShowEmployee,
			},
			SettingsTTL: config.Seconds(cfg.Wizard.SettingsTTL),
		},
		sessionRepository,
		apiClient,
		sessionMetrics,
		clock,
		log,
	)

	// Use cases
	getFreePeriodsUseCase := getFreePeriodsUC.NewUseCase(entities, apiClient, log)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	updateStep := updateStepHandler.NewHandler(sessionSvc, log)
	submitStep := submitStepHandler.NewHandler(sessionSvc, log)
	dispatchEvent := dispatchEventHandler.NewHandler(sessionSvc, log)
	addItem := addItemHandler.NewHandler(sessionSvc, log)
	removeItem := removeItemHandler.NewHandler(sessionSvc, log)
	applyCoupon := applyCouponHandler.NewHandler(sessionSvc, log)
	removeCoupon := removeCouponHandler.NewHandler(sessionSvc, log)
	showDates := showDatesHandler.NewHandler(sessionSvc, log)
	getFreePeriods := getFreePeriodsHandler.NewHandler(getFreePeriodsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	var rateLimiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst, log)
		api.Use(rateLimiter.Middleware())
		log.Info("Rate limit enabled: %.2f req/s per client, burst %d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}

	// --- Сессии мастера ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)

	// --- Шаги ---
	api.HandleFunc("/sessions/{sessionId}/steps/{stepId}", updateStep.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/steps/{stepId}/submit", submitStep.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/events", dispatchEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/dates", showDates.Handle).Methods(http.MethodGet)

	// --- Корзина ---
	api.HandleFunc("/sessions/{sessionId}/items", addItem.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/items/{itemId}", removeItem.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/coupon", applyCoupon.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/coupon", removeCoupon.Handle).Methods(http.MethodDelete)

	// --- Свободное время сотрудников ---
	api.HandleFunc("/employees/{employeeId}/free-periods", getFreePeriods.Handle).Methods(http.MethodGet)

	// Фоновая очистка просроченных сессий
	sessionTTL := config.Seconds(cfg.Wizard.SessionTTL)
	expiryCtx, stopExpiry := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(config.Seconds(cfg.Wizard.ExpiryInterval))
		defer ticker.Stop()

		for {
			select {
			case <-expiryCtx.Done():
				return
			case <-ticker.C:
				removed, err := sessionSvc.Expire(expiryCtx, sessionTTL)
				if err != nil {
					log.Error("Session expiry failed: %v", err)
				} else if removed > 0 {
					log.Info("Expired %d sessions", removed)
				}
				if rateLimiter != nil {
					rateLimiter.Prune(time.Now().Add(-sessionTTL))
				}
			}
		}
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

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
	stopExpiry()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
