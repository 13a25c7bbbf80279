package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/cache"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/database"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/events"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/storage"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/handlers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/middleware"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/routes"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/jobs"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/auth"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/notifications"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

const cacheWarmInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; without it there is no response cache and no event bus
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)
	var roomRepo repositories.RoomRepository = database.NewRoomAdapter(pgClient)
	if cacheProvider != nil {
		roomRepo = database.NewCachedRoomAdapter(roomRepo, cacheProvider)
		logger.Info().Msg("Room adapter wrapped with caching layer")
	}

	mailer, err := notifications.NewMailer(cfg.SMTP)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize mailer")
	}
	photoStore, err := storage.NewPhotoStore(cfg.Cloudinary)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize photo store")
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	notificationService := services.NewNotificationService(mailer)
	authService := services.NewAuthService(userRepo, hasher, tokens)
	userService := services.NewUserService(userRepo, bookingRepo, hasher)
	roomService := services.NewRoomService(roomRepo, bookingRepo, photoStore, eventBus)
	bookingService := services.NewBookingService(bookingRepo, roomRepo, userRepo, notificationService, eventBus, metrics)
	reviewService := services.NewReviewService(reviewRepo, roomRepo, bookingRepo, eventBus)
	feedbackService := services.NewFeedbackService(bookingRepo, notificationService, metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	var invalidation *services.CacheInvalidationService
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)

		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			logger.Warn().Err(err).Msg("Failed to start cache invalidation service")
		}

		warming := services.NewRoomCacheWarmingService(roomRepo)
		go warming.StartPeriodicWarming(ctx, cacheWarmInterval)
	}

	var scheduler *jobs.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler, err = jobs.NewScheduler(cfg.Scheduler, feedbackService)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create scheduler")
		}
		scheduler.Start()
	}

	router := routes.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewRoomHandler(roomService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewHealthHandler(pgClient),
		middleware.NewAuthenticator(tokens, userRepo),
		cacheMiddleware,
		middleware.ParseOrigins(cfg.App.AllowedOrigins),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("Error stopping scheduler")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if invalidation != nil {
		invalidation.Stop()
	}

	logger.Info().Msg("Server stopped")
}
