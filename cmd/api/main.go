package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/slot-booking-service/internal/api/http"
	"github.com/spec-kit/slot-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/slot-booking-service/internal/auth"
	"github.com/spec-kit/slot-booking-service/internal/config"
	"github.com/spec-kit/slot-booking-service/internal/events"
	"github.com/spec-kit/slot-booking-service/internal/observability"
	"github.com/spec-kit/slot-booking-service/internal/persistence"
	"github.com/spec-kit/slot-booking-service/internal/repository"
	"github.com/spec-kit/slot-booking-service/internal/service"
	"github.com/spec-kit/slot-booking-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	studentRepo := repository.NewStudentRepository(pool)
	deanRepo := repository.NewDeanRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	identityService := service.NewIdentityService(studentRepo, deanRepo, tokenMgr)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo: studentRepo,
		DeanRepo:    deanRepo,
		Identity:    identityService,
		TokenMgr:    tokenMgr,
		Dispatcher:  dispatcher,
	})
	catalogService := service.NewCatalogService(deanRepo, redis, cfg.Catalog.CacheTTL(), logger)
	bookingService := service.NewBookingService(service.BookingDependencies{
		DeanRepo:    deanRepo,
		BookingRepo: bookingRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
		MaxAttempts: cfg.Booking.MaxAttempts,
	})

	worker.StartCacheWorker(catalogService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(identityService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	slotsHandler := handlers.NewSlotsHandler(catalogService, bookingService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Slots:          slotsHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
