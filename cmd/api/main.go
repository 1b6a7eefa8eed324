package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/tutor-marketplace/internal/api/http"
	"github.com/spec-kit/tutor-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/config"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/observability"
	"github.com/spec-kit/tutor-marketplace/internal/persistence"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	"github.com/spec-kit/tutor-marketplace/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret && !cfg.App.IsDevelopment() {
		logger.Warn("JWT_SECRET is using the development default outside development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.Pool, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	userRepo := repository.NewUserRepository(postgres.Pool)
	tutorRepo := repository.NewTutorRepository(postgres.Pool)
	reviewRepo := repository.NewReviewRepository(postgres.Pool)
	courseRepo := repository.NewCourseRepository(postgres.Pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	tutorService := service.NewTutorService(service.TutorDependencies{
		UserRepo:   userRepo,
		TutorRepo:  tutorRepo,
		ReviewRepo: reviewRepo,
		Cache:      redisStore,
		CacheTTL:   cfg.Cache.TutorTTL(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	courseService := service.NewCourseService(tutorRepo, courseRepo, dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})

	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postgres, redisStore),
		Auth:           handlers.NewAuthHandler(authService),
		Tutors:         handlers.NewTutorsHandler(tutorService),
		Courses:        handlers.NewCoursesHandler(courseService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
