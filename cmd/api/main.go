package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jakesworld/tracking-api/internal/config"
	"github.com/jakesworld/tracking-api/internal/database"
	"github.com/jakesworld/tracking-api/internal/handler"
	"github.com/jakesworld/tracking-api/internal/middleware"
	"github.com/jakesworld/tracking-api/internal/models"
	"github.com/jakesworld/tracking-api/internal/repository"
	"github.com/jakesworld/tracking-api/internal/router"
	"github.com/jakesworld/tracking-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Visit{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis only backs the rate limiter; the tracking pipeline runs without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	trackingService := service.NewTrackingService(studentRepo, visitRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(studentRepo, visitRepo, logger)

	trackHandler := handler.NewTrackHandler(trackingService, logger)
	activityHandler := handler.NewActivityHandler(analyticsService, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, logger)
	statsHandler := handler.NewStatsHandler(analyticsService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		TrackHandler:    trackHandler,
		ActivityHandler: activityHandler,
		StatsHandler:    statsHandler,
		RateLimiter:     middleware.RateLimit(redisClient, "track", cfg.TrackRateMax, cfg.TrackRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
