package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/config"
	"assessment-service/internal/database/minio"
	"assessment-service/internal/database/postgres"
	redisdb "assessment-service/internal/database/redis"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/logging"
	"assessment-service/internal/mlclient"
	"assessment-service/internal/repository"
	"assessment-service/internal/services"
	"assessment-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.New()
	logging.Setup(cfg.LogLevel)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("Failed to connect to database, retrying in background", "error", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	// Redis is optional: without it the in-memory cache keeps the pipeline
	// fast for repeated requests within one process.
	var resultCache cache.Cache
	redisClient, err := redisdb.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, falling back to in-memory assessment cache", "error", err)
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		resultCache = memCache
	} else {
		defer redisClient.Close()
		resultCache = cache.NewRedisCache(redisClient.GetClient())
	}

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		slog.Warn("MinIO unavailable, roof image uploads disabled", "error", err)
		minioClient = nil
	}

	var notifier services.CompletionNotifier
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, assessment events disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		notifier = event.NewAssessmentPublisher(rabbitConn)
	}

	poolCtx, poolCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer poolCancel()

	pool := worker.NewWorkingPool(4, 64)
	var poolWg sync.WaitGroup
	poolWg.Add(1)
	go pool.Start(poolCtx, &poolWg)

	ml := mlclient.NewHTTPClient(cfg.MLServiceCfg)
	assessmentRepo := repository.NewAssessmentRepository(db)
	assessmentService := services.NewAssessmentService(
		assessmentRepo, resultCache, ml, notifier, pool, cfg.CacheTTL)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Assessment service is healthy")
	})

	assessmentHandler := handlers.NewAssessmentHandler(assessmentService, minioClient)
	assessmentHandler.RegisterRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("HTTP server stopped", "error", err)
			poolCancel()
		}
	}()
	slog.Info("Assessment service started", "port", cfg.Port)

	<-poolCtx.Done()
	slog.Info("Shutdown signaled")

	if err := app.Shutdown(); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	poolWg.Wait()

	if db != nil {
		db.Close()
	}
	slog.Info("Assessment service stopped")
	os.Exit(0)
}
