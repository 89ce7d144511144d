package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	executorclient "gitlab.com/codequest-2025.net/internal/adapter/executor"
	"gitlab.com/codequest-2025.net/internal/adapter/postgres/challengerepository"
	"gitlab.com/codequest-2025.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codequest-2025.net/internal/adapter/redis/locker"
	"gitlab.com/codequest-2025.net/internal/adapter/redis/progress"
	"gitlab.com/codequest-2025.net/internal/adapter/redis/resultcache"
	"gitlab.com/codequest-2025.net/internal/config"
	"gitlab.com/codequest-2025.net/internal/core/services/execution"
	logger2 "gitlab.com/codequest-2025.net/internal/global/logger"
	"gitlab.com/codequest-2025.net/internal/handlers"
	http2 "gitlab.com/codequest-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting execution orchestration service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})

	// SECONDARY PORTS
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger)
	challengeRepo := challengerepository.NewChallengeRepository(db, logger)
	lockManager := locker.NewExecutionLocker(redisClient, logger)
	progressPublisher := progress.NewRedisProgressPublisher(redisClient, logger)
	resultCache := resultcache.NewSubmissionResultCache(redisClient, logger, sysCfg.ExecutionConfig.ResultCacheTTL)
	sandboxClient := executorclient.NewClient(sysCfg.ExecutorConfig.BaseURL, sysCfg.ExecutorConfig.RequestTimeout, logger)

	// services
	dispatcher := execution.NewDispatcher(sandboxClient, progressPublisher, logger, sysCfg.ExecutionConfig)
	executionSvc := execution.NewExecutionService(
		submissionRepo,
		challengeRepo,
		lockManager,
		progressPublisher,
		resultCache,
		dispatcher,
		logger,
		sysCfg.ExecutionConfig,
	)
	serviceProvider := http2.NewServiceProvider(executionSvc)

	//server
	middleware := handlers.NewMiddlewareProvider(sysCfg.JwtConfig)
	httpServer := http2.NewServer(8082, "executionEngine", *serviceProvider, middleware, logger)
	err = httpServer.Init()
	if err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	if err := db.Close(); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("Failed to close redis client", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
