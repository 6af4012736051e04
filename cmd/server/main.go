package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskmind/backend/api/handler"
	"github.com/taskmind/backend/internal/config"
	"github.com/taskmind/backend/internal/infrastructure/buffer"
	"github.com/taskmind/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskmind/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskmind/backend/internal/infrastructure/redis"
	"github.com/taskmind/backend/internal/middleware"
	"github.com/taskmind/backend/internal/router"
	"github.com/taskmind/backend/internal/services"
	"github.com/taskmind/backend/internal/services/lifecycle"
	"github.com/taskmind/backend/pkg/httpcontext"
	"github.com/taskmind/backend/pkg/logger"
	"github.com/taskmind/backend/repository/postgres"
	redisRepo "github.com/taskmind/backend/repository/redis"
	accountUC "github.com/taskmind/backend/usecase/account"
	categoryUC "github.com/taskmind/backend/usecase/category"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		AppName:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		taskRepo,
		reminderRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)
	factory := services.NewFactory(taskRepo, reminderRepo, bufferBridge, zapLogger)

	accountService := accountUC.New(accountRepo, settingsRepo, zapLogger)
	categoryService := categoryUC.New(categoryRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(accountService, sessionRepo, ctxAdapter, zapLogger, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL),
		Task:     apiHandler.NewTaskHandler(factory, categoryService, ctxAdapter, zapLogger),
		Deadline: apiHandler.NewDeadlineHandler(factory, ctxAdapter, zapLogger),
		Reminder: apiHandler.NewReminderHandler(factory, accountService, ctxAdapter, zapLogger),
		Category: apiHandler.NewCategoryHandler(categoryService, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.Auth.JWTSecret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
