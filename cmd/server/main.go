package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskflow/backend/api/handler"
	"github.com/taskflow/backend/internal/config"
	"github.com/taskflow/backend/internal/infrastructure/buffer"
	"github.com/taskflow/backend/internal/infrastructure/imagehost"
	"github.com/taskflow/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskflow/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskflow/backend/internal/infrastructure/redis"
	"github.com/taskflow/backend/internal/middleware"
	"github.com/taskflow/backend/internal/router"
	"github.com/taskflow/backend/internal/services"
	"github.com/taskflow/backend/internal/services/lifecycle"
	"github.com/taskflow/backend/pkg/httpcontext"
	"github.com/taskflow/backend/pkg/logger"
	"github.com/taskflow/backend/repository/postgres"
	redisRepo "github.com/taskflow/backend/repository/redis"
	authUC "github.com/taskflow/backend/usecase/auth"
	profileUC "github.com/taskflow/backend/usecase/profile"
	taskUC "github.com/taskflow/backend/usecase/task"
	uploadUC "github.com/taskflow/backend/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
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

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "pending_writes")
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

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Auth.SessionTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  cfg.Buffer.Retention,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	imageHost := imagehost.NewClient(cfg.ImageHost.URL, cfg.ImageHost.APIKey, cfg.ImageHost.Timeout, zapLogger)

	authUseCase := authUC.New(userRepo, sessionRepo, bufferBridge, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, bufferBridge, zapLogger)
	uploadUseCase := uploadUC.New(imageHost, cfg.ImageHost.MaxUploadBytes, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.Auth.SessionTTL),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Upload:  apiHandler.NewUploadHandler(uploadUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
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
