// Package main реализует точку входа сервиса администрирования пользователей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"useradmin/internal/useradmin/adapters/cache"
	httpadapter "useradmin/internal/useradmin/adapters/http"
	"useradmin/internal/useradmin/adapters/postgres"
	"useradmin/internal/useradmin/adapters/services"
	"useradmin/internal/useradmin/app"
	"useradmin/internal/useradmin/config"
	"useradmin/internal/useradmin/db"
	"useradmin/pkg/db/redis"
	"useradmin/pkg/logger"
	"useradmin/pkg/resilience"
	"useradmin/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "USERADMIN_LOGGER_MODE"
	EnvLoggerLevel = "USERADMIN_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to Redis, role cache disabled"
	ErrStartHTTP            = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "user admin service started"
	LogServiceShutdownDone = "user admin service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitRoleCache       = "initializing role cache"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		userRepo := repoFactory.UserRepository()
		roleRepo := repoFactory.RoleRepository()
		transactor := repoFactory.Transactor()

		hooks := []shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				return database.Close(ctx)
			},
		}

		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitRoleCache)
			redisClient, err := redis.NewClient(ctx, cfg.Redis.ToRedisConfig())
			if err != nil {
				log.Warn(ctx, ErrInitRedis, zap.Error(err))
			} else {
				breaker := resilience.NewCircuitBreaker("role-cache", cfg.Redis.GetBreakerConfig())
				roleRepo = cache.NewRoleCache(roleRepo, redisClient.RawClient(), cfg.Redis.RoleCacheTTL,
					cache.WithCircuitBreaker(breaker))
				hooks = append(hooks, func(ctx context.Context) error {
					log.Info(ctx, LogClosingRedis)
					return redisClient.Close(ctx)
				})
			}
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.Bcrypt.Cost)

		log.Info(ctx, LogInitUseCases)
		userAdminUseCase := app.NewUserAdminUseCase(userRepo, roleRepo, transactor, serviceFactory.PasswordHasher())

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpadapter.NewApp(httpadapter.AppOptions{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})
		httpadapter.SetupRouter(fiberApp, userAdminUseCase, serviceFactory.TokenVerifier())

		server := httpadapter.NewServer(fiberApp, cfg.HTTP.GetAddress())
		if err := server.Start(ctx); err != nil {
			log.Error(ctx, ErrStartHTTP, zap.Error(err))
			_ = database.Close(ctx)
			exitCode = 1
			return
		}

		// HTTP сервер останавливается до закрытия хранилищ.
		stopHTTP := func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.Stop(ctx)
		}

		if err := shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), stopHTTP); err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}
		if err := shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...); err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
