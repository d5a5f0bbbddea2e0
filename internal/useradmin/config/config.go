// Package config содержит конфигурацию сервиса администрирования пользователей.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "useradmin/pkg/config"
	"useradmin/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading user admin service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
	ErrInvalidConfig    = "Invalid configuration"

	// ServiceName - имя сервиса в логах.
	ServiceName = "useradmin"
	// EnvConfigFile - необязательный путь к файлу конфигурации (.env, .yaml).
	EnvConfigFile = "USERADMIN_CONFIG_FILE"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Bcrypt   BcryptConfig   `yaml:"bcrypt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения и, если задан
// USERADMIN_CONFIG_FILE, из файла.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigFile))
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("role_cache_ttl", cfg.Redis.RoleCacheTTL),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Int("bcrypt_cost", cfg.Bcrypt.Cost),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не проверяет сам.
func (c *Config) Validate() error {
	if c.Postgres.MinConn < 0 || c.Postgres.MaxConn < 1 || c.Postgres.MinConn > c.Postgres.MaxConn {
		return fmt.Errorf("postgres pool: min_conn=%d max_conn=%d", c.Postgres.MinConn, c.Postgres.MaxConn)
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt secret key is empty")
	}
	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %d", c.Shutdown.Timeout)
	}
	return nil
}
