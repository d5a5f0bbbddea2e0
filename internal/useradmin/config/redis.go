package config

import (
	"fmt"
	"time"

	"useradmin/pkg/db/redis"
	"useradmin/pkg/resilience"
)

// RedisConfig представляет конфигурацию кэша справочника ролей.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"USERADMIN_REDIS_ENABLED" env-default:"true"`
	Host         string        `yaml:"host" env:"USERADMIN_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"USERADMIN_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"USERADMIN_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"USERADMIN_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"USERADMIN_REDIS_POOL_SIZE" env-default:"10"`
	Timeout      time.Duration `yaml:"timeout" env:"USERADMIN_REDIS_TIMEOUT" env-default:"5s"`
	RoleCacheTTL time.Duration `yaml:"role_cache_ttl" env:"USERADMIN_REDIS_ROLE_CACHE_TTL" env-default:"15m"`

	BreakerErrorThreshold int           `yaml:"breaker_error_threshold" env:"USERADMIN_REDIS_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	BreakerTimeout        time.Duration `yaml:"breaker_timeout" env:"USERADMIN_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ToRedisConfig преобразует настройки в конфигурацию клиента Redis.
func (c *RedisConfig) ToRedisConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

// GetBreakerConfig возвращает настройки circuit breaker для обращений к кэшу.
func (c *RedisConfig) GetBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.BreakerErrorThreshold,
		Timeout:          c.BreakerTimeout,
		SuccessThreshold: resilience.DefaultCircuitBreakerConfig().SuccessThreshold,
	}
}
