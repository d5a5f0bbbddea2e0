package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию. Должны совпадать с env-default в конфигурации сервиса.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultDB       = 0
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		DB:       DefaultDB,
		PoolSize: DefaultPoolSize,
		Timeout:  DefaultTimeout,
	}
}

// Addr возвращает адрес в формате host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
