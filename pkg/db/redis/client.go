// Package redis предоставляет общую обертку над клиентом Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

const (
	logConnected = "successfully connected to Redis"
	logClosing   = "closing Redis client"

	errConnect = "failed to connect to Redis"
)

// Client обертывает клиент Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", errConnect, err)
	}

	logger.Log(ctx).Info(ctx, logConnected, zap.String("addr", cfg.Addr()), zap.Int("db", cfg.DB))
	return &Client{client: rdb}, nil
}

// Get получает значение по ключу. Для отсутствующего ключа возвращает redis.Nil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

// Set устанавливает значение с указанным TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete удаляет ключи.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Close закрывает соединение. Сигнатура совместима с хуками shutdown.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, logClosing)
	return c.client.Close()
}

// RawClient возвращает базовый клиент go-redis.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
