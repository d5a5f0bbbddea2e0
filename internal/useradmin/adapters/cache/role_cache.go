// Package cache содержит кэширующий декоратор каталога ролей на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/repositories"
	"useradmin/pkg/logger"
	"useradmin/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodFindByName = "FindByName"
	LogMethodFindAll    = "FindAll"

	ErrorFailedToGet    = "failed to get value from redis"
	ErrorFailedToSet    = "failed to set value in redis"
	ErrorFailedToDecode = "failed to decode cached value"

	DefaultKeyPrefix = "useradmin:roles:"
	DefaultTTL       = 15 * time.Minute

	allRolesKey = "_all"
)

// RoleCache кэширует каталог ролей. Ошибки Redis не прерывают запрос:
// значение читается из базового репозитория. Промахи каталога не кэшируются.
type RoleCache struct {
	next    repositories.RoleRepository
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

// Option настраивает RoleCache.
type Option func(*RoleCache)

// WithCircuitBreaker пропускает обращения к Redis через cb: пока он открыт,
// кэш не используется и запросы идут напрямую в базовый репозиторий.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *RoleCache) {
		c.breaker = cb
	}
}

// NewRoleCache оборачивает next кэшем. ttl <= 0 заменяется на DefaultTTL.
func NewRoleCache(
	next repositories.RoleRepository,
	client redis.Cmdable,
	ttl time.Duration,
	opts ...Option,
) repositories.RoleRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &RoleCache{
		next:   next,
		client: client,
		prefix: DefaultKeyPrefix,
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByName возвращает роль из кэша или базового репозитория.
func (c *RoleCache) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodFindByName), zap.String("role", name))
	key := c.prefix + name

	var role entities.Role
	if c.load(ctx, log, key, &role) {
		return &role, nil
	}

	found, err := c.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	c.store(ctx, log, key, found)
	return found, nil
}

// FindAll возвращает каталог ролей из кэша или базового репозитория.
func (c *RoleCache) FindAll(ctx context.Context) ([]entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodFindAll))
	key := c.prefix + allRolesKey

	var roles []entities.Role
	if c.load(ctx, log, key, &roles) {
		return roles, nil
	}

	roles, err := c.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, log, key, roles)
	return roles, nil
}

// call выполняет обращение к Redis через circuit breaker, если он задан.
// redis.Nil отказом не считается.
func (c *RoleCache) call(ctx context.Context, fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	return c.breaker.Execute(ctx, fn, func(err error) bool {
		return !errors.Is(err, redis.Nil)
	})
}

func (c *RoleCache) load(ctx context.Context, log *logger.Logger, key string, dst any) bool {
	var raw []byte
	err := c.call(ctx, func() error {
		var getErr error
		raw, getErr = c.client.Get(ctx, key).Bytes()
		return getErr
	})
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, resilience.ErrCircuitOpen) {
			log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return false
	}
	return true
}

func (c *RoleCache) store(ctx context.Context, log *logger.Logger, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
		return
	}
	err = c.call(ctx, func() error {
		return c.client.Set(ctx, key, raw, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
	}
}
