// Package postgres содержит подключение к Postgres и применение миграций.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
	ErrPoolLimits   = "invalid pool limits"
)

// PoolOptions задает размеры пула и время жизни соединений.
type PoolOptions struct {
	MinConns        int
	MaxConns        int
	MaxConnLifetime time.Duration
}

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает пул соединений и проверяет доступность базы.
func New(ctx context.Context, dsn string, opts PoolOptions) (*Database, error) {
	log := logger.Log(ctx).With(zap.String("component", "postgres"))

	log.Info(ctx, LogConnecting)

	if opts.MinConns < 0 || opts.MaxConns < 0 || (opts.MaxConns > 0 && opts.MinConns > opts.MaxConns) {
		log.Error(ctx, ErrPoolLimits, zap.Int("min", opts.MinConns), zap.Int("max", opts.MaxConns))
		return nil, fmt.Errorf("%s: min=%d max=%d", ErrPoolLimits, opts.MinConns, opts.MaxConns)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	if opts.MaxConns > 0 {
		poolCfg.MaxConns = int32(opts.MaxConns) // #nosec G115
	}
	poolCfg.MinConns = int32(opts.MinConns) // #nosec G115
	if opts.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected,
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул. Сигнатура совместима с хуками shutdown.
func (db *Database) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
	return nil
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
