// Package db инициализирует базу данных сервиса администрирования пользователей.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/config"
	"useradmin/pkg/db/postgres"
	"useradmin/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing user admin database"
	LogDBInitialized     = "user admin database initialized successfully"
	LogMigrationStarting = "starting database migrations for user admin service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply user admin database migrations"
	ErrDBConnection = "failed to connect to user admin database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// MigrationsURL возвращает URL источника миграций file:// для каталога.
func MigrationsURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return "file://" + migrationsDir, nil
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.GetPoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) error {
	return db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
