package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file:// для migrate
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadMigrationVersion    = "failed to read migration version"
)

// MigrateDSN применяет миграции из migrationsPath (URL вида file://...).
// Отсутствие новых миграций ошибкой не считается.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx).With(zap.String("component", "migrate"))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr), zap.NamedError("database_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Error(ctx, ErrReadMigrationVersion, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrReadMigrationVersion, err)
	}

	log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
