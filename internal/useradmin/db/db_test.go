package db_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/useradmin/config"
	"useradmin/internal/useradmin/db"
	"useradmin/pkg/logger"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path kept", func(t *testing.T) {
		dir := t.TempDir()
		url, err := db.MigrationsURL(dir)
		require.NoError(t, err)
		assert.Equal(t, "file://"+dir, url)
	})

	t.Run("relative path resolved", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/useradmin")
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.Join(wd, "migrations", "useradmin"), url)
	})
}

func TestNew(t *testing.T) {
	require.NoError(t, logger.InitGlobalLogger(logger.Development, "info"))
	ctx := context.Background()

	t.Run("missing migrations directory", func(t *testing.T) {
		cfg := &config.PostgresConfig{
			Host:          "127.0.0.1",
			Port:          1,
			User:          "u",
			Password:      "p",
			Database:      "d",
			MinConn:       1,
			MaxConn:       2,
			MigrationsDir: filepath.Join(t.TempDir(), "absent"),
		}

		database, err := db.New(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, database)
		assert.True(t, strings.HasPrefix(err.Error(), db.ErrDBMigrations))
	})

	t.Run("real database", func(t *testing.T) {
		dsnHost := os.Getenv("USERADMIN_TEST_POSTGRES_HOST")
		if dsnHost == "" {
			t.Skip("USERADMIN_TEST_POSTGRES_HOST is not set")
		}

		cfg, err := config.Load(ctx)
		require.NoError(t, err)
		cfg.Postgres.Host = dsnHost
		cfg.Postgres.MigrationsDir = filepath.Join("..", "..", "..", "migrations", "useradmin")

		database, err := db.New(ctx, &cfg.Postgres)
		require.NoError(t, err)
		defer func() { _ = database.Close(ctx) }()

		require.NoError(t, database.Ping(ctx))

		var roles int
		require.NoError(t, database.Pool().QueryRow(ctx,
			"SELECT count(*) FROM roles WHERE name IN ('ROLE_ADMIN', 'ROLE_USER')").Scan(&roles))
		assert.Equal(t, 2, roles)

		tx, err := database.Pool().Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		_, err = tx.Exec(ctx,
			"INSERT INTO users (username, age, password_hash) VALUES ('negative-age', -1, 'hash')")
		assert.NoError(t, err, "schema accepts any age the service accepts")
	})
}
