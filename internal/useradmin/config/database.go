package config

import (
	"fmt"
	"time"

	"useradmin/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"USERADMIN_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"USERADMIN_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"USERADMIN_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"USERADMIN_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"USERADMIN_POSTGRES_DB" env-default:"useradmin"`
	MinConn         int           `yaml:"min_conn" env:"USERADMIN_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"USERADMIN_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"USERADMIN_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MigrationsDir   string        `yaml:"migrations_dir" env:"USERADMIN_POSTGRES_MIGRATIONS_DIR" env-default:"./migrations/useradmin"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// GetPoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) GetPoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
	}
}
