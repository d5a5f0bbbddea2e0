package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"useradmin/internal/useradmin/ports/repositories"
)

// Коды SQLSTATE, которые обрабатываются отдельно.
const (
	sqlStateUniqueViolation = "23505"
)

// mapDBError переводит нарушение уникальности в ErrDuplicateUsername.
// Остальные ошибки возвращаются без изменений.
func mapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation {
		return repositories.ErrDuplicateUsername
	}
	return err
}
