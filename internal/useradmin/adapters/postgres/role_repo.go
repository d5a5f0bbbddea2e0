package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/repositories"
	"useradmin/pkg/logger"
)

const (
	queryFindRoleByName = `SELECT id, name FROM roles WHERE name = $1`
	queryFindAllRoles   = `SELECT id, name FROM roles ORDER BY id`

	errQueryRoleByName = "error querying role by name"
	errQueryRoles      = "error querying roles"
)

// RoleRepository реализует repositories.RoleRepository для Postgres.
type RoleRepository struct {
	db Querier
}

// NewRoleRepository создает репозиторий ролей.
func NewRoleRepository(db Querier) repositories.RoleRepository {
	return &RoleRepository{db: db}
}

// FindByName находит роль по полному имени, например ROLE_ADMIN.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("repository", "role"), zap.String("method", "FindByName"))

	var role entities.Role
	err := r.db.QueryRow(ctx, queryFindRoleByName, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "role not found", zap.String("name", name))
			return nil, repositories.ErrRoleNotFound
		}
		log.Error(ctx, errQueryRoleByName, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryRoleByName, err)
	}

	return &role, nil
}

// FindAll возвращает весь каталог ролей.
func (r *RoleRepository) FindAll(ctx context.Context) ([]entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("repository", "role"), zap.String("method", "FindAll"))

	rows, err := r.db.Query(ctx, queryFindAllRoles)
	if err != nil {
		log.Error(ctx, errQueryRoles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryRoles, err)
	}

	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Role, error) {
		var role entities.Role
		err := row.Scan(&role.ID, &role.Name)
		return role, err
	})
	if err != nil {
		log.Error(ctx, errQueryRoles, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryRoles, err)
	}

	return roles, nil
}
