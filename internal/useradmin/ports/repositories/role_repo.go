package repositories

import (
	"context"

	"useradmin/internal/useradmin/domain/entities"
)

// RoleRepository - каталог ролей только для чтения.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entities.Role, error)

	FindAll(ctx context.Context) ([]entities.Role, error)
}
