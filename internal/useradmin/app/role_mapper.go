package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/repositories"
	"useradmin/pkg/logger"
)

const (
	msgUnknownRoleSkipped = "unknown role name skipped"

	errCtxLookupRole = "looking up role"
)

// RoleName возвращает имя роли в каталоге для короткого имени: ADMIN -> ROLE_ADMIN.
// Имя не нормализуется: ROLE_ADMIN превращается в ROLE_ROLE_ADMIN.
func RoleName(name string) string {
	return entities.RolePrefix + name
}

// RoleMapper сопоставляет короткие имена ролей с записями каталога.
type RoleMapper struct {
	roles repositories.RoleRepository
}

// NewRoleMapper создает новый RoleMapper.
func NewRoleMapper(roles repositories.RoleRepository) *RoleMapper {
	return &RoleMapper{roles: roles}
}

// Map возвращает роли каталога для names в порядке первого появления без повторов.
// Неизвестные и пустые имена пропускаются.
func (m *RoleMapper) Map(ctx context.Context, names []string) ([]entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("component", "RoleMapper"))

	resolved := make([]entities.Role, 0, len(names))
	seen := make(map[int64]struct{}, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}

		role, err := m.roles.FindByName(ctx, RoleName(name))
		if err != nil {
			if errors.Is(err, repositories.ErrRoleNotFound) {
				log.Debug(ctx, msgUnknownRoleSkipped, zap.String("role", name))
				continue
			}
			return nil, fmt.Errorf("%s %q: %w", errCtxLookupRole, name, err)
		}

		if _, dup := seen[role.ID]; dup {
			continue
		}
		seen[role.ID] = struct{}{}
		resolved = append(resolved, *role)
	}

	return resolved, nil
}
