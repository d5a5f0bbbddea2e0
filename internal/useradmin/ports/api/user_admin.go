// Package api определяет порт сценариев администрирования пользователей.
package api

import (
	"context"

	"useradmin/internal/useradmin/domain/entities"
)

// UserAdminUseCase - операции администратора над пользователями.
// Авторизация выполняется транспортным слоем до вызова.
type UserAdminUseCase interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)

	// GetUser возвращает found == false без ошибки, если пользователя нет.
	GetUser(ctx context.Context, id int64) (user *entities.User, found bool, err error)

	CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error)

	UpdateUser(ctx context.Context, id int64, in entities.UserInput) (*entities.User, error)

	DeleteUser(ctx context.Context, id int64) error

	MapRoleNames(ctx context.Context, names []string) ([]entities.Role, error)

	ListRoles(ctx context.Context) ([]entities.Role, error)
}
