// Package repositories определяет порты хранилищ пользователей и ролей.
package repositories

import (
	"context"
	"errors"

	"useradmin/internal/useradmin/domain/entities"
)

// Ошибки, возвращаемые реализациями репозиториев.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository определяет операции хранения пользователей.
// Уникальность username обеспечивается хранилищем атомарно.
type UserRepository interface {
	// Create сохраняет нового пользователя. ID генерирует хранилище.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// FindAll возвращает всех пользователей, упорядоченных по ID.
	FindAll(ctx context.Context) ([]*entities.User, error)

	// Save сохраняет пользователя по ID, включая набор ролей.
	Save(ctx context.Context, user *entities.User) (*entities.User, error)

	// DeleteByID удаляет пользователя. Отсутствие записи ошибкой не считается.
	DeleteByID(ctx context.Context, id int64) error
}
