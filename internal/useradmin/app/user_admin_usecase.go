// Package app содержит сценарии администрирования пользователей.
package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/api"
	"useradmin/internal/useradmin/ports/repositories"
	"useradmin/internal/useradmin/ports/services"
	"useradmin/pkg/logger"
)

const (
	methodListUsers    = "ListUsers"
	methodGetUser      = "GetUser"
	methodCreateUser   = "CreateUser"
	methodUpdateUser   = "UpdateUser"
	methodDeleteUser   = "DeleteUser"
	methodMapRoleNames = "MapRoleNames"
	methodListRoles    = "ListRoles"

	msgListingUsers     = "listing users"
	msgUsersListed      = "users listed"
	msgGettingUser      = "getting user"
	msgUserNotFound     = "user not found"
	msgCreatingUser     = "creating user"
	msgUserCreated      = "user created"
	msgUpdatingUser     = "updating user"
	msgUserUpdated      = "user updated"
	msgPasswordKept     = "password not supplied, keeping existing hash"
	msgRolesKept        = "no known roles supplied, keeping existing roles"
	msgDeletingUser     = "deleting user"
	msgUserDeleted      = "user deleted"
	msgRolesRequired    = "no known roles supplied"
	msgPasswordRequired = "password not supplied"
	msgPasswordTooLong  = "password rejected by hasher as too long"
	msgDuplicateName    = "username already taken"
	msgStoreFailure     = "store or hasher failure"

	opListUsers    = "list users"
	opGetUser      = "get user"
	opCreateUser   = "create user"
	opUpdateUser   = "update user"
	opDeleteUser   = "delete user"
	opMapRoleNames = "map role names"
	opListRoles    = "list roles"
	opHashPassword = "hash password"
)

// ErrInvalidHash возвращается, если хешер вернул пустое значение или исходный пароль.
var ErrInvalidHash = errors.New("hasher returned unusable hash")

// UserAdminUseCase реализует api.UserAdminUseCase. Состояния между вызовами не хранит.
type UserAdminUseCase struct {
	users  repositories.UserRepository
	roles  repositories.RoleRepository
	tx     repositories.Transactor
	hasher services.PasswordHasher
	mapper *RoleMapper
}

// NewUserAdminUseCase создает сервис администрирования пользователей.
func NewUserAdminUseCase(
	users repositories.UserRepository,
	roles repositories.RoleRepository,
	tx repositories.Transactor,
	hasher services.PasswordHasher,
) api.UserAdminUseCase {
	return &UserAdminUseCase{
		users:  users,
		roles:  roles,
		tx:     tx,
		hasher: hasher,
		mapper: NewRoleMapper(roles),
	}
}

// ListUsers возвращает всех пользователей по возрастанию ID.
func (u *UserAdminUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers))
	log.Debug(ctx, msgListingUsers)

	users, err := u.users.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, storeUnavailable(opListUsers, err)
	}

	log.Debug(ctx, msgUsersListed, zap.Int("count", len(users)))
	return users, nil
}

// GetUser возвращает пользователя по ID. Промах не является ошибкой.
func (u *UserAdminUseCase) GetUser(ctx context.Context, id int64) (*entities.User, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUser), zap.Int64("userID", id))
	log.Debug(ctx, msgGettingUser)

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Debug(ctx, msgUserNotFound)
			return nil, false, nil
		}
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, false, storeUnavailable(opGetUser, err)
	}

	return user, true, nil
}

// CreateUser создает пользователя: роли обязательны, пароль обязателен и хешируется.
func (u *UserAdminUseCase) CreateUser(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("username", in.Username))
	log.Debug(ctx, msgCreatingUser)

	roles, err := u.mapper.Map(ctx, in.RoleNames)
	if err != nil {
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, storeUnavailable(opMapRoleNames, err)
	}
	if len(roles) == 0 {
		log.Debug(ctx, msgRolesRequired, zap.Strings("roleNames", in.RoleNames))
		return nil, &entities.ValidationError{Field: entities.FieldRoles, Reason: entities.ReasonRolesRequired}
	}

	if !in.HasPassword() {
		log.Debug(ctx, msgPasswordRequired)
		return nil, &entities.ValidationError{Field: entities.FieldPassword, Reason: entities.ReasonPasswordRequired}
	}

	hash, err := u.hashPassword(ctx, *in.Password)
	if err != nil {
		if errors.Is(err, entities.ErrStoreUnavailable) {
			log.Error(ctx, msgStoreFailure, zap.Error(err))
		}
		return nil, err
	}

	created, err := u.users.Create(ctx, &entities.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		Roles:        roles,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			log.Debug(ctx, msgDuplicateName)
			return nil, duplicateUsername()
		}
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, storeUnavailable(opCreateUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userID", created.ID))
	return created, nil
}

// UpdateUser обновляет пользователя в одной транзакции.
// Пароль и роли заменяются только если переданы; остальные поля перезаписываются всегда.
func (u *UserAdminUseCase) UpdateUser(ctx context.Context, id int64, in entities.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int64("userID", id))
	log.Debug(ctx, msgUpdatingUser)

	var updated *entities.User
	err := u.tx.WithinTx(ctx, func(ctx context.Context, users repositories.UserRepository) error {
		existing, err := users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				log.Debug(ctx, msgUserNotFound)
				return &entities.NotFoundError{ID: id}
			}
			return storeUnavailable(opGetUser, err)
		}

		existing.Username = in.Username
		existing.Name = in.Name
		existing.Email = in.Email
		existing.Age = in.Age

		if in.HasPassword() {
			hash, err := u.hashPassword(ctx, *in.Password)
			if err != nil {
				return err
			}
			existing.PasswordHash = hash
		} else {
			log.Debug(ctx, msgPasswordKept)
		}

		roles, err := u.mapper.Map(ctx, in.RoleNames)
		if err != nil {
			return storeUnavailable(opMapRoleNames, err)
		}
		if len(roles) > 0 {
			existing.Roles = roles
		} else {
			log.Debug(ctx, msgRolesKept)
		}

		saved, err := users.Save(ctx, existing)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrDuplicateUsername):
				log.Debug(ctx, msgDuplicateName)
				return duplicateUsername()
			case errors.Is(err, repositories.ErrUserNotFound):
				return &entities.NotFoundError{ID: id}
			}
			return storeUnavailable(opUpdateUser, err)
		}

		updated = saved
		return nil
	})
	if err != nil {
		if !entities.IsDomainError(err) {
			err = storeUnavailable(opUpdateUser, err)
		}
		if errors.Is(err, entities.ErrStoreUnavailable) {
			log.Error(ctx, msgStoreFailure, zap.Error(err))
		}
		return nil, err
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// DeleteUser удаляет пользователя. Удаление отсутствующего ID не является ошибкой.
func (u *UserAdminUseCase) DeleteUser(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int64("userID", id))
	log.Debug(ctx, msgDeletingUser)

	if err := u.users.DeleteByID(ctx, id); err != nil {
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return storeUnavailable(opDeleteUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// MapRoleNames сопоставляет короткие имена ролей с каталогом.
func (u *UserAdminUseCase) MapRoleNames(ctx context.Context, names []string) ([]entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("method", methodMapRoleNames))

	roles, err := u.mapper.Map(ctx, names)
	if err != nil {
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, storeUnavailable(opMapRoleNames, err)
	}
	return roles, nil
}

// ListRoles возвращает каталог ролей.
func (u *UserAdminUseCase) ListRoles(ctx context.Context) ([]entities.Role, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListRoles))

	roles, err := u.roles.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgStoreFailure, zap.Error(err))
		return nil, storeUnavailable(opListRoles, err)
	}
	return roles, nil
}

func (u *UserAdminUseCase) hashPassword(ctx context.Context, plaintext string) (string, error) {
	hash, err := u.hasher.Hash(ctx, plaintext)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			logger.Log(ctx).Debug(ctx, msgPasswordTooLong, zap.Error(err))
			return "", &entities.ValidationError{Field: entities.FieldPassword, Reason: entities.ReasonPasswordTooLong}
		}
		return "", storeUnavailable(opHashPassword, err)
	}
	if strings.TrimSpace(hash) == "" || hash == plaintext {
		return "", storeUnavailable(opHashPassword, ErrInvalidHash)
	}
	return hash, nil
}

func storeUnavailable(op string, err error) error {
	var sErr *entities.StoreUnavailableError
	if errors.As(err, &sErr) {
		return err
	}
	return &entities.StoreUnavailableError{Op: op, Err: err}
}

func duplicateUsername() error {
	return &entities.ConflictError{Field: entities.FieldUsername, Reason: entities.ReasonDuplicateUsername}
}
