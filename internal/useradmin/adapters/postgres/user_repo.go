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
	userColumns = `id, username, name, email, age, password_hash, created_at, updated_at`

	queryFindUserByID       = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	queryFindUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	queryFindAllUsers       = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	lockSuffix              = ` FOR UPDATE`

	queryInsertUser = `
        INSERT INTO users (username, name, email, age, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	queryUpdateUser = `
        UPDATE users
        SET username = $2, name = $3, email = $4, age = $5, password_hash = $6, updated_at = now()
        WHERE id = $1
        RETURNING ` + userColumns

	queryDeleteUser = `DELETE FROM users WHERE id = $1`

	queryUserRoles = `
        SELECT ur.user_id, r.id, r.name
        FROM users_roles ur
        JOIN roles r ON r.id = ur.role_id
        WHERE ur.user_id = ANY($1)
        ORDER BY ur.user_id, r.id`

	queryClearUserRoles  = `DELETE FROM users_roles WHERE user_id = $1`
	queryInsertUserRoles = `INSERT INTO users_roles (user_id, role_id) SELECT $1, unnest($2::bigint[])`
)

const (
	errQueryUserByID       = "error querying user by id"
	errQueryUserByUsername = "error querying user by username"
	errQueryUsers          = "error querying users"
	errQueryUserRoles      = "error querying user roles"
	errCreateUser          = "error creating user"
	errUpdateUser          = "error updating user"
	errDeleteUser          = "error deleting user"
	errAssignRoles         = "error assigning user roles"
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	db Querier
	// inTx - репозиторий работает внутри внешней транзакции.
	inTx bool
}

// NewUserRepository создает репозиторий пользователей поверх пула.
func NewUserRepository(db Querier) repositories.UserRepository {
	return &UserRepository{db: db}
}

func newTxUserRepository(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx, inTx: true}
}

func (r *UserRepository) atomic(ctx context.Context, fn func(q Querier) error) error {
	if r.inTx {
		return fn(r.db)
	}
	return runInTx(ctx, r.db, func(tx pgx.Tx) error { return fn(tx) })
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.Email,
		&u.Age,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID находит пользователя по ID вместе с ролями.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := queryFindUserByID
	if r.inTx {
		query += lockSuffix
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, repositories.ErrUserNotFound
		}
		log.Error(ctx, errQueryUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryUserByID, err)
	}

	if err := r.attachRoles(ctx, r.db, user); err != nil {
		log.Error(ctx, errQueryUserRoles, zap.Error(err))
		return nil, err
	}
	return user, nil
}

// FindByUsername находит пользователя по имени входа.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	user, err := scanUser(r.db.QueryRow(ctx, queryFindUserByUsername, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, repositories.ErrUserNotFound
		}
		log.Error(ctx, errQueryUserByUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryUserByUsername, err)
	}

	if err := r.attachRoles(ctx, r.db, user); err != nil {
		log.Error(ctx, errQueryUserRoles, zap.Error(err))
		return nil, err
	}
	return user, nil
}

// FindAll возвращает всех пользователей по возрастанию ID.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	rows, err := r.db.Query(ctx, queryFindAllUsers)
	if err != nil {
		log.Error(ctx, errQueryUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryUsers, err)
	}

	// Строки закрываются до запроса ролей: внутри транзакции соединение одно.
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.User, error) {
		return scanUser(row)
	})
	if err != nil {
		log.Error(ctx, errQueryUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryUsers, err)
	}

	if err := r.attachRoles(ctx, r.db, users...); err != nil {
		log.Error(ctx, errQueryUserRoles, zap.Error(err))
		return nil, err
	}
	return users, nil
}

// Create вставляет пользователя и его роли одной транзакцией.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	var created *entities.User
	err := r.atomic(ctx, func(q Querier) error {
		u, err := scanUser(q.QueryRow(ctx, queryInsertUser,
			user.Username,
			user.Name,
			user.Email,
			user.Age,
			user.PasswordHash,
		))
		if err != nil {
			if mapped := mapDBError(err); errors.Is(mapped, repositories.ErrDuplicateUsername) {
				return mapped
			}
			return fmt.Errorf("%s: %w", errCreateUser, err)
		}

		if err := assignRoles(ctx, q, u.ID, user.RoleIDs()); err != nil {
			return err
		}
		u.Roles = append([]entities.Role(nil), user.Roles...)
		created = u
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			log.Debug(ctx, "username already exists", zap.String("username", user.Username))
		} else {
			log.Error(ctx, errCreateUser, zap.Error(err))
		}
		return nil, err
	}

	return created, nil
}

// Save обновляет поля пользователя и полностью заменяет набор ролей.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	if user.ID == 0 {
		return r.Create(ctx, user)
	}

	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Save"))

	var saved *entities.User
	err := r.atomic(ctx, func(q Querier) error {
		u, err := scanUser(q.QueryRow(ctx, queryUpdateUser,
			user.ID,
			user.Username,
			user.Name,
			user.Email,
			user.Age,
			user.PasswordHash,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repositories.ErrUserNotFound
			}
			if mapped := mapDBError(err); errors.Is(mapped, repositories.ErrDuplicateUsername) {
				return mapped
			}
			return fmt.Errorf("%s: %w", errUpdateUser, err)
		}

		if _, err := q.Exec(ctx, queryClearUserRoles, u.ID); err != nil {
			return fmt.Errorf("%s: %w", errAssignRoles, err)
		}
		if err := assignRoles(ctx, q, u.ID, user.RoleIDs()); err != nil {
			return err
		}
		u.Roles = append([]entities.Role(nil), user.Roles...)
		saved = u
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername), errors.Is(err, repositories.ErrUserNotFound):
			log.Debug(ctx, "user not saved", zap.Int64("id", user.ID), zap.Error(err))
		default:
			log.Error(ctx, errUpdateUser, zap.Error(err))
		}
		return nil, err
	}

	return saved, nil
}

// DeleteByID удаляет пользователя. Связи с ролями удаляются каскадно.
func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "DeleteByID"))

	result, err := r.db.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		log.Error(ctx, errDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errDeleteUser, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user already absent", zap.Int64("id", id))
	}
	return nil
}

func assignRoles(ctx context.Context, q Querier, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := q.Exec(ctx, queryInsertUserRoles, userID, ids); err != nil {
		return fmt.Errorf("%s: %w", errAssignRoles, err)
	}
	return nil
}

// attachRoles загружает роли для users одним запросом.
func (r *UserRepository) attachRoles(ctx context.Context, q Querier, users ...*entities.User) error {
	if len(users) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		u.Roles = []entities.Role{}
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	rows, err := q.Query(ctx, queryUserRoles, ids)
	if err != nil {
		return fmt.Errorf("%s: %w", errQueryUserRoles, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			role   entities.Role
		)
		if err := rows.Scan(&userID, &role.ID, &role.Name); err != nil {
			return fmt.Errorf("%s: %w", errQueryUserRoles, err)
		}
		if u, ok := byID[userID]; ok {
			u.Roles = append(u.Roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", errQueryUserRoles, err)
	}
	return nil
}
