package postgres_test

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/useradmin/adapters/postgres"
	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/repositories"
)

func TestTransactor_WithinTx(t *testing.T) {
	ctx := testContext(t)
	u := testUser()

	t.Run("locks row, saves and commits", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(reSelectUserByID + ` = \$1 FOR UPDATE`).WithArgs(u.ID).WillReturnRows(userRow(u))
		mock.ExpectQuery(reSelectUserRoles).WithArgs(pgxmock.AnyArg()).WillReturnRows(roleRows(u.ID, u.Roles...))
		mock.ExpectQuery(reUpdateUser).
			WithArgs(u.ID, "renamed", u.Name, u.Email, u.Age, u.PasswordHash).
			WillReturnRows(userRow(u))
		mock.ExpectExec(reClearUserRoles).WithArgs(u.ID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(reInsertUserRoles).WithArgs(u.ID, pgxmock.AnyArg()).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err = postgres.NewTransactor(mock).WithinTx(ctx, func(ctx context.Context, users repositories.UserRepository) error {
			existing, err := users.FindByID(ctx, u.ID)
			if err != nil {
				return err
			}
			existing.Username = "renamed"
			_, err = users.Save(ctx, existing)
			return err
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error from fn rolls back and is returned unchanged", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		notFound := &entities.NotFoundError{ID: 1}
		err = postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context, repositories.UserRepository) error {
			return notFound
		})

		assert.Same(t, notFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("panic rolls back and propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context, repositories.UserRepository) error {
				panic("boom")
			})
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errDatabaseConnection)

		called := false
		err = postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context, repositories.UserRepository) error {
			called = true
			return nil
		})

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.False(t, called)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errDatabaseConnection)

		err = postgres.NewTransactor(mock).WithinTx(ctx, func(context.Context, repositories.UserRepository) error {
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	factory := postgres.NewRepositoryFactory(mock)

	assert.NotNil(t, factory.UserRepository())
	assert.NotNil(t, factory.RoleRepository())
	assert.NotNil(t, factory.Transactor())
}
