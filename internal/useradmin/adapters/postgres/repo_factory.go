package postgres

import (
	"useradmin/internal/useradmin/ports/repositories"
)

// RepositoryFactory создает репозитории и Transactor поверх одного пула.
type RepositoryFactory struct {
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	transactor repositories.Transactor
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool Querier) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:   NewUserRepository(pool),
		roleRepo:   NewRoleRepository(pool),
		transactor: NewTransactor(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// RoleRepository возвращает репозиторий ролей.
func (f *RepositoryFactory) RoleRepository() repositories.RoleRepository {
	return f.roleRepo
}

// Transactor возвращает Transactor.
func (f *RepositoryFactory) Transactor() repositories.Transactor {
	return f.transactor
}
