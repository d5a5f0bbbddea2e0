package app_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/repositories"
)

// memStore - потокобезопасное хранилище в памяти с уникальностью username
// и транзакциями с откатом.
type memStore struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID int64
	users  map[int64]*entities.User
	roles  map[string]entities.Role
}

func newMemStore(roleNames ...string) *memStore {
	s := &memStore{
		users: make(map[int64]*entities.User),
		roles: make(map[string]entities.Role),
	}
	for i, name := range roleNames {
		s.roles[name] = entities.Role{ID: int64(i + 1), Name: name}
	}
	return s
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	c.Roles = append([]entities.Role(nil), u.Roles...)
	return &c
}

func (s *memStore) usernameTaken(username string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

func (s *memStore) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, 0) {
		return nil, repositories.ErrDuplicateUsername
	}

	s.nextID++
	stored := cloneUser(user)
	stored.ID = s.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	s.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *memStore) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (s *memStore) FindAll(_ context.Context) ([]*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*entities.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, cloneUser(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memStore) Save(_ context.Context, user *entities.User) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, user.ID) {
		return nil, repositories.ErrDuplicateUsername
	}

	stored := cloneUser(user)
	stored.UpdatedAt = time.Now().UTC()
	s.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (s *memStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

// roleCatalog открывает каталог ролей хранилища.
type roleCatalog struct {
	s *memStore
}

func (c roleCatalog) FindByName(_ context.Context, name string) (*entities.Role, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	r, ok := c.s.roles[name]
	if !ok {
		return nil, repositories.ErrRoleNotFound
	}
	return &r, nil
}

func (c roleCatalog) FindAll(_ context.Context) ([]entities.Role, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	result := make([]entities.Role, 0, len(c.s.roles))
	for _, r := range c.s.roles {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn repositories.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[int64]*entities.User, len(s.users))
	for id, u := range s.users {
		snapshot[id] = cloneUser(u)
	}
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.users = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// prefixHasher возвращает детерминированный хеш, отличный от пароля.
type prefixHasher struct{}

func (prefixHasher) Hash(_ context.Context, plaintext string) (string, error) {
	return "hashed$" + plaintext, nil
}
