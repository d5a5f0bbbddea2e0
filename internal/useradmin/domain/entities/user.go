// Package entities содержит сущности домена администрирования пользователей.
package entities

import (
	"strings"
	"time"
)

// User представляет учетную запись, управляемую администратором.
type User struct {
	ID           int64
	Username     string
	Name         string
	Email        string
	Age          int
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleIDs возвращает идентификаторы ролей пользователя.
func (u *User) RoleIDs() []int64 {
	ids := make([]int64, 0, len(u.Roles))
	for _, r := range u.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// UserInput - входные данные для создания и обновления пользователя.
//
// Password == nil означает, что пароль не передан. Пустая строка или строка
// из пробелов трактуется так же. RoleNames пустой означает "оставить роли как есть"
// при обновлении.
type UserInput struct {
	Username  string
	Name      string
	Email     string
	Age       int
	Password  *string
	RoleNames []string
}

// HasPassword сообщает, передан ли непустой пароль.
func (in UserInput) HasPassword() bool {
	return in.Password != nil && strings.TrimSpace(*in.Password) != ""
}
