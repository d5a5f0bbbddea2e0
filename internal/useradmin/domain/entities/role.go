package entities

import "strings"

// RolePrefix - префикс, с которым роли хранятся в каталоге.
const RolePrefix = "ROLE_"

// Стандартные роли, создаваемые миграциями.
const (
	RoleAdmin = RolePrefix + "ADMIN"
	RoleUser  = RolePrefix + "USER"
)

// Role - справочная запись уровня доступа. Ядро роли не изменяет.
type Role struct {
	ID   int64
	Name string
}

// Authority возвращает имя роли без префикса, например ADMIN.
func (r Role) Authority() string {
	return strings.TrimPrefix(r.Name, RolePrefix)
}
