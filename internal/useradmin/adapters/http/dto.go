package http

import (
	"time"

	"useradmin/internal/useradmin/domain/entities"
)

// UserRequest - тело запросов создания и обновления пользователя.
// Пароль опционален: при обновлении отсутствие пароля сохраняет текущий хеш.
type UserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=64"`
	Name     string   `json:"name" validate:"max=128"`
	Email    string   `json:"email" validate:"omitempty,email,max=255"`
	Age      int      `json:"age" validate:"gte=0,lte=150"`
	Password *string  `json:"password,omitempty" validate:"omitempty,max=72"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required,max=64"`
}

// ToInput преобразует запрос во входные данные сценария.
func (r *UserRequest) ToInput() entities.UserInput {
	return entities.UserInput{
		Username:  r.Username,
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		Password:  r.Password,
		RoleNames: r.Roles,
	}
}

// RoleResponse - роль в ответе.
type RoleResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Authority string `json:"authority"`
}

// UserResponse - пользователь в ответе. Хеш пароля не передается.
type UserResponse struct {
	ID        int64          `json:"id"`
	Username  string         `json:"username"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Age       int            `json:"age"`
	Roles     []RoleResponse `json:"roles"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toRoleResponses(roles []entities.Role) []RoleResponse {
	resp := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		resp = append(resp, RoleResponse{ID: r.ID, Name: r.Name, Authority: r.Authority()})
	}
	return resp
}

func toUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		Roles:     toRoleResponses(u.Roles),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*entities.User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return resp
}
