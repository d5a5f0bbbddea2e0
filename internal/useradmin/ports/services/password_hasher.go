// Package services определяет порты внешних сервисов.
package services

import (
	"context"
	"errors"
)

// ErrPasswordTooLong возвращается хешером, если пароль длиннее допустимого алгоритмом.
var ErrPasswordTooLong = errors.New("password is too long")

// PasswordHasher выполняет одностороннее преобразование пароля в хеш.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
}
