// Package services содержит адаптеры внешних сервисов: хеширование паролей и проверку токенов.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	svc "useradmin/internal/useradmin/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"

	// MaxPasswordBytes - предел длины входа bcrypt.
	MaxPasswordBytes = 72
)

// ErrEmptyPassword возвращается при попытке хешировать пустой пароль.
var ErrEmptyPassword = errors.New("password is empty")

// ServiceBcrypt реализует PasswordHasher на bcrypt.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает хешер. Недопустимая стоимость заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash хеширует пароль. Отмененный контекст прерывает операцию до вычисления.
func (s *ServiceBcrypt) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", svc.ErrPasswordTooLong, len(plaintext), MaxPasswordBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", svc.ErrPasswordTooLong, err)
		}
		return "", fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, err)
	}
	return string(hashed), nil
}
