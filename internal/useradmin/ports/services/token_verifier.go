package services

import (
	"context"
	"errors"
)

// Ошибки проверки токена доступа.
var (
	ErrTokenMissing = errors.New("access token is missing")
	ErrTokenInvalid = errors.New("access token is invalid")
)

// AccessClaims - сведения о вызывающем, извлеченные из токена.
type AccessClaims struct {
	Subject string
	Roles   []string
}

// TokenVerifier проверяет токен доступа.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*AccessClaims, error)
}
