package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	svc "useradmin/internal/useradmin/ports/services"
	"useradmin/pkg/logger"
)

const (
	methodVerify       = "Verify"
	msgValidatingToken = "validating access token"
	msgTokenRejected   = "access token rejected"
)

// Claims - полезная нагрузка токена доступа.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// ServiceJWT проверяет токены HS256, выпущенные сервисом аутентификации.
type ServiceJWT struct {
	secretKey []byte
	issuer    string
}

// NewJWT создает верификатор. Пустой issuer отключает проверку издателя.
func NewJWT(secretKey, issuer string) svc.TokenVerifier {
	return &ServiceJWT{secretKey: []byte(secretKey), issuer: issuer}
}

// Verify проверяет подпись, алгоритм и срок действия токена.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*svc.AccessClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgValidatingToken)

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, svc.ErrTokenMissing
	}
	if len(s.secretKey) == 0 {
		return nil, fmt.Errorf("%w: empty secret key", svc.ErrTokenInvalid)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "expired"
		}
		log.Debug(ctx, msgTokenRejected, zap.String("reason", reason), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", svc.ErrTokenInvalid, err)
	}

	return &svc.AccessClaims{Subject: claims.Subject, Roles: claims.Roles}, nil
}
