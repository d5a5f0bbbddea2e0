package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/internal/useradmin/ports/services"
	"useradmin/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogAdminMiddleware = "admin guard"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
	ErrorForbidden          = "admin role required"

	// LocalsSubject - ключ Locals с идентификатором вызывающего.
	LocalsSubject = "subject"

	bearerPrefix = "Bearer "
)

// NewAdminMiddleware пропускает только запросы с действительным токеном,
// содержащим роль ROLE_ADMIN.
func NewAdminMiddleware(verifier services.TokenVerifier) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "admin"))
		log.Debug(requestCtx, LogAdminMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorNoAuthHeader})
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidTokenFormat})
		}

		claims, err := verifier.Verify(requestCtx, strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			msg := ErrorInvalidToken
			if errors.Is(err, services.ErrTokenMissing) {
				msg = ErrorInvalidTokenFormat
			}
			log.Debug(requestCtx, msg, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
		}

		if !slices.Contains(claims.Roles, entities.RoleAdmin) {
			log.Info(requestCtx, ErrorForbidden, zap.String("subject", claims.Subject))
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": ErrorForbidden})
		}

		ctx.Locals(LocalsSubject, claims.Subject)
		return ctx.Next()
	}
}
