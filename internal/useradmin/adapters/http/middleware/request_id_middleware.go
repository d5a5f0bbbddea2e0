// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"useradmin/pkg/logger"
)

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.HeaderRequestID))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(logger.HeaderRequestID, id)
		}
		ctx.SetContext(requestCtx)

		return ctx.Next()
	}
}
