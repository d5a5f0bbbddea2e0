package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := ctx.Context()

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "internal server error",
				})
			}
		}()

		return ctx.Next()
	}
}
