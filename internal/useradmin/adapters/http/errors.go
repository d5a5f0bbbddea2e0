package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/domain/entities"
	"useradmin/pkg/logger"
)

// Сообщения об ошибках в ответах.
const (
	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUserNotFound       = "user not found"
	ErrMsgStoreUnavailable   = "service temporarily unavailable"
	ErrMsgInternal           = "internal server error"
	ErrMsgRouteNotFound      = "route not found"
)

// handleError отвечает кодом, соответствующим виду ошибки домена.
func handleError(ctx fiber.Ctx, err error) error {
	var (
		vErr  *entities.ValidationError
		nfErr *entities.NotFoundError
		cErr  *entities.ConflictError
	)

	switch {
	case errors.As(err, &vErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  vErr.Error(),
			"field":  vErr.Field,
			"reason": vErr.Reason,
		})
	case errors.As(err, &nfErr):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgUserNotFound})
	case errors.As(err, &cErr):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  cErr.Error(),
			"field":  cErr.Field,
			"reason": cErr.Reason,
		})
	case errors.Is(err, entities.ErrStoreUnavailable):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": ErrMsgStoreUnavailable})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrMsgInternal})
	}
}

// handleBindError отвечает 400 на некорректное тело или нарушение правил валидации.
func handleBindError(ctx fiber.Ctx, err error) error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, fmt.Sprintf("%s:%s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  ErrMsgInvalidRequestBody,
			"fields": fields,
		})
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidRequestBody})
}

// ErrorHandler - обработчик ошибок приложения fiber, отвечающий JSON.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := ErrMsgInternal

	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		code = fErr.Code
		msg = fErr.Message
	}

	requestCtx := ctx.Context()
	if code >= fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, "unhandled error", zap.Error(err))
	}

	return ctx.Status(code).JSON(fiber.Map{"error": msg})
}
