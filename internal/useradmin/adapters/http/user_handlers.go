package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"useradmin/internal/useradmin/ports/api"
	"useradmin/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListUsers  = "handling list users request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerCreateUser = "handling create user request"
	LogHandlerUpdateUser = "handling update user request"
	LogHandlerDeleteUser = "handling delete user request"
	LogHandlerListRoles  = "handling list roles request"

	MsgUserDeleted = "user deleted"

	paramUserID = "id"
)

// Handler обрабатывает HTTP запросы администрирования пользователей.
type Handler struct {
	users api.UserAdminUseCase
}

// NewHandler создает обработчик.
func NewHandler(users api.UserAdminUseCase) *Handler {
	return &Handler{users: users}
}

func parseUserID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params(paramUserID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidUserID(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrMsgInvalidUserID})
}

// ListUsers обрабатывает GET /api/admin/users.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, LogHandlerListUsers)

	users, err := h.users.ListUsers(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(toUserResponses(users))
}

// GetUser обрабатывает GET /api/admin/users/:id.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	id, ok := parseUserID(ctx)
	if !ok {
		return invalidUserID(ctx)
	}

	user, found, err := h.users.GetUser(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	if !found {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgUserNotFound})
	}

	return ctx.JSON(toUserResponse(user))
}

// CreateUser обрабатывает POST /api/admin/users.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req UserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleBindError(ctx, err)
	}

	user, err := h.users.CreateUser(requestCtx, req.ToInput())
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(toUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateUser обрабатывает PUT /api/admin/users/:id.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, LogHandlerUpdateUser)

	id, ok := parseUserID(ctx)
	if !ok {
		return invalidUserID(ctx)
	}

	var req UserRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return handleBindError(ctx, err)
	}

	user, err := h.users.UpdateUser(requestCtx, id, req.ToInput())
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(toUserResponse(user))
}

// DeleteUser обрабатывает DELETE /api/admin/users/:id. Повторное удаление успешно.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, LogHandlerDeleteUser)

	id, ok := parseUserID(ctx)
	if !ok {
		return invalidUserID(ctx)
	}

	if err := h.users.DeleteUser(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"message": MsgUserDeleted})
}

// ListRoles обрабатывает GET /api/admin/roles.
func (h *Handler) ListRoles(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListRoles"))
	log.Debug(requestCtx, LogHandlerListRoles)

	roles, err := h.users.ListRoles(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}

	return ctx.JSON(toRoleResponses(roles))
}
