// Package http содержит HTTP API администрирования пользователей на fiber.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"useradmin/internal/useradmin/adapters/http/middleware"
	"useradmin/internal/useradmin/ports/api"
	"useradmin/internal/useradmin/ports/services"
)

// AppOptions - параметры приложения fiber.
type AppOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// NewApp создает приложение fiber с валидатором тел и JSON-обработчиком ошибок.
func NewApp(opts AppOptions) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:         "useradmin",
		ReadTimeout:     opts.ReadTimeout,
		WriteTimeout:    opts.WriteTimeout,
		BodyLimit:       opts.BodyLimit,
		ErrorHandler:    ErrorHandler,
		StructValidator: NewStructValidator(),
	})
}

// SetupRouter настраивает маршруты. Все маршруты /api/admin требуют роль ROLE_ADMIN.
func SetupRouter(app *fiber.App, users api.UserAdminUseCase, verifier services.TokenVerifier) {
	handler := NewHandler(users)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	admin := app.Group("/api/admin", middleware.NewAdminMiddleware(verifier))

	userRoutes := admin.Group("/users")
	userRoutes.Get("/", handler.ListUsers)
	userRoutes.Post("/", handler.CreateUser)
	userRoutes.Get("/:id", handler.GetUser)
	userRoutes.Put("/:id", handler.UpdateUser)
	userRoutes.Delete("/:id", handler.DeleteUser)

	admin.Get("/roles", handler.ListRoles)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrMsgRouteNotFound})
	})
}
