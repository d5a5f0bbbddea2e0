package http

import (
	"github.com/go-playground/validator/v10"
)

// StructValidator подключает validator/v10 к привязке тел запросов fiber.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator создает валидатор с проверкой обязательных полей структур.
func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate проверяет теги validate у out.
func (v *StructValidator) Validate(out any) error {
	return v.validate.Struct(out)
}
