package entities

import (
	"errors"
	"fmt"
)

// Виды ошибок. Конкретные ошибки сопоставляются с ними через errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Причины ошибок валидации и конфликтов.
const (
	ReasonRolesRequired     = "RolesRequired"
	ReasonPasswordRequired  = "PasswordRequired"
	ReasonPasswordTooLong   = "PasswordTooLong"
	ReasonDuplicateUsername = "DuplicateUsername"
)

// Поля, к которым относятся ошибки.
const (
	FieldRoles    = "roles"
	FieldPassword = "password"
	FieldUsername = "username"
)

// ValidationError - ошибка входных данных, исправимая вызывающей стороной.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Is связывает ошибку с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError - пользователь с указанным ID отсутствует.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.ID)
}

// Is связывает ошибку с ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError - нарушение уникальности в хранилище.
type ConflictError struct {
	Field  string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %s", e.Field, e.Reason)
}

// Is связывает ошибку с ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StoreUnavailableError - отказ хранилища или хешера. Повторы не выполняются.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

// Is связывает ошибку с ErrStoreUnavailable.
func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsDomainError сообщает, относится ли err к одному из видов ошибок домена.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStoreUnavailable)
}
