package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindInvalidInput ErrorKind = "INVALID_INPUT"
	KindInvalidState ErrorKind = "INVALID_STATE"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindConflict     ErrorKind = "CONFLICT"
	KindInternal     ErrorKind = "INTERNAL"
)

// AppError is the error type returned by the service layer.
// Hints are merged into the JSON error body (e.g. "required", "validRoles").
type AppError struct {
	Kind    ErrorKind
	Message string
	Hints   map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) WithHint(key string, value any) *AppError {
	if e.Hints == nil {
		e.Hints = map[string]any{}
	}
	e.Hints[key] = value
	return e
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindInvalidInput, KindInvalidState:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func newAppError(kind ErrorKind, msg string, args ...any) *AppError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &AppError{Kind: kind, Message: msg}
}

func InvalidInput(msg string, args ...any) *AppError {
	return newAppError(KindInvalidInput, msg, args...)
}

func InvalidState(msg string, args ...any) *AppError {
	return newAppError(KindInvalidState, msg, args...)
}

func NotFound(msg string, args ...any) *AppError {
	return newAppError(KindNotFound, msg, args...)
}

func Forbidden(msg string, args ...any) *AppError {
	return newAppError(KindForbidden, msg, args...)
}

func Conflict(msg string, args ...any) *AppError {
	return newAppError(KindConflict, msg, args...)
}

// Internal wraps a storage or unexpected error. Message is what the client sees.
func Internal(err error, msg string) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}
