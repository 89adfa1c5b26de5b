// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

/* ===============================
   Error responses
=================================*/

// JsonError: error generic. Body selalu punya "error" supaya client tidak perlu string-matching.
func JsonError(c *fiber.Ctx, status int, message string) error {
	return JsonErrorWithHints(c, status, statusToErrorCode(status), message, nil)
}

func JsonErrorWithHints(c *fiber.Ctx, status int, code, message string, hints map[string]any) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	body := fiber.Map{
		"success":    false,
		"error":      message,
		"message":    message,
		"error_code": code,
	}
	for k, v := range hints {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// JsonValidationError: field errors dari validator.v10 → 400
func JsonValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	fieldErrors := map[string][]string{}
	required := []string{}
	for _, fe := range ve {
		name := jsonFieldName(fe)
		fieldErrors[name] = append(fieldErrors[name], fe.Tag())
		if fe.Tag() == "required" {
			required = append(required, name)
		}
	}
	hints := map[string]any{"errors": fieldErrors}
	if len(required) > 0 {
		hints["required"] = required
	}
	return JsonErrorWithHints(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "validation failed", hints)
}

// JsonAppError: render error dari service layer. Error tak dikenal → 500 tanpa bocor detail.
func JsonAppError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindInternal {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), ae)
		}
		return JsonErrorWithHints(c, ae.Status(), string(ae.Kind), ae.Message, ae.Hints)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Field()
	if ns == "" {
		return strings.ToLower(fe.StructField())
	}
	return ns
}

/* ===============================
   JSON responses (standard success)
=================================*/

func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return JsonOK(c, message, data)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "deleted"
	}
	return JsonOK(c, message, data)
}
