package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"afom-board-be/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status and a
// client-facing message.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	var ve validator.ValidationErrors

	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, validationMessage(ve)
	case errors.Is(err, entity.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

func validationMessage(ve validator.ValidationErrors) string {
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return "validation: " + strings.Join(parts, ", ")
}

// ErrorHandler is installed as fiber's ErrorHandler.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code, message := StatusFor(err)
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

// ErrorHandlerMiddleware converts errors from downstream handlers into the
// error envelope before other middleware sees them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}
