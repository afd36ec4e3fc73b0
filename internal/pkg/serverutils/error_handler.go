package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"notebookrag/pkg/apperror"
)

// ErrorHandlerMiddleware turns errors bubbling out of handlers into JSON
// responses, mapping the error taxonomy onto HTTP statuses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case apperror.IsNotFound(err):
			status = fiber.StatusNotFound
		case apperror.IsValidation(err):
			status = fiber.StatusBadRequest
		case apperror.IsProvider(err):
			status = fiber.StatusBadGateway
		case apperror.IsConfig(err):
			status = fiber.StatusInternalServerError
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
