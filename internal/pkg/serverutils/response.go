package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ApiResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) ApiResponse {
	return ApiResponse{Message: message, Data: data}
}

// ErrorHandlerMiddleware converts errors escaping controllers into a JSON
// envelope. Validation errors map to 400, everything else to 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ApiResponse{Message: fiberErr.Message})
		}

		var valErr *RequestValidationError
		if errors.As(err, &valErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ApiResponse{Message: valErr.Error()})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ApiResponse{Message: "Internal server error"})
	}
}
