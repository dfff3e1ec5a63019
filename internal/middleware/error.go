package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-vision-be/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler maps domain errors and fiber errors to a uniform JSON shape.
// Anything unrecognized is reported as a 500 without leaking the cause.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	if domainErr, ok := err.(*domain.Error); ok {
		message = domainErr.Message
		switch domainErr.Kind {
		case domain.KindNotFound:
			code = fiber.StatusNotFound
			errorCode = "NOT_FOUND"
		case domain.KindForbidden:
			code = fiber.StatusForbidden
			errorCode = "FORBIDDEN"
		case domain.KindInvalidState:
			code = fiber.StatusConflict
			errorCode = "INVALID_STATE"
		case domain.KindInvalidInput:
			code = fiber.StatusBadRequest
			errorCode = "BAD_REQUEST"
		case domain.KindConflict:
			code = fiber.StatusConflict
			errorCode = "CONFLICT"
		}
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
