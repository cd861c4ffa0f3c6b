package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"reserve-backend/domain"
)

type (
	Response struct {
		Status  bool        `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data,omitempty"`
		Error   string      `json:"error,omitempty"`
	}

	PaginatedData struct {
		Items      interface{}       `json:"items"`
		Pagination domain.Pagination `json:"pagination"`
	}
)

var unauthenticated = []error{
	domain.ErrTokenNotFound,
	domain.ErrTokenInvalid,
	domain.ErrTokenExpired,
	domain.ErrInvalidCredentials,
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}

// ServiceErrorResponse picks the status code from the error's kind.
func ServiceErrorResponse(c *fiber.Ctx, message string, err error) error {
	code := StatusCode(err)
	if code == fiber.StatusInternalServerError {
		log.Errorw(message, "path", c.Path(), "error", err)
		return ErrorResponse(c, code, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, code, message, err)
}

func StatusCode(err error) int {
	for _, e := range unauthenticated {
		if errors.Is(err, e) {
			return fiber.StatusUnauthorized
		}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrExternalService):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
