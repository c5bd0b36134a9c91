package userauth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
)

// Response is the JSON envelope written by the gate and the error handlers
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Unauthorised writes the 401 sent for requests without a token
func Unauthorised(ctx router.Context) error {
	return ctx.JSON(router.StatusUnauthorized, Response{
		Success: false,
		Message: MessageUnauthorised,
		Data:    map[string]any{},
	})
}

// ErrorResponse maps err to a status code and failure envelope
func ErrorResponse(err error) (int, Response) {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	switch {
	case IsInvalidTokenError(err):
		code = fiber.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, ErrMissingCredential):
		code = fiber.StatusUnauthorized
		message = MessageUnauthorised
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	return code, Response{
		Success: false,
		Message: message,
		Data:    map[string]any{},
	}
}

// ErrorHandler is a router.ErrorHandler rendering errors with the gate
// envelope. Pass it as GateConfig.ErrorHandler to answer bad tokens in place.
func ErrorHandler(ctx router.Context, err error) error {
	code, resp := ErrorResponse(err)
	return ctx.JSON(code, resp)
}

// FiberErrorHandler renders the same envelope for a fiber app, including one
// created through the go-router fiber adapter.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	code, resp := ErrorResponse(err)
	return c.Status(code).JSON(resp)
}
