package middleware

import (
	"errors"
	"log"

	"skill-directory/internal/domain"
	"skill-directory/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

// FromDomain maps a usecase error onto an HTTP status. Unknown errors become
// a 500 whose cause is only logged.
func FromDomain(err error) *AppError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnauthorized):
		return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, err)
	case errors.Is(err, domain.ErrInvalidInput):
		return NewAppError(fiber.StatusBadRequest, publicMessage(err, domain.ErrInvalidInput), err)
	case errors.Is(err, domain.ErrConflict):
		return NewAppError(fiber.StatusConflict, publicMessage(err, domain.ErrConflict), err)
	case errors.Is(err, domain.ErrNotFound):
		return NewAppError(fiber.StatusNotFound, publicMessage(err, domain.ErrNotFound), err)
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}

// publicMessage keeps the wrapped text for client errors. The chain never
// carries driver detail for these kinds.
func publicMessage(err, kind error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return kind.Error()
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered | path=%s panic=%v", c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg := normalizeError(err)
		if status >= 500 {
			m.logger.Printf("request failed | method=%s path=%s err=%v", c.Method(), c.Path(), err)
		}
		return response.Error(c, status, msg)
	}
}

func normalizeError(err error) (int, string) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 || appErr.StatusCode >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(appErr.StatusCode)
		}
		return appErr.StatusCode, msg
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg
	}

	if app := FromDomain(err); app.StatusCode < 500 {
		return app.StatusCode, app.Message
	}
	return fiber.StatusInternalServerError, response.MessageInternalServerError
}
