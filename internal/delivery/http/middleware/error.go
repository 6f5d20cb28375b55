package middleware

import (
	"errors"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/pkg/response"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
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

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware is the only place an error becomes a response, so a
// handler can never answer a request twice. Outside production the
// error detail (and the stack, for panics) rides along in the body.
type ErrorMiddleware struct {
	production bool
	logger     *log.Logger
}

func NewErrorMiddleware(production bool, logger *log.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{production: production, logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				m.logf("panic recovered: %v\n%s", r, stack)

				var data interface{}
				if !m.production {
					data = fiber.Map{"panic": toString(r), "stack": string(stack)}
				}
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, data)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.normalizeError(err)
		if status >= 500 {
			m.logf("request failed: %v", err)
		}
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		msg := appErr.Message
		data := appErr.Data
		if status >= 500 {
			msg = response.MessageInternalServerError
			data = nil
		}
		if data == nil && !m.production && appErr.Cause != nil {
			data = fiber.Map{"error": appErr.Cause.Error()}
		}
		return status, msg, data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, fiberErr.Message, nil
	}

	var data interface{}
	if !m.production {
		data = fiber.Map{"error": err.Error()}
	}
	return fiber.StatusInternalServerError, response.MessageInternalServerError, data
}

func (m *ErrorMiddleware) logf(format string, args ...any) {
	if m != nil && m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

func toString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "panic"
}
