package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/logger"
)

// Error codes
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"

	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is a classified application error carrying its HTTP status.
// Anything that is not an AppError is treated as unexpected and rendered
// as a generic 500 outside development mode.
type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// NewValidation creates a 400 error for malformed or missing input.
func NewValidation(message string, details interface{}) *AppError {
	if message == "" {
		message = "Invalid request"
	}
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
		Message: message,
		Details: details,
	}
}

// NewNotFound creates a 404 error naming the missing resource and identifier.
func NewNotFound(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s with id %v not found", resource, id),
	}
}

// NewConflict creates a 409 error for unique-constraint violations.
func NewConflict(message string) *AppError {
	if message == "" {
		message = "Resource conflict"
	}
	return &AppError{
		Status:  http.StatusConflict,
		Code:    ErrCodeConflict,
		Message: message,
	}
}

type envelope struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

// Respond writes the error envelope for err and logs it with request context.
// Unclassified errors are logged at error level and their message is
// suppressed unless gin runs in debug mode.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		logger.Warn("request failed",
			"status", appErr.Status,
			"code", appErr.Code,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"error", appErr.Message,
		)
		c.JSON(appErr.Status, envelope{Success: false, Error: appErr})
		return
	}

	logger.Error("unexpected error",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"error", err.Error(),
	)

	message := "Internal server error"
	if gin.Mode() == gin.DebugMode {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, envelope{
		Success: false,
		Error:   &AppError{Code: ErrCodeInternalError, Message: message},
	})
}

// RespondWith writes an explicit AppError envelope without consulting err chains.
func RespondWith(c *gin.Context, appErr *AppError) {
	c.AbortWithStatusJSON(appErr.Status, envelope{Success: false, Error: appErr})
}
