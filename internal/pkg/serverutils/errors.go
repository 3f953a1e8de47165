package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries an HTTP status alongside a user-facing message. Retryable
// marks failures where the caller should retry the same action unchanged
// (typically the store being temporarily unreachable).
type AppError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewClientInputError rejects a request with missing or malformed fields.
// Nothing is mutated.
func NewClientInputError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

// NewStoreUnavailableError surfaces a storage failure for one request. The
// affected row/session is left untouched and the action can be retried.
func NewStoreUnavailableError(err error) *AppError {
	return &AppError{
		Code:      fiber.StatusServiceUnavailable,
		Message:   "Storage is unavailable, please retry",
		Retryable: true,
		Err:       err,
	}
}

// NewNotFoundError reports an unknown session or row reference.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}
