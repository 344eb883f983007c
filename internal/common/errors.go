package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")

	// ErrTransform means the raw scan result could not be normalized.
	ErrTransform = errors.New("malformed scan result")
	// ErrEmptyInventory means there are no ingredients to cook with.
	ErrEmptyInventory = errors.New("inventory is empty")
	// ErrRecipeParse means the model output could not be parsed at all.
	ErrRecipeParse = errors.New("model output unparseable")
	// ErrRecipeFormat means the output parsed but lacked required fields.
	ErrRecipeFormat = errors.New("model output missing required fields")
	// ErrModelReported means the model explicitly signaled failure.
	ErrModelReported = errors.New("model reported an error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
