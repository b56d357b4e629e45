package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Application error codes
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidTaskType  = errors.New("invalid task type")
	ErrInvalidDaysLimit = errors.New("invalid days limit")
	ErrInternalServer   = errors.New("internal server error")
)

// AppError represents an application-specific error
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a not found error
func NotFoundError(resource string) *AppError {
	return &AppError{
		Code:    40400,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     ErrNotFound,
	}
}

// AlreadyExistsError creates an already exists error
func AlreadyExistsError(resource string) *AppError {
	return &AppError{
		Code:    40900,
		Message: fmt.Sprintf("%s already exists", resource),
		Err:     ErrAlreadyExists,
	}
}

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return &AppError{
		Code:    40000,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// InvalidTaskTypeError is returned when a template-only operation targets another task type
func InvalidTaskTypeError(taskID uint) *AppError {
	return &AppError{
		Code:    40001,
		Message: fmt.Sprintf("task with id %d is not a template task", taskID),
		Err:     ErrInvalidTaskType,
	}
}

// InvalidDaysLimitError is returned when a days window falls outside [min, max]
func InvalidDaysLimitError(days, min, max int) *AppError {
	return &AppError{
		Code:    40002,
		Message: fmt.Sprintf("days parameter must be between %d and %d, got %d", min, max, days),
		Err:     ErrInvalidDaysLimit,
	}
}

// InternalError creates an internal server error
func InternalError(message string, err error) *AppError {
	return &AppError{
		Code:    50000,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts the AppError from an error chain, if any
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidInput checks if the error is a validation error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidTaskType checks if the error is an invalid task type error
func IsInvalidTaskType(err error) bool {
	return errors.Is(err, ErrInvalidTaskType)
}

// IsInvalidDaysLimit checks if the error is an invalid days limit error
func IsInvalidDaysLimit(err error) bool {
	return errors.Is(err, ErrInvalidDaysLimit)
}
