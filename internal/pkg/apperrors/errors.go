package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Question set errors
	ErrQuestionSetNotFound  = errors.New("question set not found")
	ErrQuestionFileNotFound = errors.New("question file not found")
)

// Document pipeline errors.
//
// The first three are per-file conditions: inside a batch they are logged and
// the offending file is skipped, they never fail the whole request. The batch
// level errors (ErrEmptyBatch, ErrNothingToCombine) are fatal and must be
// raised before any response bytes are written.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrSourceUnreadable  = errors.New("source file unreadable")
	ErrConversionFailed  = errors.New("document conversion failed")

	ErrEmptyBatch       = errors.New("no files found for the given question sets")
	ErrNothingToCombine = errors.New("nothing to combine")

	ErrStreamWriteFailed = errors.New("response stream write failed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewConversionError wraps a per-file conversion failure with context
func NewConversionError(cause error, message string) error {
	return &CustomError{
		Err:     ErrConversionFailed,
		Message: message,
		Cause:   cause,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
