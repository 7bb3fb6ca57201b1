package errors

import (
	"errors"
	"fmt"
)

// NewConfigurationError creates an error for a missing or invalid remote
// resource identifier. Operations against the resource are refused before
// any network call is made.
func NewConfigurationError(resource string, field string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: fmt.Sprintf("%s is not configured: %s is missing", resource, field),
		Code:    "NOT_CONFIGURED",
		Context: map[string]interface{}{
			"resource": resource,
			"field":    field,
		},
	}
}

// NewRemoteError creates an error for a failed call against the remote store
func NewRemoteError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("remote operation failed: %s", operation),
		Code:    "REMOTE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewRemoteStatusError creates a remote error carrying the HTTP status code
func NewRemoteStatusError(operation string, statusCode int, body string) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("remote operation failed: %s (status %d)", operation, statusCode),
		Code:    "REMOTE_ERROR",
		Context: map[string]interface{}{
			"operation":   operation,
			"status_code": statusCode,
			"body":        body,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewPartialBatchError records an individual lookup failure inside a batch
// operation. Callers log it and omit the failed item rather than failing
// the whole batch.
func NewPartialBatchError(resource string, identifier string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypePartialBatch,
		Message: fmt.Sprintf("batch lookup failed for %s: %s", resource, identifier),
		Code:    "PARTIAL_BATCH",
		Cause:   cause,
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// StatusCode returns the HTTP status code attached to a remote error, or 0
func StatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		if code, exists := appErr.GetContext("status_code"); exists {
			if n, ok := code.(int); ok {
				return n
			}
		}
	}
	return 0
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeConfiguration:
			return appErr.Message + " (check your TB_AIRTABLE_* environment variables)"
		case ErrorTypeRemote:
			return "The remote store could not be reached. The change was not saved."
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypePartialBatch:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return false // User errors, not system errors
		case ErrorTypeConfiguration, ErrorTypeRemote, ErrorTypePartialBatch:
			return true
		default:
			return true
		}
	}
	return true
}
