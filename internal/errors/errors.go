package errors

import "fmt"

// ErrorCode represents a clipsense error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"         // 404
	ErrRuleNotFound    ErrorCode = "RULE_NOT_FOUND"    // 404
	ErrInvalidRule     ErrorCode = "INVALID_RULE"      // 422
	ErrContentTooLarge ErrorCode = "CONTENT_TOO_LARGE" // 413
	ErrInternal        ErrorCode = "INTERNAL"          // 500
)

// ClipError represents a structured error with code, status, and details.
type ClipError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ClipError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ClipError {
	return &ClipError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an entry cannot be found.
func NewNotFound(id string) *ClipError {
	return &ClipError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewRuleNotFound creates a 404 error for when a rule cannot be found.
func NewRuleNotFound(id string) *ClipError {
	return &ClipError{
		Code:    ErrRuleNotFound,
		Status:  404,
		Message: fmt.Sprintf("rule not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInvalidRule creates a 422 error for a rule that fails validation.
func NewInvalidRule(msg string) *ClipError {
	return &ClipError{
		Code:    ErrInvalidRule,
		Status:  422,
		Message: msg,
	}
}

// NewContentTooLarge creates a 413 error when content exceeds the size limit.
func NewContentTooLarge(max, actual int) *ClipError {
	return &ClipError{
		Code:    ErrContentTooLarge,
		Status:  413,
		Message: fmt.Sprintf("content exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ClipError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ClipError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ClipError with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*ClipError); ok {
		return cErr.Code == code
	}
	return false
}
