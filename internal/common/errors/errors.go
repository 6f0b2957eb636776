// Package errors provides standardized error handling for the intent service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Transport failures from the LLM leg. All of them are recovered
	// internally via the fallback classifier and never reach the caller.
	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMConnectionFailed ErrorCode = "LLM_CONNECTION_FAILED"
	ErrCodeLLMHTTPError        ErrorCode = "LLM_HTTP_ERROR"

	// Interpretation failures from the response path.
	ErrCodeReplyMalformed    ErrorCode = "REPLY_MALFORMED"
	ErrCodeIntentUnknown     ErrorCode = "INTENT_UNKNOWN"
	ErrCodeConfidenceMissing ErrorCode = "CONFIDENCE_MISSING"

	// The only codes that surface to callers.
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM completion call timed out",
		Details:   "call exceeded the configured request timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMConnectionError creates a retryable LLM transport error.
func NewLLMConnectionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMConnectionFailed,
		Message:   "LLM endpoint unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMHTTPError creates a non-2xx LLM response error.
func NewLLMHTTPError(status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMHTTPError,
		Message:   "LLM endpoint returned a non-success status",
		Details:   fmt.Sprintf("status: %d", status),
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewReplyMalformedError creates a non-retryable interpretation error.
func NewReplyMalformedError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReplyMalformed,
		Message:   "LLM reply could not be interpreted",
		Details:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable caller-side validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Input text validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigError creates a non-retryable configuration error.
func NewConfigError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid service configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache backend error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCallerError reports whether the code should surface to callers instead of
// being recovered through the fallback path.
func IsCallerError(code ErrorCode) bool {
	return code == ErrCodeInvalidInput || code == ErrCodeConfigInvalid
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "LLM"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "REPLY") || strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "CONFIDENCE"):
		return "INTERPRETATION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "CONFIG"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
