package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Database errors
	ErrGroupNotFound ErrorCode = "GROUP_NOT_FOUND"
	ErrGroupParse    ErrorCode = "GROUP_PARSE"
	ErrStoreRead     ErrorCode = "STORE_READ"
	ErrStoreWrite    ErrorCode = "STORE_WRITE"

	// Record errors
	ErrRecordInvalid  ErrorCode = "RECORD_INVALID"
	ErrRecordNotFound ErrorCode = "RECORD_NOT_FOUND"

	// Link errors
	ErrLinkCreate   ErrorCode = "LINK_CREATE"
	ErrLinkRemove   ErrorCode = "LINK_REMOVE"
	ErrLinkConflict ErrorCode = "LINK_CONFLICT"

	// Manifest errors
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// AltError represents a structured error with code and details
type AltError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AltError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AltError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AltError) Is(target error) bool {
	var targetErr *AltError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AltError with the given code and message
func New(code ErrorCode, message string) *AltError {
	return &AltError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AltError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AltError {
	return &AltError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AltError
func Wrap(err error, code ErrorCode, message string) *AltError {
	if err == nil {
		return nil
	}
	return &AltError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AltError {
	if err == nil {
		return nil
	}
	return &AltError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AltError) WithDetail(key string, value interface{}) *AltError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *AltError) WithDetails(details map[string]interface{}) *AltError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var altErr *AltError
	if errors.As(err, &altErr) {
		return altErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AltError
func GetErrorCode(err error) ErrorCode {
	var altErr *AltError
	if errors.As(err, &altErr) {
		return altErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AltError
func GetErrorDetails(err error) map[string]interface{} {
	var altErr *AltError
	if errors.As(err, &altErr) {
		return altErr.Details
	}
	return nil
}

// UserMessage returns the message chain of an error without the bracketed
// codes that Error adds. Non-AltError errors contribute their Error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	altErr, ok := err.(*AltError)
	if !ok {
		return err.Error()
	}
	if altErr.Wrapped == nil {
		return altErr.Message
	}
	return altErr.Message + ": " + UserMessage(altErr.Wrapped)
}
