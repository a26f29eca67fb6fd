// Package derrors provides the typed errors used across hdrcomp.
// Every error carries a stable code so callers can tell a broken path source
// from an unreadable directory without string matching.
package derrors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeConfiguration = "CONFIG_ERROR"
	CodeIO            = "IO_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeAuthorization = "AUTH_ERROR"
)

// CodedError is implemented by all hdrcomp errors
type CodedError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError is returned when a path source or a config file is unusable.
type ConfigurationError struct {
	baseError
	Source string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(source string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    CodeConfiguration,
			message: message,
			cause:   cause,
		},
		Source: source,
	}
}

// IOError is returned when a directory cannot be listed
type IOError struct {
	baseError
	Path string
}

// NewIOError creates a new I/O error
func NewIOError(path string, message string, cause error) *IOError {
	return &IOError{
		baseError: baseError{
			code:    CodeIO,
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    CodeValidation,
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    CodeNotFound,
			message: message,
		},
		Resource: resource,
	}
}

// AuthorizationError is returned when a project directory is not trusted
type AuthorizationError struct {
	baseError
	Path string
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(path string, message string, cause error) *AuthorizationError {
	return &AuthorizationError{
		baseError: baseError{
			code:    CodeAuthorization,
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// CodeOf returns the code of the first CodedError in err's chain, or "" if none.
func CodeOf(err error) string {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
