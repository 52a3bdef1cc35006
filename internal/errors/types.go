// Package errors provides the structured error type used across the
// documentation pipeline, plus a collector for per-run diagnostics.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeReference  ErrorType = "reference"
	ErrorTypeCompile    ErrorType = "compile"
	ErrorTypeEvaluation ErrorType = "evaluation"
	ErrorTypeInternal   ErrorType = "internal"
)

// DocError is a structured error type with context.
type DocError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	FilePath    string
	Line        int
	Recoverable bool
}

// Error implements the error interface.
func (e *DocError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "symbol:"+e.Component)
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *DocError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *DocError) Is(target error) bool {
	var t *DocError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *DocError) WithContext(key string, value interface{}) *DocError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds file location information.
func (e *DocError) WithLocation(filePath string, line int) *DocError {
	e.FilePath = filePath
	e.Line = line

	return e
}

// WithComponent records the documented symbol the error is about.
func (e *DocError) WithComponent(component string) *DocError {
	e.Component = component

	return e
}

// Common error codes.
const (
	ErrCodeWorkspace          = "ERR_WORKSPACE"
	ErrCodeParse              = "ERR_PARSE"
	ErrCodeUnresolvedRef      = "ERR_UNRESOLVED_REFERENCE"
	ErrCodeUnresolvedRefs     = "ERR_UNRESOLVED_REFERENCES"
	ErrCodeExampleCompile     = "ERR_EXAMPLE_COMPILE"
	ErrCodeEvaluation         = "ERR_EVALUATION"
	ErrCodeEmit               = "ERR_EMIT"
	ErrCodeConfigInvalid      = "ERR_CONFIG_INVALID"
	ErrCodeCompilerStart      = "ERR_COMPILER_START"
	ErrCodeInternalError      = "ERR_INTERNAL"
	ErrCodeInvalidDeclaration = "ERR_INVALID_DECLARATION"
)

// NewParseError creates a parse error.
func NewParseError(code, message string) *DocError {
	return &DocError{
		Type:        ErrorTypeParse,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewReferenceError creates an unresolved reference error.
func NewReferenceError(code, message string) *DocError {
	return &DocError{
		Type:        ErrorTypeReference,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *DocError {
	return &DocError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *DocError {
	return &DocError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsReferenceError checks if an error is an unresolved reference.
func IsReferenceError(err error) bool {
	var de *DocError
	if errors.As(err, &de) {
		return de.Type == ErrorTypeReference
	}

	return false
}

// IsCompileError checks if an error came from the Sass compiler.
func IsCompileError(err error) bool {
	var de *DocError
	if errors.As(err, &de) {
		return de.Type == ErrorTypeCompile
	}

	return false
}
