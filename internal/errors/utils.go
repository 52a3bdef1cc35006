package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a DocError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *DocError {
	if err == nil {
		return nil
	}

	// A wrapped DocError keeps its location so the outermost message still points at the source
	var de *DocError
	if errors.As(err, &de) {
		return &DocError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       de,
			Context:     de.Context,
			Component:   de.Component,
			FilePath:    de.FilePath,
			Line:        de.Line,
			Recoverable: de.Recoverable,
		}
	}

	return &DocError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeReference,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *DocError {
	docErr := Wrap(err, ErrorTypeIO, code, message)
	if docErr != nil {
		docErr.Recoverable = false
	}
	return docErr
}

// WrapParse wraps an error as a parse error located in filePath
func WrapParse(err error, message, filePath string, line int) *DocError {
	docErr := Wrap(err, ErrorTypeParse, ErrCodeParse, message)
	if docErr != nil {
		docErr.Recoverable = false
		docErr.WithLocation(filePath, line)
	}
	return docErr
}

// WrapCompile wraps an error as a compile error for the given symbol
func WrapCompile(err error, code, message, symbol string) *DocError {
	docErr := Wrap(err, ErrorTypeCompile, code, message)
	if docErr != nil {
		docErr.Recoverable = false
		docErr.Component = symbol
	}
	return docErr
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *DocError {
	docErr := Wrap(err, ErrorTypeConfig, code, message)
	if docErr != nil {
		docErr.Recoverable = false
	}
	return docErr
}

// ErrorContext returns the structured fields of a DocError for logging.
// It returns nil for other errors.
func ErrorContext(err error) map[string]interface{} {
	var de *DocError
	if !errors.As(err, &de) {
		return nil
	}

	context := make(map[string]interface{}, len(de.Context)+5)
	for k, v := range de.Context {
		context[k] = v
	}
	if de.Component != "" {
		context["symbol"] = de.Component
	}
	if de.FilePath != "" {
		context["file"] = de.FilePath
		if de.Line > 0 {
			context["line"] = de.Line
		}
	}
	context["type"] = string(de.Type)
	context["code"] = de.Code
	context["recoverable"] = de.Recoverable
	return context
}
