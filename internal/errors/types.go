package errors

import (
	stderrors "errors"
	"fmt"
)

// QuickWrapError is implemented by every error the generator reports
type QuickWrapError interface {
	error
	ErrorCode() ErrorCode
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a failure. A code is itself an error so it can be
// used as an errors.Is target.
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Surface errors
	UnresolvableTypeErrorCode
	UnsupportedMemberErrorCode
	InvalidIdentifierErrorCode

	// Input errors
	ManifestErrorCode
	ConfigurationErrorCode

	// Output errors
	TemplateErrorCode
	FileSystemErrorCode
)

var codeNames = map[ErrorCode]string{
	UnresolvableTypeErrorCode:  "UnresolvableTypeError",
	UnsupportedMemberErrorCode: "UnsupportedMemberError",
	InvalidIdentifierErrorCode: "InvalidIdentifierError",
	ManifestErrorCode:          "ManifestError",
	ConfigurationErrorCode:     "ConfigurationError",
	TemplateErrorCode:          "TemplateError",
	FileSystemErrorCode:        "FileSystemError",
}

// String returns the name reported to users and HTTP clients
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UnknownError"
}

// Error implements the error interface
func (c ErrorCode) Error() string {
	return c.String()
}

// BaseError is the QuickWrapError used throughout the module. Context and
// suggestions are attached with the With* builders.
type BaseError struct {
	Code    ErrorCode
	Message string // headline without the cause
	Cause   error

	context     map[string]interface{}
	suggestions []string
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the attached context, never nil
func (e *BaseError) Context() map[string]interface{} {
	if e.context == nil {
		return map[string]interface{}{}
	}
	return e.context
}

// Suggestions returns the attached suggestions in order
func (e *BaseError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the cause
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Is matches an ErrorCode target against the code of e
func (e *BaseError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// WithCause sets the cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext attaches a context value shown in error reports
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.context == nil {
		e.context = make(map[string]interface{})
	}
	e.context[key] = value
	return e
}

// WithSuggestion appends a suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	return e.WithSuggestions(suggestion)
}

// WithSuggestions appends several suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.suggestions = append(e.suggestions, suggestions...)
	return e
}

// New creates an error with the given code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Wrapf creates an error caused by cause with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// CodeOf returns the code of the first QuickWrapError in err's chain
func CodeOf(err error) ErrorCode {
	var qwErr QuickWrapError
	if stderrors.As(err, &qwErr) {
		return qwErr.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether any error in err's chain carries code, including
// every member of an aggregated error
func HasCode(err error, code ErrorCode) bool {
	return err != nil && stderrors.Is(err, code)
}
