package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the different failure classes of a download run
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeProtocol   ErrorType = "protocol"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeScrapeMiss ErrorType = "scrape_miss"
	ErrorTypeFilesystem ErrorType = "filesystem"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error represents a typed error with an optional HTTP status code
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(t ErrorType, code int, format string, args ...interface{}) *Error {
	return &Error{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}

// Wrap creates a typed error around an underlying cause
func Wrap(t ErrorType, err error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// TypeOf returns the type of the first typed error in the chain
func TypeOf(err error) ErrorType {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err carries the given type anywhere in its chain
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// IsFatal reports whether an error must abort the whole run.
// Only scrape misses are recoverable.
func IsFatal(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeScrapeMiss:
		return false
	default:
		return true
	}
}

// IsSuccessStatusCode checks whether an HTTP status code counts as success
func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
