// Package apperr defines the typed failures surfaced to callers of the game service.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure code.
type Code string

const (
	// CodeInternal covers persistence failures and anything unclassified.
	CodeInternal Code = "INTERNAL"

	// CodeSourceUnavailable means the clue pool could not be fetched or had an unusable shape.
	CodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"

	// CodeActiveGameConflict means the user already holds a non-terminal game.
	CodeActiveGameConflict Code = "ACTIVE_GAME_CONFLICT"

	// Board invariant failures.
	CodeInsufficientCategories   Code = "INSUFFICIENT_CATEGORIES"
	CodeMissingValueClue         Code = "MISSING_VALUE_CLUE"
	CodeDailyDoubleCountMismatch Code = "DAILY_DOUBLE_COUNT_MISMATCH"

	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Coder is implemented by any error that knows its failure code.
type Coder interface {
	Code() Code
}

// Error is a coded failure with a caller-safe message and an optional cause.
type Error struct {
	code    Code
	Message string
	Err     error
}

// New builds a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a coded error around a cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Code returns the failure code.
func (e *Error) Code() Code { return e.code }

// CodeOf returns the code of the first Coder in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps a failure code to the status returned by the HTTP layer.
func HTTPStatus(code Code) int {
	switch code {
	case CodeSourceUnavailable:
		return http.StatusServiceUnavailable
	case CodeActiveGameConflict:
		return http.StatusConflict
	case CodeInsufficientCategories, CodeMissingValueClue, CodeDailyDoubleCountMismatch:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to a caller.
// Internal failures never expose their cause.
func PublicMessage(err error) string {
	code := CodeOf(err)
	if code == CodeInternal {
		return "internal error, please try again later"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
