package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies domain failures. Callers branch on the code; the message
// is meant for humans and is surfaced verbatim at the service boundary.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error is the canonical domain error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a domain error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with domain error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// Validation reports malformed input. field may be empty.
func Validation(field, message string) error {
	return &Error{Code: CodeValidation, Field: strings.TrimSpace(field), Message: strings.TrimSpace(message)}
}

// ValidationCause is Validation with a sentinel cause for errors.Is matching.
func ValidationCause(field, message string, cause error) error {
	return &Error{Code: CodeValidation, Field: strings.TrimSpace(field), Message: strings.TrimSpace(message), Cause: cause}
}

// NotFound reports a missing resource. identifier is optional.
func NotFound(resource, identifier string) error {
	msg := resource + " not found"
	if id := strings.TrimSpace(identifier); id != "" {
		msg = fmt.Sprintf("%s %q not found", resource, id)
	}
	return &Error{Code: CodeNotFound, Message: msg}
}

func Unauthorized(message string) error {
	return &Error{Code: CodeUnauthorized, Message: strings.TrimSpace(message)}
}

func Conflict(message string) error {
	return &Error{Code: CodeConflict, Message: strings.TrimSpace(message)}
}

// Invariant reports a business rule violated by an otherwise well-formed request.
func Invariant(message string) error {
	return &Error{Code: CodeInvariantViolation, Message: strings.TrimSpace(message)}
}

// IsCode checks whether err (or wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// MessageOf returns the human message of a domain error, or err.Error() otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var aggErr *Error
	if errors.As(err, &aggErr) && strings.TrimSpace(aggErr.Message) != "" {
		return aggErr.Message
	}
	return err.Error()
}

// IsDomain reports whether err is a business failure that callers can act on.
// Internal and retryable errors are infrastructure failures and do not count.
func IsDomain(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeNotFound, CodeUnauthorized, CodeConflict, CodeInvariantViolation:
		return true
	default:
		return false
	}
}
