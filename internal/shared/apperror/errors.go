// Package apperror carries the failure classes surfaced to API callers.
// Every domain error handed to a handler is an *Error (or wraps one) so the
// response layer can pick a status code without knowing the domain.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindUnauthorized
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindDependency:
		return "dependency_failure"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Common codes shared by several domains.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicateField   = "DUPLICATE_FIELD"
	CodeForbidden        = "FORBIDDEN"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeDatabase         = "DATABASE_ERROR"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func NotFound(code, message string, err error) *Error {
	return Wrap(KindNotFound, code, message, err)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, CodeForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, CodeUnauthorized, message)
}

// Validation builds a ValidationFailed error. details may be nil.
func Validation(code, message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Details: details}
}

func Dependency(code, message string, err error) *Error {
	return Wrap(KindDependency, code, message, err)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, CodeInternal, "Internal server error", err)
}

// FromValidation converts ozzo validation.Errors into a ValidationFailed
// error with one message per field. Other errors pass through unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		var ierr validation.InternalError
		if errors.As(err, &ierr) {
			return Internal(err)
		}
		return Validation(CodeValidationFailed, err.Error(), nil)
	}

	details := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			details[field] = ferr.Error()
		}
	}
	return Validation(CodeValidationFailed, "Validation failed", details)
}

// KindOf reports the kind of err, KindInternal when it carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
