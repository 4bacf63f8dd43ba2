package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Code is the machine-readable failure class of an Error.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotOpen      Code = "not_open"
	CodeNotFound     Code = "not_found"
	CodeNotDuplicate Code = "not_duplicate"
	CodeInternal     Code = "internal"
)

// Error is the domain error returned by every service in this package.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string // field / record the failure is tied to
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches by code, so errors.Is(err, ErrNotFound) works for any not-found.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotOpen      = &Error{Code: CodeNotOpen, Message: "registration is closed"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrNotDuplicate = &Error{Code: CodeNotDuplicate, Message: "registration is not a duplicate"}
)

func validationError(field, msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Metadata: map[string]string{"field": field}}
}

func notFound(kind string, key any) *Error {
	return &Error{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s not found", kind),
		Metadata: map[string]string{"record": fmt.Sprint(key)},
	}
}

// CodeOf returns the Code of err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// storeErr translates gorm's not-found into the domain error and wraps the rest.
func storeErr(err error, kind string, key any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, key)
	}
	return fmt.Errorf("%s %v: %w", kind, key, err)
}
