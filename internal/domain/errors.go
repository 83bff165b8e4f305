package domain

import (
	"errors"
	"fmt"
)

// Pipeline failure kinds. Typed errors below wrap them so callers can match
// with errors.Is regardless of the field or message attached.
var (
	ErrIncompleteInput       = errors.New("incomplete input")
	ErrInvalidRoute          = errors.New("invalid route")
	ErrInvalidPassengerMix   = errors.New("invalid passenger mix")
	ErrDataSourceUnavailable = errors.New("data source unavailable")
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrDataSourceUnavailable)
}

// Incomplete, InvalidRoute and InvalidPassengerMix build the search
// validation failures with the field that tripped them.
func Incomplete(field, msg string) error {
	return ValidationError{Field: field, Msg: msg, Err: ErrIncompleteInput}
}

func InvalidRoute(msg string) error {
	return ValidationError{Field: "arrival_port_id", Msg: msg, Err: ErrInvalidRoute}
}

func InvalidPassengerMix(msg string) error {
	return ValidationError{Field: "passengers", Msg: msg, Err: ErrInvalidPassengerMix}
}

func Unavailable(msg string, err error) error {
	if err == nil {
		err = ErrDataSourceUnavailable
	} else {
		err = fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}
	return InternalError{Msg: msg, Err: err}
}

// Code maps an error to the machine-readable code returned to clients.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompleteInput):
		return "incomplete_input"
	case errors.Is(err, ErrInvalidRoute):
		return "invalid_route"
	case errors.Is(err, ErrInvalidPassengerMix):
		return "invalid_passenger_mix"
	case errors.Is(err, ErrDataSourceUnavailable):
		return "data_source_unavailable"
	case IsValidation(err):
		return "validation_error"
	case IsNotFound(err):
		return "not_found"
	case IsConflict(err):
		return "conflict"
	case IsUnauthorized(err):
		return "unauthorized"
	default:
		return "internal_error"
	}
}
