package domain

import (
	"errors"
	"fmt"
)

// UnauthenticatedError means no usable token was available or the server
// rejected the one we sent. Callers must route the user to login instead
// of retrying.
type UnauthenticatedError struct {
	Reason string
	Err    error
}

func (e UnauthenticatedError) Error() string {
	if e.Reason != "" {
		return "unauthenticated: " + e.Reason
	}
	return "unauthenticated"
}

func (e UnauthenticatedError) Unwrap() error { return e.Err }

// TransportError covers network failures, timeouts and 5xx responses.
// The list state is cleared when one of these lands; retry is manual.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	if e.Op == "" {
		return "transport error"
	}
	return fmt.Sprintf("%s: transport error", e.Op)
}

func (e TransportError) Unwrap() error { return e.Err }

// ValidationError carries the server's message for a rejected mutation
// (4xx). The message is surfaced verbatim to the user.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

func (e ValidationError) Unwrap() error { return e.Err }

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

// ConflictError maps 409 responses on mutations.
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

// DecodeError means the response body did not match any shape we accept.
type DecodeError struct {
	Path string
	Err  error
}

func (e DecodeError) Error() string {
	if e.Path == "" {
		return "decode error"
	}
	return fmt.Sprintf("%s: decode error", e.Path)
}

func (e DecodeError) Unwrap() error { return e.Err }

func IsUnauthenticated(err error) bool {
	var target UnauthenticatedError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsDecode(err error) bool {
	var target DecodeError
	return errors.As(err, &target)
}

// UserMessage extracts the text worth showing in a banner or inline form
// error. Transport errors get a generic line; validation and conflict
// errors surface the server's wording.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var v ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	var c ConflictError
	if errors.As(err, &c) {
		return c.Error()
	}
	var u UnauthenticatedError
	if errors.As(err, &u) {
		return "sesi berakhir, silakan login ulang"
	}
	var t TransportError
	if errors.As(err, &t) {
		return "gagal terhubung ke server, coba lagi"
	}
	return err.Error()
}
