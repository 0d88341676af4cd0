package httperr

import (
	"errors"
	"net/http"
)

type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string { return e.msg }

func NewBadRequest(msg string) error { return &BadRequestError{msg: msg} }

func IsBadRequest(err error) bool {
	_, ok := errors.AsType[*BadRequestError](err)
	return ok
}

type UnauthorizedError struct {
	msg string
}

func (e *UnauthorizedError) Error() string { return e.msg }

func NewUnauthorized(msg string) error { return &UnauthorizedError{msg: msg} }

func IsUnauthorized(err error) bool {
	_, ok := errors.AsType[*UnauthorizedError](err)
	return ok
}

type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func NewNotFound(msg string) error { return &NotFoundError{msg: msg} }

func IsNotFound(err error) bool {
	_, ok := errors.AsType[*NotFoundError](err)
	return ok
}

type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

func NewConflict(msg string) error { return &ConflictError{msg: msg} }

func IsConflict(err error) bool {
	_, ok := errors.AsType[*ConflictError](err)
	return ok
}

// StatusCode maps a taxonomy error to its response status. Unknown errors are server faults.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsBadRequest(err):
		return http.StatusBadRequest
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code is the stable machine-readable code paired with StatusCode.
func Code(err error) string {
	switch StatusCode(err) {
	case http.StatusOK:
		return ""
	case http.StatusBadRequest:
		return "invalid_input"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}
