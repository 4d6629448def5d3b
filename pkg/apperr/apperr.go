// Package apperr defines the errors shared by the services and their HTTP status mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// Violation is one failed constraint on one field.
type Violation struct {
	Field string
	Rule  string
	Param string
}

func (v Violation) String() string {
	switch v.Rule {
	case "required":
		return fmt.Sprintf("%s is required", v.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", v.Field, strings.ReplaceAll(v.Param, " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", v.Field, v.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", v.Field, v.Param)
	default:
		if v.Param != "" {
			return fmt.Sprintf("%s failed %s=%s", v.Field, v.Rule, v.Param)
		}
		return fmt.Sprintf("%s failed %s", v.Field, v.Rule)
	}
}

type ValidationError struct {
	Entity     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, "; "))
}

func Invalid(entity string, violations ...Violation) *ValidationError {
	return &ValidationError{Entity: entity, Violations: violations}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// StoreUnavailableError wraps a connectivity or query failure of the backing store.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func Unavailable(op string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Op: op, Err: err}
}

// HTTPStatus maps an error from any layer to the status code the API answers with.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
