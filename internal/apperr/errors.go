package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness conflict.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Geometry error kinds.
var (
	ErrInvalidType          = errors.New("invalid geometry type")
	ErrMalformedRing        = errors.New("malformed ring")
	ErrOutOfRangeCoordinate = errors.New("coordinate out of range")
)

// ErrInvalidQuery is matched by every *QueryError.
var ErrInvalidQuery = errors.New("invalid query")

// Uniqueness violations. Both match ErrConflict.
var (
	ErrDuplicateID       = fmt.Errorf("%w: duplicate id", ErrConflict)
	ErrDuplicateDocument = fmt.Errorf("%w: duplicate document", ErrConflict)
)

// GeometryError reports a structurally invalid geometry in a named field.
type GeometryError struct {
	Field  string
	Kind   error
	Detail string
}

// Geometry builds a GeometryError.
func Geometry(field string, kind error, format string, args ...any) *GeometryError {
	return &GeometryError{Field: field, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *GeometryError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Kind, e.Detail)
}

func (e *GeometryError) Unwrap() error { return e.Kind }

// QueryError reports malformed query coordinates.
type QueryError struct {
	Detail string
}

func (e *QueryError) Error() string {
	return "invalid query: " + e.Detail
}

// Is makes every QueryError match ErrInvalidQuery.
func (e *QueryError) Is(target error) bool { return target == ErrInvalidQuery }

// FieldError marks a missing or invalid scalar field. Matches ErrInvalid.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string { return "invalid " + e.Field }

func (e *FieldError) Unwrap() error { return ErrInvalid }
