package validation

import (
	"errors"
	"fmt"
)

// Sentinel reasons for validation failure. Callers assert on the failure
// kind with errors.Is rather than matching message text.
var (
	// ErrEmptyInput indicates an empty string where a value is required.
	ErrEmptyInput = errors.New("input must be a non-empty string")

	// ErrForbiddenCharacter indicates a denylisted character was found.
	ErrForbiddenCharacter = errors.New("forbidden character")

	// ErrTooLong indicates the input exceeds its length limit.
	ErrTooLong = errors.New("input too long")

	// ErrPatternMismatch indicates the input does not match its grammar.
	ErrPatternMismatch = errors.New("pattern mismatch")

	// ErrTooManyElements indicates a list exceeds its element limit.
	ErrTooManyElements = errors.New("too many elements")

	// ErrEmptyList indicates an empty list where at least one element
	// is required.
	ErrEmptyList = errors.New("at least one element required")
)

// Error is a validation failure for one offending input.
type Error struct {
	// Err is the sentinel reason.
	Err error

	// Field names the input category ("target", "flag", ...).
	Field string

	// Value is the offending value, clipped for safe display.
	Value string

	// Char is the offending character when Err is ErrForbiddenCharacter.
	Char rune

	// Limit is the violated bound when Err is ErrTooLong or
	// ErrTooManyElements.
	Limit int
}

// Error returns the failure message.
func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrForbiddenCharacter):
		return fmt.Sprintf("%s contains forbidden character %q", e.Field, e.Char)
	case errors.Is(e.Err, ErrTooLong):
		return fmt.Sprintf("%s too long (max %d characters)", e.Field, e.Limit)
	case errors.Is(e.Err, ErrTooManyElements):
		return fmt.Sprintf("too many %ss (max %d)", e.Field, e.Limit)
	case errors.Is(e.Err, ErrEmptyList):
		return fmt.Sprintf("at least one %s must be specified", e.Field)
	case errors.Is(e.Err, ErrEmptyInput):
		return fmt.Sprintf("%s must be a non-empty string", e.Field)
	case e.Value != "":
		return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

// Unwrap returns the sentinel reason.
func (e *Error) Unwrap() error {
	return e.Err
}

// clip bounds a value for inclusion in error messages and logs.
func clip(s string) string {
	const max = 64
	if len(s) > max {
		return s[:max] + "...(truncated)"
	}
	return s
}

func emptyErr(field string) error {
	return &Error{Err: ErrEmptyInput, Field: field}
}

func forbiddenErr(field, value string, char rune) error {
	return &Error{Err: ErrForbiddenCharacter, Field: field, Value: clip(value), Char: char}
}

func tooLongErr(field string, limit int) error {
	return &Error{Err: ErrTooLong, Field: field, Limit: limit}
}

func patternErr(field, value string) error {
	return &Error{Err: ErrPatternMismatch, Field: field, Value: clip(value)}
}

func tooManyErr(field string, limit int) error {
	return &Error{Err: ErrTooManyElements, Field: field, Limit: limit}
}

func emptyListErr(field string) error {
	return &Error{Err: ErrEmptyList, Field: field}
}
