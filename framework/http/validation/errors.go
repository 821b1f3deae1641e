package validation

import (
	"errors"
	"fmt"
)

// Sentinels matched by Failure through errors.Is.
var (
	ErrRequired     = errors.New("field is required")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrTooShort     = errors.New("value too short")
	ErrTooLong      = errors.New("value too long")
)

// Rule parsing errors.
var (
	ErrUnknownRule  = errors.New("validation: unknown rule")
	ErrInvalidBound = errors.New("validation: invalid length bound")
)

// ── Failure ──────────────────────────────────────────────────────────────────

// Code identifies one of the five failure kinds.
type Code string

const (
	CodeRequired     Code = "required"
	CodeInvalidEmail Code = "invalid_email"
	CodeInvalidPhone Code = "invalid_phone"
	CodeTooShort     Code = "too_short"
	CodeTooLong      Code = "too_long"
)

// Failure is the reason a field is invalid. Bound is the configured length
// for CodeTooShort and CodeTooLong, zero otherwise.
type Failure struct {
	Code  Code
	Bound int
}

// Message returns the human-readable text shown next to the field.
func (f *Failure) Message() string {
	switch f.Code {
	case CodeRequired:
		return "This field is required"
	case CodeInvalidEmail:
		return "Please enter a valid email address"
	case CodeInvalidPhone:
		return fmt.Sprintf("Please enter a valid phone number (%d digits)", MinPhoneDigits)
	case CodeTooShort:
		return fmt.Sprintf("Minimum %d characters required", f.Bound)
	case CodeTooLong:
		return fmt.Sprintf("Maximum %d characters allowed", f.Bound)
	}
	return "Invalid value"
}

func (f *Failure) Error() string { return f.Message() }

// Is matches the sentinel for the failure's code.
func (f *Failure) Is(target error) bool {
	switch f.Code {
	case CodeRequired:
		return target == ErrRequired
	case CodeInvalidEmail:
		return target == ErrInvalidEmail
	case CodeInvalidPhone:
		return target == ErrInvalidPhone
	case CodeTooShort:
		return target == ErrTooShort
	case CodeTooLong:
		return target == ErrTooLong
	}
	return false
}

// ── Error bag ────────────────────────────────────────────────────────────────

// Errors holds validation errors, shaped like Laravel's MessageBag.
// JSON output: {"errors": {"field": ["msg"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// Add appends msg to field's messages.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return e != nil && len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if e == nil {
		return ""
	}
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
