package forms

import "errors"

var (
	ErrUnknownForm       = errors.New("forms: unknown form")
	ErrUnknownField      = errors.New("forms: unknown field")
	ErrInvalidDefinition = errors.New("forms: invalid definition")
)
