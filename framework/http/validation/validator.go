package validation

import (
	"strings"
	"unicode/utf8"
)

// FieldState is the outcome of validating one field value. It is rebuilt on
// every check and never stored.
type FieldState struct {
	Raw       string
	Trimmed   string
	Valid     bool
	ErrorText string
	Failure   *Failure
}

// Validate reports whether value satisfies c and, when it does not, the
// message to show.
func Validate(value string, c Constraint) (bool, string) {
	st := Check(value, c)
	return st.Valid, st.ErrorText
}

// Check validates raw against c. Only the first applicable rule category is
// evaluated; see the package documentation for the order.
func Check(raw string, c Constraint) FieldState {
	st := FieldState{Raw: raw, Trimmed: strings.TrimSpace(raw), Valid: true}

	if f := check(st.Trimmed, c); f != nil {
		st.Valid = false
		st.Failure = f
		st.ErrorText = f.Message()
	}
	return st
}

func check(value string, c Constraint) *Failure {
	empty := value == ""

	switch {
	case c.Required && empty:
		return &Failure{Code: CodeRequired}

	case c.Kind == KindEmail && !empty:
		if !IsEmail(value) {
			return &Failure{Code: CodeInvalidEmail}
		}

	case c.Kind == KindTel && !empty:
		if !IsPhone(value) {
			return &Failure{Code: CodeInvalidPhone}
		}

	case c.MinLength != nil:
		n := utf8.RuneCountInString(value)
		if n > 0 && n < *c.MinLength {
			return &Failure{Code: CodeTooShort, Bound: *c.MinLength}
		}

	case c.MaxLength != nil:
		if utf8.RuneCountInString(value) > *c.MaxLength {
			return &Failure{Code: CodeTooLong, Bound: *c.MaxLength}
		}
	}

	return nil
}
