// Package validation checks a single form field against its declared
// constraints.
//
// # Overview
//
// A field carries a Constraint: whether it is required, its input kind
// (text, email, tel or anything else) and optional minimum/maximum lengths.
// Constraints are usually declared with the same pipe-separated rule strings
// Laravel uses:
//
//	c, err := validation.ParseRules("required|min:2|max:100", validation.KindText)
//
//	ok, msg := validation.Validate("  A  ", c)
//	// ok == false, msg == "Minimum 2 characters required"
//
// # Rule order
//
// Exactly one rule category is evaluated per call. The value is trimmed
// first, then the first applicable category decides the outcome:
//
//   - required  — trimmed value is empty and the field is required
//   - email     — kind is email and the value is non-empty
//   - tel       — kind is tel and the value is non-empty
//   - min:n     — a minimum length is declared
//   - max:n     — a maximum length is declared
//
// An optional field with an empty value is therefore always valid, and a
// valid email never goes on to a length check.
//
// # Available Rules
//
//   - required  — field must be non-empty after trimming
//   - email     — sets the kind to KindEmail
//   - tel       — sets the kind to KindTel
//   - min:n     — minimum n UTF-8 characters (only checked when non-empty)
//   - max:n     — maximum n UTF-8 characters
//   - nullable  — accepted for compatibility, no effect
//
// # Failures
//
// Failures are data, not errors to propagate: Check returns a FieldState
// whose Failure names one of five kinds (required, invalid email, invalid
// phone, too short, too long). Failure implements error so callers can still
// match it with errors.Is against ErrRequired and friends.
//
// # Error Bag
//
// Errors collects per-field messages and serialises to the same JSON shape as
// Laravel's validation errors:
//
//	{
//	  "errors": {
//	    "email": ["Please enter a valid email address"]
//	  }
//	}
package validation
