package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Kinds ────────────────────────────────────────────────────────────────────

// Kind is the input type of a field as far as validation is concerned.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindTel
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmail:
		return "email"
	case KindTel:
		return "tel"
	default:
		return "other"
	}
}

// KindOf maps an HTML input type onto a Kind.
// "text" and "" are text, "email" and "tel" are themselves, the rest
// (textarea, select, date, number, ...) are KindOther.
func KindOf(inputType string) Kind {
	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "", "text":
		return KindText
	case "email":
		return KindEmail
	case "tel":
		return KindTel
	default:
		return KindOther
	}
}

// ── Constraint ───────────────────────────────────────────────────────────────

// Constraint is the declared validation rules of one field.
// A nil MinLength or MaxLength means the bound is not declared.
type Constraint struct {
	Required  bool
	Kind      Kind
	MinLength *int
	MaxLength *int
}

// Len returns a pointer to n, for declaring length bounds inline.
//
//	validation.Constraint{MinLength: validation.Len(3)}
func Len(n int) *int { return &n }

// String renders the constraint back into rule syntax.
func (c Constraint) String() string {
	var parts []string
	if c.Required {
		parts = append(parts, "required")
	}
	switch c.Kind {
	case KindEmail:
		parts = append(parts, "email")
	case KindTel:
		parts = append(parts, "tel")
	}
	if c.MinLength != nil {
		parts = append(parts, "min:"+strconv.Itoa(*c.MinLength))
	}
	if c.MaxLength != nil {
		parts = append(parts, "max:"+strconv.Itoa(*c.MaxLength))
	}
	return strings.Join(parts, "|")
}

// ParseRules builds a Constraint from a pipe-separated rule string such as
// "required|email" or "min:2|max:100". kind is the starting kind, normally
// derived from the field's input type; an email or tel rule overrides it.
func ParseRules(rules string, kind Kind) (Constraint, error) {
	c := Constraint{Kind: kind}

	for _, rule := range strings.Split(rules, "|") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		// min:3 → name=min, param=3
		name, param, _ := strings.Cut(rule, ":")

		switch name {
		case "required":
			c.Required = true
		case "nullable", "string":
		case "email":
			c.Kind = KindEmail
		case "tel", "phone":
			c.Kind = KindTel
		case "min", "minlength":
			n, err := parseBound(rule, param)
			if err != nil {
				return Constraint{}, err
			}
			c.MinLength = &n
		case "max", "maxlength":
			n, err := parseBound(rule, param)
			if err != nil {
				return Constraint{}, err
			}
			c.MaxLength = &n
		default:
			return Constraint{}, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
		}
	}

	return c, nil
}

func parseBound(rule, param string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(param))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBound, rule)
	}
	return n, nil
}
