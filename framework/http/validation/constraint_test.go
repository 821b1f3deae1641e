package validation_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-tourism/framework/http/validation"
)

func TestParseRules(t *testing.T) {
	c, err := validation.ParseRules("required|min:2|max:100", validation.KindText)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if !c.Required {
		t.Error("Required: want true")
	}
	if c.MinLength == nil || *c.MinLength != 2 {
		t.Errorf("MinLength: got %v want 2", c.MinLength)
	}
	if c.MaxLength == nil || *c.MaxLength != 100 {
		t.Errorf("MaxLength: got %v want 100", c.MaxLength)
	}
	if c.Kind != validation.KindText {
		t.Errorf("Kind: got %s want text", c.Kind)
	}
}

func TestParseRules_KindOverride(t *testing.T) {
	tests := []struct {
		rules string
		start validation.Kind
		want  validation.Kind
	}{
		{"email", validation.KindText, validation.KindEmail},
		{"required|tel", validation.KindOther, validation.KindTel},
		{"phone", validation.KindText, validation.KindTel},
		{"", validation.KindEmail, validation.KindEmail},
		{"nullable", validation.KindOther, validation.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			c, err := validation.ParseRules(tt.rules, tt.start)
			if err != nil {
				t.Fatalf("ParseRules: %v", err)
			}
			if c.Kind != tt.want {
				t.Errorf("Kind: got %s want %s", c.Kind, tt.want)
			}
		})
	}
}

func TestParseRules_Errors(t *testing.T) {
	tests := []struct {
		rules string
		want  error
	}{
		{"required|unique:users", validation.ErrUnknownRule},
		{"min:abc", validation.ErrInvalidBound},
		{"max:-1", validation.ErrInvalidBound},
		{"min", validation.ErrInvalidBound},
	}

	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			_, err := validation.ParseRules(tt.rules, validation.KindText)
			if !errors.Is(err, tt.want) {
				t.Errorf("err: got %v want %v", err, tt.want)
			}
		})
	}
}

func TestConstraint_String(t *testing.T) {
	c := validation.Constraint{Required: true, Kind: validation.KindEmail, MaxLength: validation.Len(80)}
	if got := c.String(); got != "required|email|max:80" {
		t.Errorf("String: got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]validation.Kind{
		"":         validation.KindText,
		"text":     validation.KindText,
		"EMAIL":    validation.KindEmail,
		"tel":      validation.KindTel,
		"textarea": validation.KindOther,
		"select":   validation.KindOther,
		"date":     validation.KindOther,
	}
	for in, want := range tests {
		if got := validation.KindOf(in); got != want {
			t.Errorf("KindOf(%q): got %s want %s", in, got, want)
		}
	}
}
