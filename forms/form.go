package forms

import (
	"github.com/km-arc/go-tourism/framework/http/validation"
)

// Field is one labelled input control of a form.
type Field struct {
	Name        string
	Label       string
	Type        string // HTML input type: text, email, tel, textarea, select, date, ...
	Placeholder string
	Options     []string
	Constraint  validation.Constraint

	Value string

	// Presentation state, rewritten on every validation of the field.
	Invalid bool
	Error   string
}

func (f *Field) clearError() {
	f.Invalid = false
	f.Error = ""
}

func (f *Field) showError(msg string) {
	f.Invalid = true
	f.Error = msg
}

// Form is an ordered set of fields plus the form-level success indicator.
type Form struct {
	ID             string
	Slug           string
	Title          string
	SubmitLabel    string
	SuccessMessage string
	Fields         []*Field

	Success bool
}

// Field returns the field called name.
func (f *Form) Field(name string) (*Field, bool) {
	for _, fd := range f.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return nil, false
}

// Values returns the current value of every field.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		out[fd.Name] = fd.Value
	}
	return out
}

// Errors collects the messages currently shown next to invalid fields.
func (f *Form) Errors() *validation.Errors {
	errs := &validation.Errors{}
	for _, fd := range f.Fields {
		if fd.Invalid {
			errs.Add(fd.Name, fd.Error)
		}
	}
	return errs
}

// Reset clears every value, like a browser form reset. Presentation state is
// left alone.
func (f *Form) Reset() {
	for _, fd := range f.Fields {
		fd.Value = ""
	}
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	cp := *f
	cp.Fields = make([]*Field, len(f.Fields))
	for i, fd := range f.Fields {
		fc := *fd
		fc.Options = append([]string(nil), fd.Options...)
		cp.Fields[i] = &fc
	}
	return &cp
}
