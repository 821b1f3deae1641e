package forms

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-tourism/framework/http/validation"
)

//go:embed definitions.yaml
var defaultDefinitions string

// ── YAML documents ───────────────────────────────────────────────────────────

type document struct {
	Forms []formDef `yaml:"forms"`
}

type formDef struct {
	ID      string     `yaml:"id"`
	Slug    string     `yaml:"slug"`
	Title   string     `yaml:"title"`
	Submit  string     `yaml:"submit"`
	Success string     `yaml:"success"`
	Fields  []fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Type        string   `yaml:"type"`
	Placeholder string   `yaml:"placeholder"`
	Options     []string `yaml:"options"`
	Rules       string   `yaml:"rules"`
}

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry holds parsed form definitions. Get hands out fresh copies so a
// registry can be shared by every visitor.
type Registry struct {
	order []string
	forms map[string]*Form
	slugs map[string]string
}

// DefaultRegistry loads the definitions embedded in the binary.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(strings.NewReader(defaultDefinitions))
}

// LoadRegistryFile loads definitions from path inside fsys.
func LoadRegistryFile(fsys fs.FS, path string) (*Registry, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("forms: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadRegistry(f)
}

// LoadRegistry parses a YAML document of form definitions.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("forms: decode definitions: %w", err)
	}

	reg := &Registry{
		forms: make(map[string]*Form, len(doc.Forms)),
		slugs: make(map[string]string, len(doc.Forms)),
	}
	for _, def := range doc.Forms {
		form, err := def.build()
		if err != nil {
			return nil, err
		}
		if _, dup := reg.forms[form.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate form id %q", ErrInvalidDefinition, form.ID)
		}
		if form.Slug != "" {
			if _, dup := reg.slugs[form.Slug]; dup {
				return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidDefinition, form.Slug)
			}
			reg.slugs[form.Slug] = form.ID
		}
		reg.forms[form.ID] = form
		reg.order = append(reg.order, form.ID)
	}
	return reg, nil
}

// Get returns a fresh copy of the form called id.
func (r *Registry) Get(id string) (*Form, error) {
	form, ok := r.forms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, id)
	}
	return form.Clone(), nil
}

// BySlug returns the id of the form published under slug.
func (r *Registry) BySlug(slug string) (string, bool) {
	id, ok := r.slugs[slug]
	return id, ok
}

// IDs lists form ids in declaration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// ── building ─────────────────────────────────────────────────────────────────

func (def formDef) build() (*Form, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w: form without id", ErrInvalidDefinition)
	}

	form := &Form{
		ID:             def.ID,
		Slug:           def.Slug,
		Title:          def.Title,
		SubmitLabel:    def.Submit,
		SuccessMessage: def.Success,
	}
	if form.SubmitLabel == "" {
		form.SubmitLabel = "Submit"
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, fd := range def.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("%w: form %s: field without name", ErrInvalidDefinition, def.ID)
		}
		if seen[fd.Name] {
			return nil, fmt.Errorf("%w: form %s: duplicate field %q", ErrInvalidDefinition, def.ID, fd.Name)
		}
		seen[fd.Name] = true

		c, err := validation.ParseRules(fd.Rules, validation.KindOf(fd.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: form %s field %s: %w", ErrInvalidDefinition, def.ID, fd.Name, err)
		}
		if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
			return nil, fmt.Errorf("%w: form %s field %s: min %d exceeds max %d",
				ErrInvalidDefinition, def.ID, fd.Name, *c.MinLength, *c.MaxLength)
		}

		label := fd.Label
		if label == "" {
			label = fd.Name
		}
		typ := fd.Type
		if typ == "" {
			typ = "text"
		}

		form.Fields = append(form.Fields, &Field{
			Name:        fd.Name,
			Label:       label,
			Type:        typ,
			Placeholder: fd.Placeholder,
			Options:     fd.Options,
			Constraint:  c,
		})
	}
	return form, nil
}
