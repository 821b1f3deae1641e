package site

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed destinations.yaml
var defaultCatalog string

// AllCategories is the filter value that matches every destination.
const AllCategories = "all"

// ErrInvalidCatalog reports a catalog document that cannot be served.
var ErrInvalidCatalog = errors.New("site: invalid catalog")

// Destination is one card on the destinations page.
type Destination struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
	// Text is the plain card text searched by the search box.
	Text string `json:"text"`
	// Body is sanitised HTML shown under the card text.
	Body template.HTML `json:"body,omitempty"`
}

type catalogDoc struct {
	Destinations []struct {
		Slug     string `yaml:"slug"`
		Title    string `yaml:"title"`
		Category string `yaml:"category"`
		Image    string `yaml:"image"`
		Text     string `yaml:"text"`
		Body     string `yaml:"body"`
	} `yaml:"destinations"`
}

// Catalog is an immutable list of destinations.
type Catalog struct {
	items      []Destination
	categories []string
}

var (
	policyOnce  sync.Once
	strictHTML  *bluemonday.Policy
	contentHTML *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		strictHTML = bluemonday.StrictPolicy()
		contentHTML = bluemonday.UGCPolicy()
	})
	return strictHTML, contentHTML
}

// DefaultCatalog loads the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(strings.NewReader(defaultCatalog))
}

// LoadCatalogFile loads a catalog from path inside fsys.
func LoadCatalogFile(fsys fs.FS, path string) (*Catalog, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("site: open catalog %s: %w", path, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog parses a YAML catalog. Titles and card text are reduced to
// plain text, bodies keep a safe subset of HTML.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("site: decode catalog: %w", err)
	}

	strict, content := policies()
	c := &Catalog{}
	seen := make(map[string]bool, len(doc.Destinations))
	for _, d := range doc.Destinations {
		dest := Destination{
			Slug:     strings.TrimSpace(d.Slug),
			Title:    plainText(strict, d.Title),
			Category: strings.TrimSpace(d.Category),
			Image:    strings.TrimSpace(d.Image),
			Text:     plainText(strict, d.Text),
			Body:     template.HTML(strings.TrimSpace(content.Sanitize(d.Body))),
		}
		switch {
		case dest.Slug == "":
			return nil, fmt.Errorf("%w: destination without slug", ErrInvalidCatalog)
		case seen[dest.Slug]:
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidCatalog, dest.Slug)
		case dest.Category == "" || dest.Category == AllCategories:
			return nil, fmt.Errorf("%w: %s: bad category %q", ErrInvalidCatalog, dest.Slug, dest.Category)
		}
		seen[dest.Slug] = true

		c.items = append(c.items, dest)
		if !slices.Contains(c.categories, dest.Category) {
			c.categories = append(c.categories, dest.Category)
		}
	}
	return c, nil
}

// plainText strips every tag. The policy escapes what it keeps, so the
// result is unescaped again and left for the template to escape once.
func plainText(p *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}

// All returns every destination in catalog order.
func (c *Catalog) All() []Destination {
	return slices.Clone(c.items)
}

// Categories lists categories in order of first appearance.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

// Search returns the destinations whose title or text contains query,
// ignoring case, restricted to category. An empty query matches everything,
// as does an empty category or AllCategories.
func (c *Catalog) Search(query, category string) []Destination {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Destination, 0, len(c.items))
	for _, d := range c.items {
		if category != "" && category != AllCategories && d.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(d.Title), q) &&
			!strings.Contains(strings.ToLower(d.Text), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}
