package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
)

// ViewEngine parses templates from a file system and caches the result per
// layout/page pair.
type ViewEngine struct {
	fsys fs.FS
	ext  string

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewViewEngine creates a ViewEngine over fsys.
// ext is the file extension (e.g. ".html").
//
//	engine := gohttp.NewViewEngine(os.DirFS("./views"), ".html")
func NewViewEngine(fsys fs.FS, ext string) *ViewEngine {
	return &ViewEngine{
		fsys:  fsys,
		ext:   ext,
		cache: make(map[string]*template.Template),
	}
}

// Render executes page name, wrapped in layout unless layout is empty. The
// layout pulls the page in with {{template "content" .}}.
func (ve *ViewEngine) Render(layout, name string, data any) ([]byte, error) {
	tmpl, err := ve.lookup(layout, name)
	if err != nil {
		return nil, err
	}

	entry := path.Base(name + ve.ext)
	if layout != "" {
		entry = path.Base(layout + ve.ext)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (ve *ViewEngine) lookup(layout, name string) (*template.Template, error) {
	key := layout + "|" + name

	ve.mu.RLock()
	tmpl, ok := ve.cache[key]
	ve.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	ve.mu.Lock()
	defer ve.mu.Unlock()

	files := []string{name + ve.ext}
	root := path.Base(name + ve.ext)
	if layout != "" {
		files = []string{layout + ve.ext, name + ve.ext}
		root = path.Base(layout + ve.ext)
	}

	tmpl, err := template.New(root).ParseFS(ve.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	ve.cache[key] = tmpl
	return tmpl, nil
}
