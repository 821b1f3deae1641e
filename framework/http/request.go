package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20 // 1 MB

// ErrEmptyBody is returned when a JSON body is required but missing.
var ErrEmptyBody = errors.New("empty request body")

// ErrNotScalar is returned by Fields for JSON values that are objects or arrays.
var ErrNotScalar = errors.New("value is not a scalar")

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// ── Body ─────────────────────────────────────────────────────────────────────

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(io.LimitReader(req.raw.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// Fields returns the submitted body as a flat name → value map, reading a
// JSON object or a form post depending on the Content-Type. Only the first
// value of repeated form keys is kept. JSON scalars are formatted as text and
// JSON null becomes "".
func (req *Request) Fields() (map[string]string, error) {
	out := make(map[string]string)
	if req.isJSONBody() {
		var raw map[string]any
		if err := req.bindJSON(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch v := v.(type) {
			case nil:
				out[k] = ""
			case string:
				out[k] = v
			case float64, bool:
				out[k] = fmt.Sprint(v)
			default:
				return nil, fmt.Errorf("field %q: %w", k, ErrNotScalar)
			}
		}
		return out, nil
	}

	values, err := req.postValues()
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

func (req *Request) postValues() (map[string][]string, error) {
	req.raw.Body = http.MaxBytesReader(nil, req.raw.Body, maxBodyBytes)
	if strings.Contains(req.contentType(), "multipart/form-data") {
		if err := req.raw.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
		return req.raw.MultipartForm.Value, nil
	}
	if err := req.raw.ParseForm(); err != nil {
		return nil, err
	}
	return req.raw.PostForm, nil
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Cookie returns the value of the named cookie, or "".
func (req *Request) Cookie(name string) string {
	c, err := req.raw.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

func (req *Request) contentType() string {
	return req.raw.Header.Get("Content-Type")
}

func (req *Request) isJSONBody() bool {
	return strings.Contains(req.contentType(), "application/json")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") || req.isJSONBody()
}
