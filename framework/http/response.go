package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-tourism/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// ValidationError sends 422 with the standard Laravel error bag.
//
//	res.ValidationError(result.Errors)
func (res *Response) ValidationError(errors *validation.Errors) {
	if errors == nil {
		errors = &validation.Errors{}
	}
	res.JSON(http.StatusUnprocessableEntity, errors)
}

// ── Cookies & redirects ──────────────────────────────────────────────────────

// SetCookie adds a Set-Cookie header.
func (res *Response) SetCookie(c *http.Cookie) {
	http.SetCookie(res.w, c)
}

// RedirectTo performs a 303 redirect, the right code after a POST.
func (res *Response) RedirectTo(url string) {
	res.w.Header().Set("Location", url)
	res.w.WriteHeader(http.StatusSeeOther)
}

// RedirectBack redirects to the Referer header (or fallback URL).
func (res *Response) RedirectBack(r *http.Request, fallback string) {
	ref := r.Referer()
	if ref == "" {
		ref = fallback
	}
	res.RedirectTo(ref)
}

// ── Views ────────────────────────────────────────────────────────────────────

// View renders name inside layout with status. Render failures become a
// plain 500 since nothing has been written yet.
//
//	res.View(engine, http.StatusOK, "layout", "contact", data)
func (res *Response) View(engine *ViewEngine, status int, layout, name string, data any) {
	body, err := engine.Render(layout, name, data)
	if err != nil {
		http.Error(res.w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	res.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.w.WriteHeader(status)
	_, _ = res.w.Write(body)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
