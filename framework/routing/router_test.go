package routing_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-tourism/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New()
	r.Get("/contact", okHandler)
	r.Post("/contact", okHandler)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/contact"},
		{http.MethodPost, "/contact"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rr := do(t, r, tt.method, tt.path); rr.Code != http.StatusOK {
				t.Errorf("got %d want 200", rr.Code)
			}
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := routing.New()
	r.Post("/theme", okHandler)

	if rr := do(t, r, http.MethodGet, "/theme"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /theme: got %d want 405", rr.Code)
	}
}

// ── 404 for unregistered routes ──────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New()
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_CustomNotFound(t *testing.T) {
	r := routing.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	if rr := do(t, r, http.MethodGet, "/nowhere"); rr.Code != http.StatusTeapot {
		t.Errorf("expected custom handler, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New()
	r.Get("/api/forms/{form}/fields/{field}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(chi.URLParam(req, "form") + "." + chi.URLParam(req, "field")))
	})

	rr := do(t, r, http.MethodGet, "/api/forms/contact/fields/email")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != "contact.email" {
		t.Errorf("got body %q want %q", rr.Body.String(), "contact.email")
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New()
	r.Prefix("/api", func(api *routing.Router) {
		api.Get("/destinations", okHandler)
	})

	if rr := do(t, r, http.MethodGet, "/api/destinations"); rr.Code != http.StatusOK {
		t.Errorf("GET /api/destinations: got %d want 200", rr.Code)
	}

	// Root must 404
	if rr := do(t, r, http.MethodGet, "/destinations"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /destinations: expected 404, got %d", rr.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New()
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/booking", okHandler)
	})
	r.Get("/", okHandler)

	do(t, r, http.MethodGet, "/")
	if called {
		t.Error("group middleware leaked to outer routes")
	}
	do(t, r, http.MethodGet, "/booking")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Static ───────────────────────────────────────────────────────────────────

func TestRouter_Static(t *testing.T) {
	r := routing.New()
	r.Static("/assets", fstest.MapFS{
		"css/site.css": {Data: []byte("body{}")},
	})

	rr := do(t, r, http.MethodGet, "/assets/css/site.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if string(body) != "body{}" {
		t.Errorf("got body %q", body)
	}
}
