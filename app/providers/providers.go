// Package providers wires the tourism site into the application container,
// the way app/Providers does in a Laravel project.
package providers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/km-arc/go-tourism/forms"
	"github.com/km-arc/go-tourism/framework/config"
	"github.com/km-arc/go-tourism/framework/container"
	gohttp "github.com/km-arc/go-tourism/framework/http"
	"github.com/km-arc/go-tourism/framework/routing"
	"github.com/km-arc/go-tourism/site"
)

// ── FormsServiceProvider ──────────────────────────────────────────────────────

// FormsServiceProvider binds the form definitions and the per-visitor
// validator store.
//
// Bound abstracts:
//   - "forms"     → *forms.Registry  (FORMS_DEFINITIONS or the embedded set)
//   - "sessions"  → *site.Sessions
type FormsServiceProvider struct {
	container.BaseProvider
	// Options are added to every FormValidator, after the configured ones.
	Options []forms.Option
}

func (p *FormsServiceProvider) Register(app *container.Container) {
	app.Singleton("forms", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		if cfg.Forms.Definitions == "" {
			return must(forms.DefaultRegistry())
		}
		dir, name := filepath.Split(cfg.Forms.Definitions)
		return must(forms.LoadRegistryFile(os.DirFS(dirOrDot(dir)), name))
	})

	app.Singleton("sessions", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		log := container.Resolve[*slog.Logger](c, "log")

		formOpts := append([]forms.Option{
			forms.WithHideAfter(cfg.Forms.SuccessHideAfter),
		}, p.Options...)

		return site.NewSessions(
			container.Resolve[*forms.Registry](c, "forms"),
			site.WithCookieName(cfg.Session.Cookie),
			site.WithIdleTimeout(cfg.Session.IdleTimeout),
			site.WithMaxVisitors(cfg.Session.MaxVisitors),
			site.WithSessionLogger(log),
			site.WithFormOptions(formOpts...),
		)
	})
}

// ── SiteServiceProvider ───────────────────────────────────────────────────────

// SiteServiceProvider binds the destination catalog and the site, and
// registers the site's routes on boot.
//
// Bound abstracts:
//   - "catalog"  → *site.Catalog  (SITE_CATALOG or the embedded catalog)
//   - "site"     → *site.Site
type SiteServiceProvider struct {
	container.BaseProvider
}

func (p *SiteServiceProvider) Register(app *container.Container) {
	app.Singleton("catalog", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		if cfg.Site.Catalog == "" {
			return must(site.DefaultCatalog())
		}
		dir, name := filepath.Split(cfg.Site.Catalog)
		return must(site.LoadCatalogFile(os.DirFS(dirOrDot(dir)), name))
	})

	app.Singleton("site", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return site.New(site.Deps{
			Name:     cfg.App.Name,
			Views:    container.Resolve[*gohttp.ViewEngine](c, "view"),
			Forms:    container.Resolve[*forms.Registry](c, "forms"),
			Sessions: container.Resolve[*site.Sessions](c, "sessions"),
			Catalog:  container.Resolve[*site.Catalog](c, "catalog"),
			Logger:   container.Resolve[*slog.Logger](c, "log"),
		})
	})
}

func (p *SiteServiceProvider) Boot(app *container.Container) {
	router := container.Resolve[*routing.Router](app, "router")
	container.Resolve[*site.Site](app, "site").Routes(router)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// must panics on load errors; factories cannot return them.
func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("boot: %v", err))
	}
	return v
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
