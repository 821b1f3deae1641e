package providers

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/km-arc/go-tourism/framework/config"
	"github.com/km-arc/go-tourism/framework/container"
	gohttp "github.com/km-arc/go-tourism/framework/http"
	"github.com/km-arc/go-tourism/framework/logger"
	"github.com/km-arc/go-tourism/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	// Config, when set, is bound as-is instead of reading the environment.
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance("config", p.Config)
	} else {
		envFiles := p.EnvFiles
		app.Singleton("config", func(c *container.Container) any {
			return config.MustLoad(envFiles...)
		})
	}
	app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider builds the application logger from the "log" section of
// the configuration. An invalid LOG_FORMAT stops startup.
//
// Bound abstracts:
//   - "log"       → *slog.Logger
//   - "log.sink"  → *logger.Logger (Sync on shutdown)
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("log.sink", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		l, err := logger.New(logger.Config{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		}, slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env))
		if err != nil {
			panic(err)
		}
		return l
	})
	app.Singleton("log", func(c *container.Container) any {
		return container.Resolve[*logger.Logger](c, "log.sink").Logger
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New()
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine.
//
// Bound abstracts:
//   - "view"   → *gohttp.ViewEngine
//
// Templates come from VIEW_DIR when it is set, otherwise from FS, otherwise
// from Dir (default "./views").
//
// Laravel equivalent:
//
//	// Illuminate\View\ViewServiceProvider
//	$app->singleton('view', fn($app) => new Factory(...));
type ViewServiceProvider struct {
	container.BaseProvider
	FS  fs.FS  // embedded templates
	Dir string // template directory, default: "./views"
	Ext string // file extension,    default: ".html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	ext := p.Ext
	if ext == "" {
		ext = ".html"
	}

	app.Singleton("view", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return gohttp.NewViewEngine(p.templates(cfg), ext)
	})
}

func (p *ViewServiceProvider) templates(cfg *config.Config) fs.FS {
	switch {
	case cfg.Site.ViewDir != "":
		return os.DirFS(cfg.Site.ViewDir)
	case p.FS != nil:
		return p.FS
	case p.Dir != "":
		return os.DirFS(p.Dir)
	default:
		return os.DirFS("./views")
	}
}
