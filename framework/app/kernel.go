package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/km-arc/go-tourism/framework/config"
	"github.com/km-arc/go-tourism/framework/container"
	gohttp "github.com/km-arc/go-tourism/framework/http"
	"github.com/km-arc/go-tourism/framework/logger"
	"github.com/km-arc/go-tourism/framework/providers"
	"github.com/km-arc/go-tourism/framework/routing"
)

var (
	// ErrStart is returned when the HTTP server cannot start.
	ErrStart = errors.New("app: server failed to start")
	// ErrShutdown is returned when the HTTP server does not stop cleanly.
	ErrShutdown = errors.New("app: server shutdown failed")
)

// ShutdownTimeout bounds how long in-flight requests get on shutdown.
const ShutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly —
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	workers []func(ctx context.Context)
}

// New creates the application and registers the framework core providers.
func New(envFiles ...string) *Application {
	return newApplication(&providers.ConfigServiceProvider{EnvFiles: envFiles})
}

// NewWithConfig is New for an already loaded configuration.
func NewWithConfig(cfg *config.Config) *Application {
	return newApplication(&providers.ConfigServiceProvider{Config: cfg})
}

func newApplication(cfgProvider *providers.ConfigServiceProvider) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", app)

	// Register framework core providers (same order as Laravel)
	registry.Register(cfgProvider)
	registry.Register(&providers.LogServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Background adds a worker started by Run. Workers get the server's context
// and Run waits for them to return after shutdown.
func (a *Application) Background(fn func(ctx context.Context)) {
	a.workers = append(a.workers, fn)
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves *slog.Logger from the container.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Views resolves *gohttp.ViewEngine from the container.
func (a *Application) Views() *gohttp.ViewEngine {
	return container.Resolve[*gohttp.ViewEngine](a.Container, "view")
}

// Run boots the application (if needed) and serves HTTP alongside the
// background workers until ctx is cancelled, SIGINT/SIGTERM arrives or the
// listener fails. Workers share the group's context and Run waits for all of
// them before flushing the log.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	log := a.Logger().With(logger.Component("http"))
	defer func() {
		// Sync on a terminal stdout reports EINVAL; nothing useful to do with it.
		_ = container.Resolve[*logger.Logger](a.Container, "log.sink").Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", slog.String("addr", srv.Addr), slog.String("url", cfg.App.URL))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Join(ErrShutdown, err)
		}
		return nil
	})
	for _, fn := range a.workers {
		g.Go(func() error {
			fn(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped", logger.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
