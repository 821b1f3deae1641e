// Package container provides the service container and service providers the
// tourism site is assembled from.
//
// # Overview
//
// The container owns the long-lived services: configuration, logger, router,
// view engine, form registry and the site itself. It mirrors the public API of
// Laravel's Illuminate\Container\Container as far as the application needs it.
// Because Go has no runtime constructor reflection, auto-wiring is replaced by
// explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.FormsServiceProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("clock", func(c *container.Container) any { return time.Now })
//
//	// Singleton — created once, reused
//	c.Singleton("forms", func(c *container.Container) any {
//	    reg, err := forms.DefaultRegistry()
//	    if err != nil {
//	        panic(err)
//	    }
//	    return reg
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw := c.Make("forms")
//	reg := container.Resolve[*forms.Registry](c, "forms")
//
// # Service Providers
//
//	type SiteServiceProvider struct{ container.BaseProvider }
//
//	func (p *SiteServiceProvider) Register(app *container.Container) { ... }
//	func (p *SiteServiceProvider) Boot(app *container.Container)     { ... }
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&SiteServiceProvider{})
//	registry.Boot()
package container
