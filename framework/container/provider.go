package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services; Boot runs after every provider has registered,
// so it is safe to resolve other bindings there.
//
//	type SiteServiceProvider struct{ container.BaseProvider }
//
//	func (p *SiteServiceProvider) Register(app *container.Container) {
//	    app.Singleton("site", func(c *container.Container) any { ... })
//	}
//
//	func (p *SiteServiceProvider) Boot(app *container.Container) {
//	    router := container.Resolve[*routing.Router](app, "router")
//	    container.Resolve[*site.Site](app, "site").Routes(router)
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)
}

// BaseProvider is an embeddable struct with a no-op Boot().
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders in order.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method. Providers added
// after Boot are booted immediately. Registering the same provider twice is
// a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	provider.Register(r.app)
	r.providers = append(r.providers, provider)

	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all providers, once.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
