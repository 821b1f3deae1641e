package providers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-tourism/app/providers"
	"github.com/km-arc/go-tourism/forms"
	"github.com/km-arc/go-tourism/framework/app"
	"github.com/km-arc/go-tourism/framework/config"
	"github.com/km-arc/go-tourism/framework/container"
	fwproviders "github.com/km-arc/go-tourism/framework/providers"
	"github.com/km-arc/go-tourism/site"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Uttarakhand Tourism"
	cfg.App.Env = "testing"
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Forms.SuccessHideAfter = 5 * time.Second
	cfg.Session.Cookie = "visitor"
	cfg.Session.IdleTimeout = time.Minute
	return cfg
}

func bootApp(t *testing.T, cfg *config.Config) *app.Application {
	t.Helper()
	a := app.NewWithConfig(cfg)
	a.Register(&fwproviders.ViewServiceProvider{FS: site.Views()})
	a.Register(&providers.FormsServiceProvider{})
	a.Register(&providers.SiteServiceProvider{})
	a.Boot()
	t.Cleanup(container.Resolve[*site.Sessions](a.Container, "sessions").Close)
	return a
}

func TestProviders_DefaultSite(t *testing.T) {
	a := bootApp(t, testConfig())

	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/contact", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Contact Us | Uttarakhand Tourism")
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "visitor=")
}

func TestProviders_FileOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.Forms.Definitions = "testdata/forms.yaml"
	cfg.Site.Catalog = "testdata/catalog.yaml"
	a := bootApp(t, cfg)

	registry := container.Resolve[*forms.Registry](a.Container, "forms")
	assert.Equal(t, []string{"newsletterForm"}, registry.IDs())

	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/destinations", nil))
	assert.Contains(t, rr.Body.String(), "chopta")

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader("email=bad"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please enter a valid email address")
}

func TestProviders_MissingDefinitionsPanics(t *testing.T) {
	cfg := testConfig()
	cfg.Forms.Definitions = "testdata/nope.yaml"
	assert.Panics(t, func() { bootApp(t, cfg) })
}

func TestProviders_MaxVisitorsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Session.MaxVisitors = 1
	a := bootApp(t, cfg)

	for range 3 {
		rr := httptest.NewRecorder()
		a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/contact", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, 1, container.Resolve[*site.Sessions](a.Container, "sessions").Len())
}
