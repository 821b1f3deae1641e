package providers_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/km-arc/go-tourism/framework/config"
	"github.com/km-arc/go-tourism/framework/container"
	gohttp "github.com/km-arc/go-tourism/framework/http"
	"github.com/km-arc/go-tourism/framework/logger"
	"github.com/km-arc/go-tourism/framework/providers"
	"github.com/km-arc/go-tourism/framework/routing"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Test"
	cfg.Log.Level = "debug"
	cfg.Log.Format = "text"
	return cfg
}

func boot(t *testing.T, cfg *config.Config, extra ...container.ServiceProvider) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.ConfigServiceProvider{Config: cfg})
	reg.Register(&providers.LogServiceProvider{})
	reg.Register(&providers.RoutingServiceProvider{})
	for _, p := range extra {
		reg.Register(p)
	}
	reg.Boot()
	return c
}

func TestConfigServiceProvider_Instance(t *testing.T) {
	cfg := testConfig()
	c := boot(t, cfg)

	if got := container.Resolve[*config.Config](c, "config"); got != cfg {
		t.Error("expected the given config to be bound")
	}
	if got := container.Resolve[*config.Config](c, "configuration"); got != cfg {
		t.Error("expected alias to resolve the same config")
	}
}

func TestConfigServiceProvider_FromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "From Env")
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}})

	cfg := container.Resolve[*config.Config](c, "config")
	if cfg.App.Name != "From Env" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "From Env")
	}
}

func TestLogServiceProvider(t *testing.T) {
	c := boot(t, testConfig())
	l := container.Resolve[*slog.Logger](c, "log")
	if !l.Handler().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected debug level from config")
	}
	if container.Resolve[*logger.Logger](c, "log.sink").Logger != l {
		t.Error("log must be the sink's slog front end")
	}
}

func TestLogServiceProvider_File(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Format = "json"
	cfg.Log.File = filepath.Join(t.TempDir(), "site.log")
	c := boot(t, cfg)

	container.Resolve[*slog.Logger](c, "log").Info("to file")
	if err := container.Resolve[*logger.Logger](c, "log.sink").Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) || !strings.Contains(string(data), `"app":"Test"`) {
		t.Errorf("log file: got %s", data)
	}
}

func TestLogServiceProvider_InvalidFormat(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Format = "xml"
	c := boot(t, cfg)

	defer func() {
		if recover() == nil {
			t.Error("expected an invalid format to panic on resolve")
		}
	}()
	container.Resolve[*slog.Logger](c, "log")
}

func TestRoutingServiceProvider(t *testing.T) {
	c := boot(t, testConfig())
	a := container.Resolve[*routing.Router](c, "router")
	b := container.Resolve[*routing.Router](c, "router")
	if a != b {
		t.Error("router must be a singleton")
	}
}

func TestViewServiceProvider_FS(t *testing.T) {
	fsys := fstest.MapFS{"hello.html": {Data: []byte(`hi {{.}}`)}}
	c := boot(t, testConfig(), &providers.ViewServiceProvider{FS: fsys})

	views := container.Resolve[*gohttp.ViewEngine](c, "view")
	got, err := views.Render("", "hello", "there")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(got) != "hi there" {
		t.Errorf("got %q", got)
	}
}

func TestViewServiceProvider_ViewDirWins(t *testing.T) {
	cfg := testConfig()
	cfg.Site.ViewDir = "testdata/views"
	c := boot(t, cfg, &providers.ViewServiceProvider{FS: fstest.MapFS{}})

	views := container.Resolve[*gohttp.ViewEngine](c, "view")
	got, err := views.Render("", "page", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(got) != "from disk\n" {
		t.Errorf("got %q", got)
	}
}
