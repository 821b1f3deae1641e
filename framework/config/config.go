package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps failures to parse environment variables.
var ErrParsingConfig = errors.New("config: parse environment")

// Config is the central typed configuration struct.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Forms   FormsConfig
	Session SessionConfig
	Site    SiteConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"Uttarakhand Tourism"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	URL   string `env:"APP_URL" envDefault:"http://localhost"`
	Port  string `env:"APP_PORT" envDefault:"8000"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text | json
	// File, when set, replaces stdout with a size-rotated log file.
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

type FormsConfig struct {
	// SuccessHideAfter is how long the success indicator stays visible.
	SuccessHideAfter time.Duration `env:"FORMS_SUCCESS_HIDE_AFTER" envDefault:"5s"`
	// Definitions optionally replaces the embedded form definitions.
	Definitions string `env:"FORMS_DEFINITIONS"`
}

type SessionConfig struct {
	Cookie      string        `env:"SESSION_COOKIE" envDefault:"visitor"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	// MaxVisitors caps live visitors; the least recently seen is evicted.
	MaxVisitors int `env:"SESSION_MAX_VISITORS" envDefault:"10000"`
}

type SiteConfig struct {
	// Catalog optionally replaces the embedded destination catalog.
	Catalog string `env:"SITE_CATALOG"`
	// ViewDir optionally replaces the embedded templates.
	ViewDir string `env:"VIEW_DIR"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if the environment cannot be parsed.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.App.Port }
