// Package logger builds the application's *slog.Logger on a zap core and
// offers attribute helpers so log keys stay consistent across packages.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where and how records are written.
type Config struct {
	Level  string // debug | info | warn | error
	Format string // text | json
	Name   string // logger name, stamped on every record

	// File, when set, sends records to a rotated file instead of Output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Output defaults to stdout.
	Output io.Writer
}

// Logger pairs the slog front end with the zap core that backs it.
type Logger struct {
	*slog.Logger

	core zapcore.Core
	file *lumberjack.Logger
}

// New builds a Logger. Unknown formats are an error so a misconfigured
// logger stops startup.
func New(cfg Config, attrs ...slog.Attr) (*Logger, error) {
	enc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	l := &Logger{}
	var sink zapcore.WriteSyncer
	switch {
	case cfg.File != "":
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		sink = zapcore.AddSync(l.file)
	case cfg.Output != nil:
		sink = zapcore.AddSync(cfg.Output)
	default:
		sink = zapcore.Lock(os.Stdout)
	}

	l.core = zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(zapLevel(cfg.Level)))

	var opts []zapslog.HandlerOption
	if cfg.Name != "" {
		opts = append(opts, zapslog.WithName(cfg.Name))
	}
	var h slog.Handler = zapslog.NewHandler(l.core, opts...)
	if len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}
	l.Logger = slog.New(h)
	return l, nil
}

// Sync flushes buffered records and closes the log file, if any.
func (l *Logger) Sync() error {
	err := l.core.Sync()
	if l.file != nil {
		if cerr := l.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func encoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case "text", "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	default:
		return nil, fmt.Errorf("logger: invalid format %q: must be \"json\" or \"text\"", format)
	}
}

// zapLevel accepts "warning" as well as zap's own names. Unknown names fall
// back to info.
func zapLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// ParseLevel maps a level name onto the matching slog.Level.
func ParseLevel(s string) slog.Level {
	switch zapLevel(s) {
	case zapcore.DebugLevel:
		return slog.LevelDebug
	case zapcore.WarnLevel:
		return slog.LevelWarn
	case zapcore.InfoLevel:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

// ── Attributes ───────────────────────────────────────────────────────────────

// Error records err under "error". A nil err yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }
func Form(id string) slog.Attr        { return slog.String("form", id) }
func Field(name string) slog.Attr     { return slog.String("field", name) }

// Visitor records the visitor cookie id under "visitor_id".
func Visitor(id string) slog.Attr { return slog.String("visitor_id", id) }
