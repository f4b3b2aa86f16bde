// Package logger provides the process-wide zerolog logger and run-scoped
// child loggers
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/WSDOT/PGSuper-sub013/internal/config"
)

// Options configures the logger
type Options struct {
	Level      string
	Format     string // console or json
	Component  string
	Writer     io.Writer
	WithCaller bool
}

// FromEnv builds Options from the LOG_ environment variables
func FromEnv() Options {
	rc := config.New().Prefix("LOG_")
	return Options{
		Level:      strings.ToLower(rc.Get("LEVEL", "info")),
		Format:     strings.ToLower(rc.Get("FORMAT", "console")),
		Component:  rc.Get("COMPONENT", ""),
		WithCaller: rc.GetBool("CALLER", false),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Get returns the root logger, configuring it from the environment on
// first use
func Get() *zerolog.Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger. Only the first call
// has an effect.
func Init(opt Options) {
	once.Do(func() {
		root.Store(newLogger(opt))
		inited.Store(true)
	})
}

func newLogger(opt Options) *zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}
	log := ctx.Logger()
	if opt.WithCaller {
		log = log.With().Caller().Logger()
	}
	return &log
}

// parseLevel supports string-only levels
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{ name string }

var (
	keyRunID   = ctxKey{"run_id"}
	keySegment = ctxKey{"segment"}
)

// WithRun annotates ctx with the design run and the segment being designed
func WithRun(ctx context.Context, runID, segment string) context.Context {
	if runID != "" {
		ctx = context.WithValue(ctx, keyRunID, runID)
	}
	if segment != "" {
		ctx = context.WithValue(ctx, keySegment, segment)
	}
	return ctx
}

// C returns a child logger enriched from ctx
func C(ctx context.Context) zerolog.Logger {
	b := Get().With()
	if s, ok := ctx.Value(keyRunID).(string); ok {
		b = b.Str("run_id", s)
	}
	if s, ok := ctx.Value(keySegment).(string); ok {
		b = b.Str("segment", s)
	}
	return b.Logger()
}

// Named returns a child logger with a component field
func Named(component string) zerolog.Logger {
	if component == "" {
		return *Get()
	}
	return Get().With().Str("component", component).Logger()
}
