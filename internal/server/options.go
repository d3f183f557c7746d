// Package server assembles the HTTP surface: the gorilla/mux router with the
// page, counter and contact routes, static assets, health and metrics
// endpoints, the request middleware chain and the listener lifecycle.
package server

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-fragments/internal/metrics"
	contactstore "github.com/goliatone/go-fragments/pkg/contacts"
	counterstore "github.com/goliatone/go-fragments/pkg/counter"
)

// NotFoundBody is the fixed body returned for every unmatched request.
const NotFoundBody = "This site does not exist :("

// Options configures a Server.
type Options struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	ShutdownGrace time.Duration

	IndexTemplate string
	IndexBlock    string

	Counter  *counterstore.Store
	Contacts *contactstore.Store

	// StaticDir and Stylesheet point at files on disk; empty values serve
	// the embedded copies.
	StaticDir  string
	Stylesheet string

	// Metrics is nil when the metrics endpoint is disabled.
	Metrics     *metrics.PrometheusRecorder
	MetricsPath string

	Logger *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Addr:          "0.0.0.0:1337",
		ReadTimeout:   10 * time.Second,
		WriteTimeout:  10 * time.Second,
		ShutdownGrace: 5 * time.Second,
		IndexTemplate: "base.html",
		IndexBlock:    "index",
		MetricsPath:   "/metrics",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	defaults := DefaultOptions()
	if opts.Addr == "" {
		opts.Addr = defaults.Addr
	}
	if opts.IndexTemplate == "" {
		opts.IndexTemplate = defaults.IndexTemplate
	}
	if opts.IndexBlock == "" {
		opts.IndexBlock = defaults.IndexBlock
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = defaults.MetricsPath
	}
	return opts
}

func WithAddr(addr string) OptionFn {
	return func(o *Options) {
		o.Addr = addr
	}
}

func WithTimeouts(read, write, shutdownGrace time.Duration) OptionFn {
	return func(o *Options) {
		if read > 0 {
			o.ReadTimeout = read
		}
		if write > 0 {
			o.WriteTimeout = write
		}
		if shutdownGrace > 0 {
			o.ShutdownGrace = shutdownGrace
		}
	}
}

// WithStores injects the shared state. Nil stores are replaced by empty ones.
func WithStores(counter *counterstore.Store, contacts *contactstore.Store) OptionFn {
	return func(o *Options) {
		o.Counter = counter
		o.Contacts = contacts
	}
}

func WithStatic(dir, stylesheet string) OptionFn {
	return func(o *Options) {
		o.StaticDir = dir
		o.Stylesheet = stylesheet
	}
}

func WithMetrics(recorder *metrics.PrometheusRecorder, path string) OptionFn {
	return func(o *Options) {
		o.Metrics = recorder
		o.MetricsPath = path
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}
