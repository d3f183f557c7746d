package counter

import (
	"log/slog"

	"github.com/goliatone/go-fragments/internal/metrics"
)

// Options configures the counter component.
type Options struct {
	ReadPath      string
	IncrementPath string
	Template      string
	CounterBlock  string
	CountBlock    string
	Logger        *slog.Logger
	Recorder      metrics.Recorder
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		ReadPath:      "/counter",
		IncrementPath: "/counter/increment",
		Template:      "counter.html",
		CounterBlock:  "counter",
		CountBlock:    "count",
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
	if opts.ReadPath == "" {
		opts.ReadPath = defaults.ReadPath
	}
	if opts.IncrementPath == "" {
		opts.IncrementPath = defaults.IncrementPath
	}
	if opts.Template == "" {
		opts.Template = defaults.Template
	}
	if opts.CounterBlock == "" {
		opts.CounterBlock = defaults.CounterBlock
	}
	if opts.CountBlock == "" {
		opts.CountBlock = defaults.CountBlock
	}
	return opts
}

func WithPaths(read, increment string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ReadPath = read
		o.IncrementPath = increment
	}
}

func WithTemplate(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Template = name
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithRecorder(recorder metrics.Recorder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Recorder = recorder
	}
}
