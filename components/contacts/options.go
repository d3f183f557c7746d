package contacts

import (
	"log/slog"

	"github.com/goliatone/go-fragments/internal/metrics"
)

// Options configures the contacts component.
type Options struct {
	ListPath   string
	SubmitPath string
	ItemPath   string
	Template   string
	ListBlock  string
	FormBlock  string
	OOBBlock   string
	Logger     *slog.Logger
	Recorder   metrics.Recorder
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		ListPath:   "/contacts",
		SubmitPath: "/contact",
		ItemPath:   "/contact/{id}",
		Template:   "contacts.html",
		ListBlock:  "contacts",
		FormBlock:  "form",
		OOBBlock:   "oob_contact",
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
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&opts.ListPath, defaults.ListPath)
	fill(&opts.SubmitPath, defaults.SubmitPath)
	fill(&opts.ItemPath, defaults.ItemPath)
	fill(&opts.Template, defaults.Template)
	fill(&opts.ListBlock, defaults.ListBlock)
	fill(&opts.FormBlock, defaults.FormBlock)
	fill(&opts.OOBBlock, defaults.OOBBlock)
	return opts
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
