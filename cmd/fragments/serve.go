package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	fragments "github.com/goliatone/go-fragments"
	"github.com/goliatone/go-fragments/internal/config"
	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/internal/metrics"
	"github.com/goliatone/go-fragments/internal/server"
	"github.com/goliatone/go-fragments/pkg/contacts"
	"github.com/goliatone/go-fragments/pkg/counter"
	"github.com/goliatone/go-fragments/pkg/render/template/gotemplate"
)

// ServeCmd runs the HTTP server. Flags override the loaded configuration.
type ServeCmd struct {
	Addr       string `help:"Listen address (host:port)."`
	Templates  string `help:"Template directory; the embedded templates are used when empty." type:"path"`
	Static     string `help:"Directory served under /static/; the embedded copy is used when empty." type:"path"`
	Stylesheet string `help:"Stylesheet served at /assets/main.css." type:"path"`
	Watch      bool   `help:"Reload templates when files under --templates change."`
}

func (c *ServeCmd) Run(g *Globals, ctx context.Context) error {
	cfg, err := config.Load(g.Config, config.DefaultEnvFiles...)
	if err != nil {
		return err
	}
	c.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = logging.ParseFormat(cfg.Log.Format)
	if g.Verbose {
		logCfg.Level = logging.LevelDebug
	}
	if g.LogFormat != "" {
		logCfg.Format = logging.ParseFormat(g.LogFormat)
	}
	logger := logging.New(logCfg)
	slog.SetDefault(logger)

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	if cfg.Templates.Watch {
		go watchTemplates(ctx, engine, logger)
	}

	seed := make([]contacts.Contact, 0, len(cfg.Seed.Contacts))
	for _, sc := range cfg.Seed.Contacts {
		seed = append(seed, contacts.Contact{Name: sc.Name, Email: sc.Email})
	}

	fns := []server.OptionFn{
		server.WithAddr(cfg.Server.Addr),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownGrace),
		server.WithStores(counter.New(cfg.Seed.Counter), contacts.NewStore(seed...)),
		server.WithStatic(cfg.Static.Dir, cfg.Static.Stylesheet),
		server.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		fns = append(fns, server.WithMetrics(metrics.NewPrometheusRecorder(true), cfg.Metrics.Path))
	}

	srv, err := server.New(engine, fns...)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.Templates != "" {
		cfg.Templates.Dir = c.Templates
	}
	if c.Static != "" {
		cfg.Static.Dir = c.Static
	}
	if c.Stylesheet != "" {
		cfg.Static.Stylesheet = c.Stylesheet
	}
	if c.Watch {
		cfg.Templates.Watch = true
	}
}

func newEngine(cfg config.Config) (*gotemplate.Engine, error) {
	opts := []gotemplate.Option{
		gotemplate.WithGlobalData(map[string]any{"app_title": cfg.AppTitle}),
	}
	if cfg.Templates.Dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(filepath.Clean(cfg.Templates.Dir)))
	} else {
		opts = append(opts, gotemplate.WithFS(fragments.EmbeddedTemplates()))
	}
	return gotemplate.New(opts...)
}

func watchTemplates(ctx context.Context, engine *gotemplate.Engine, logger *slog.Logger) {
	err := engine.Watch(ctx, func(event fsnotify.Event, err error) {
		if err != nil {
			logger.Warn("template watcher error", logging.Error(err))
			return
		}
		logger.Info("templates reloaded", slog.String("file", event.Name), slog.String("op", event.Op.String()))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("template watcher stopped", logging.Error(err))
	}
}
