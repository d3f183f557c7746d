package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-fragments/internal/config"
)

func TestServeCmd_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Defaults()
	cmd := ServeCmd{Addr: "127.0.0.1:9000", Templates: "tpl", Watch: true}
	cmd.apply(&cfg)

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Templates.Dir != "tpl" || !cfg.Templates.Watch {
		t.Fatalf("expected templates override, got %+v", cfg.Templates)
	}
	if cfg.Static.Dir != "" {
		t.Fatalf("expected static dir untouched, got %q", cfg.Static.Dir)
	}
}

func TestNewEngine_Embedded(t *testing.T) {
	cfg := config.Defaults()
	cfg.AppTitle = "Embedded"

	engine, err := newEngine(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderBlock("base.html", "index", nil)
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	if !strings.Contains(out, "<title>Embedded</title>") {
		t.Fatalf("expected app title in index, got %q", out)
	}
}

func TestCLI_Parses(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("fragments"))
	if err != nil {
		t.Fatalf("kong new: %v", err)
	}
	kctx, err := parser.Parse([]string{"serve", "--addr", ":8080", "--watch", "-v"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if kctx.Command() != "serve" {
		t.Fatalf("expected serve command, got %q", kctx.Command())
	}
	if cli.Serve.Addr != ":8080" || !cli.Serve.Watch || !cli.Verbose {
		t.Fatalf("unexpected flags: %+v", cli)
	}
}
