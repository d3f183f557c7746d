package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Build metadata, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

// Globals are flags shared by every command.
type Globals struct {
	Config    string `short:"c" help:"YAML configuration file (optional)." type:"path"`
	Verbose   bool   `short:"v" help:"Enable debug logging."`
	LogFormat string `help:"Log output format (text or json)."`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run the fragment server."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// VersionCmd prints build metadata.
type VersionCmd struct{}

func (VersionCmd) Run(_ *Globals) error {
	fmt.Printf("fragments %s (%s)\n", version, commit)
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("fragments"),
		kong.Description("Serve server-rendered HTML fragments for htmx pages."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
