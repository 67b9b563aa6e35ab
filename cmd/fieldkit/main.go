// Package main is an interactive terminal demo of the fieldkit editing
// core: a single editable field rendered with tcell, wired to the
// system clipboard and a loopback input channel.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/fieldkit/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.Obscure {
		cfg.Field.Obscure = true
	}
	if opts.Multiline {
		cfg.Field.Multiline = true
	}
	if opts.ReadOnly {
		cfg.Field.ReadOnly = true
	}

	app, err := newApp(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		app.Quit()
	}()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	ConfigPath string
	Obscure    bool
	Multiline  bool
	ReadOnly   bool
	Text       string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Obscure, "obscure", false, "Obscure input (password mode)")
	flag.BoolVar(&opts.Multiline, "multiline", false, "Allow line breaks")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Reject edits")
	flag.StringVar(&opts.Text, "text", "", "Initial field contents")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fieldkit - text field editing core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fieldkit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  arrows, word/line modifiers   navigate\n")
		fmt.Fprintf(os.Stderr, "  shift+arrows                  extend selection\n")
		fmt.Fprintf(os.Stderr, "  ctrl/cmd+a/c/x/v              select all, copy, cut, paste\n")
		fmt.Fprintf(os.Stderr, "  mouse                         tap, drag, double-click word select\n")
		fmt.Fprintf(os.Stderr, "  esc                           quit\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("fieldkit %s (%s)\n", version, commit)
		os.Exit(0)
	}
	return opts
}
