// Package main is the entry point for the rebind input engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"

	"github.com/dshills/rebind/internal/app"
	"github.com/dshills/rebind/internal/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// The screen owns the terminal, so logs go to a file.
	logOut, err := app.OpenLogFile(opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logOut.Close()
	opts.LogOutput = logOut

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	term.SetMetrics(application.Metrics())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	defaultLog := filepath.Join(xdg.StateHome, "rebind", "rebind.log")

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.KeymapPath, "keymap", "", "Path to keymap file (overrides keymap.path)")
	flag.StringVar(&opts.KeymapPath, "k", "", "Path to keymap file (shorthand)")
	flag.StringVar(&opts.Remap, "remap", "", "Capture a new combo for Action[:slot] on start")
	flag.StringVar(&opts.Remap, "r", "", "Capture a new combo for Action[:slot] (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", defaultLog, "Log file used when log.file is not configured")
	flag.BoolVar(&opts.NoScript, "no-script", false, "Do not load the Lua hook script")
	flag.BoolVar(&opts.NoJournal, "no-journal", false, "Do not record binding changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rebind - input remapping engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rebind [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rebind                        Run with the saved keymap\n")
		fmt.Fprintf(os.Stderr, "  rebind -r ToggleRadar         Press a new combo for the radar\n")
		fmt.Fprintf(os.Stderr, "  rebind -r QuickSave:secondary Remap the secondary slot\n")
		fmt.Fprintf(os.Stderr, "  rebind -k ./keymap.toml       Use another keymap file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("rebind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
