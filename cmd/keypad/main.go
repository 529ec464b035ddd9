// Package main is the entry point for the keypad.
//
// The keypad shows a grid of keys and writes the bytes bound to a key to
// standard output each time it is activated, so it can be piped into
// another program:
//
//	keypad -layout numpad | some-program
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keypad/internal/app"
	"github.com/dshills/keypad/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type mode struct {
	check, watch, print, list, version bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return app.ExitConfig
	}

	m, err := parseFlags(&cfg, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return app.ExitOK
	}
	if err != nil {
		return app.ExitConfig
	}

	switch {
	case m.version:
		fmt.Fprintf(stdout, "keypad %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return app.ExitOK
	case m.list:
		if err := app.ListBuiltins(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return app.ExitError
		}
		return app.ExitOK
	}

	opts := app.Options{Config: cfg, Stdout: stdout, Stderr: stderr}
	if cfg.Renderer == config.RendererHeadless {
		// Headless mode reads key ids from stdin, one per line.
		opts.Input = stdin
	}
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return app.ExitCode(err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case m.check && m.watch:
		err = application.Watch(ctx, stdout)
	case m.check:
		// The report already lists every problem.
		return app.ExitCode(application.Check(stdout))
	case m.print:
		err = application.Print(stdout)
	default:
		go func() {
			<-ctx.Done()
			application.Shutdown()
		}()
		err = application.Run()
	}

	if err != nil {
		application.Close()
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return app.ExitCode(err)
}

func parseFlags(cfg *config.Config, args []string, stderr io.Writer) (mode, error) {
	var m mode
	fs := flag.NewFlagSet("keypad", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg.BindFlags(fs)
	fs.BoolVar(&m.check, "check", false, "Validate the layout and print a report instead of running")
	fs.BoolVar(&m.watch, "watch", false, "With -check, re-check whenever the layout file changes")
	fs.BoolVar(&m.print, "print", false, "Print a diagram of the layout instead of running")
	fs.BoolVar(&m.list, "list", false, "List the builtin layouts")
	fs.BoolVar(&m.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keypad - on-screen keypad that writes key output to stdout\n\n")
		fmt.Fprintf(stderr, "Usage: keypad [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  KEYPAD_LAYOUT, KEYPAD_RENDERER, KEYPAD_LOG_LEVEL, KEYPAD_LOG_FILE, KEYPAD_LOG_FORMAT\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keypad                          Phone keypad in the terminal\n")
		fmt.Fprintf(stderr, "  keypad -layout numpad | cat -v  PC numeric keypad\n")
		fmt.Fprintf(stderr, "  keypad -layout pad.toml -check  Validate a layout file\n")
		fmt.Fprintf(stderr, "  keypad -list                    List builtin layouts\n")
	}

	if err := fs.Parse(args); err != nil {
		return m, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return m, errors.New("unexpected arguments")
	}
	if m.watch && !m.check {
		fmt.Fprintf(stderr, "Error: -watch requires -check\n")
		return m, errors.New("-watch requires -check")
	}
	return m, nil
}
