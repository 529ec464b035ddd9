// Package app wires the keypad together: it loads a layout, builds and
// validates the key table, hands it to a renderer and connects activations
// to the dispatch engine that writes to standard output.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dshills/keypad/internal/config"
	"github.com/dshills/keypad/internal/dispatch"
	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
	"github.com/dshills/keypad/internal/layout"
	"github.com/dshills/keypad/internal/logging"
	"github.com/dshills/keypad/internal/renderer"
	"github.com/dshills/keypad/internal/renderer/headless"
	"github.com/dshills/keypad/internal/renderer/terminal"
)

// Options configures the application.
type Options struct {
	// Config holds the runtime settings.
	Config config.Config

	// Stdout receives key output. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives logs when no log file is set. Defaults to os.Stderr.
	Stderr io.Writer

	// Input is the key script for the headless renderer. When nil the
	// headless renderer waits for Shutdown.
	Input io.Reader

	// Renderer replaces the renderer selected by Config.Renderer.
	Renderer renderer.Renderer

	// Logger replaces the logger built from Config.
	Logger *zerolog.Logger
}

// Application runs one keypad.
type Application struct {
	opts Options

	log     *zerolog.Logger
	logs    *logging.Deferred
	logFile *os.File
	holdLog bool

	engine   *dispatch.Engine
	renderer renderer.Renderer

	mu       sync.Mutex
	handle   renderer.Handle
	stopping bool

	running atomic.Bool
}

// New creates an application. Invalid settings are reported wrapped in
// ErrInvalidSettings.
func New(opts Options) (*Application, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	app := &Application{opts: opts}
	if err := app.setupLogging(); err != nil {
		return nil, err
	}

	app.engine = dispatch.New(opts.Stdout, dispatch.WithLogger(app.log))
	app.renderer = opts.Renderer
	if app.renderer == nil {
		app.renderer = app.newRenderer()
	}
	return app, nil
}

func (app *Application) newRenderer() renderer.Renderer {
	switch app.opts.Config.Renderer {
	case config.RendererHeadless:
		hopts := []headless.Option{headless.WithLogger(app.log)}
		if app.opts.Input != nil {
			hopts = append(hopts, headless.WithInput(app.opts.Input))
		}
		return headless.New(hopts...)
	default:
		return terminal.New(terminal.WithLogger(app.log))
	}
}

// Logger returns the application logger.
func (app *Application) Logger() *zerolog.Logger {
	return app.log
}

// Metrics returns the dispatch counters.
func (app *Application) Metrics() dispatch.MetricsSnapshot {
	return app.engine.Metrics().Snapshot()
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run loads the configured layout, instantiates the keypad and blocks in the
// renderer's event loop until it ends or Shutdown is called. Write failures
// during activation are logged and do not end Run.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	f, table, err := app.load()
	if err != nil {
		return err
	}
	app.warn(f, table)

	if app.holdLog {
		app.logs.Hold()
		defer app.releaseLogs()
	}

	h, err := app.renderer.Instantiate(table, f.Spec())
	if err != nil {
		return &StageError{Stage: StageInstantiate, Layout: app.opts.Config.Layout, Err: err}
	}
	if err := app.renderer.OnActivate(h, app.engine.Callback()); err != nil {
		app.renderer.Stop(h)
		return &StageError{Stage: StageInstantiate, Layout: app.opts.Config.Layout, Err: err}
	}

	app.mu.Lock()
	app.handle = h
	stopping := app.stopping
	app.mu.Unlock()
	if stopping {
		app.renderer.Stop(h)
	}

	app.log.Info().
		Str("layout", f.Source).
		Int("keys", table.Len()).
		Str("handle", h.ID().String()).
		Msg("keypad running")

	err = app.renderer.Run(h)

	app.mu.Lock()
	app.handle = nil
	app.mu.Unlock()

	m := app.Metrics()
	app.log.Info().
		Uint64("dispatches", m.Dispatches).
		Uint64("failures", m.Failures).
		Uint64("bytes", m.Bytes).
		Dur("uptime", m.Uptime).
		Msg("keypad stopped")

	if err != nil {
		return &StageError{Stage: StageRun, Layout: app.opts.Config.Layout, Err: err}
	}
	return nil
}

// load resolves, builds and validates the configured layout.
func (app *Application) load() (*layout.File, *keytable.Table, error) {
	ref := app.opts.Config.Layout

	f, err := layout.Resolve(ref)
	if err != nil {
		return nil, nil, &StageError{Stage: StageLoad, Layout: ref, Err: err}
	}
	table, err := f.Build()
	if err != nil {
		return nil, nil, &StageError{Stage: StageBuild, Layout: ref, Err: err}
	}
	if err := grid.Validate(f.Spec(), table); err != nil {
		return nil, nil, &StageError{Stage: StageValidate, Layout: ref, Err: err}
	}
	return f, table, nil
}

// warn logs overlapping and uncovered regions.
func (app *Application) warn(f *layout.File, table *keytable.Table) {
	report := grid.Analyze(f.Spec(), table)
	for _, o := range report.Overlaps {
		app.log.Warn().
			Str("first", o.First).
			Str("second", o.Second).
			Stringer("shared", o.Shared).
			Msg("keys overlap; the later key receives clicks in the shared area")
	}
	if report.Uncovered > 0 {
		app.log.Warn().
			Int("uncovered", report.Uncovered).
			Int("total", report.Total).
			Msg("layout leaves part of the grid without a key")
	}
}

// Shutdown asks a running keypad to stop. It may be called from any
// goroutine, more than once, and before Run has instantiated the keypad.
func (app *Application) Shutdown() {
	app.mu.Lock()
	app.stopping = true
	h := app.handle
	app.mu.Unlock()

	if h != nil {
		app.renderer.Stop(h)
	}
}

// Close releases held log output and closes the log file.
func (app *Application) Close() error {
	app.releaseLogs()
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
