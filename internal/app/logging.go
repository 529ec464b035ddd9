package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/keypad/internal/config"
	"github.com/dshills/keypad/internal/logging"
)

// setupLogging builds the logger. Logs go to the configured file, or to
// stderr through a Deferred sink that is held while the terminal renderer
// draws on the same terminal.
func (app *Application) setupLogging() error {
	cfg := app.opts.Config
	app.logs = logging.NewDeferred(app.opts.Stderr)

	if app.opts.Logger != nil {
		app.log = app.opts.Logger
		return nil
	}

	var out io.Writer = app.logs
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("%w: opening log file: %w", ErrInvalidSettings, err)
		}
		app.logFile = f
		out = f
	} else {
		app.holdLog = cfg.Renderer == config.RendererTerminal &&
			app.opts.Renderer == nil &&
			isTerminal(app.opts.Stderr)
	}

	lcfg := cfg.Logging()
	lcfg.Output = out
	l, err := logging.New(lcfg)
	if err != nil {
		if app.logFile != nil {
			app.logFile.Close()
			app.logFile = nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	app.log = &l
	return nil
}

func (app *Application) releaseLogs() {
	if app.logs == nil || !app.logs.Held() {
		return
	}
	if err := app.logs.Release(); err != nil {
		fmt.Fprintf(os.Stderr, "keypad: flushing logs: %v\n", err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
