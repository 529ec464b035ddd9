package app

import (
	"errors"
	"fmt"

	"github.com/dshills/keypad/internal/grid"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while a keypad is running.
	ErrAlreadyRunning = errors.New("keypad already running")

	// ErrInvalidSettings wraps runtime configuration problems.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrBuiltinLayout indicates an operation that needs a layout file was
	// given a builtin layout name.
	ErrBuiltinLayout = errors.New("builtin layouts cannot be watched")
)

// Stages of starting a keypad.
const (
	StageLoad        = "load"
	StageBuild       = "build"
	StageValidate    = "validate"
	StageInstantiate = "instantiate"
	StageRun         = "run"
)

// StageError records which startup stage failed.
type StageError struct {
	Stage  string // One of the Stage constants
	Layout string // Layout name or path
	Err    error  // Underlying error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Layout != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Layout, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes a failure to load a layout match grid.ErrConfig even when the
// cause is a missing or unreadable file.
func (e *StageError) Is(target error) bool {
	return e != nil && e.Stage == StageLoad && target == grid.ErrConfig
}

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

// ExitCode maps the error returned by Run, Check or Print to a process
// exit code: 0 on a normal quit, 2 for configuration errors, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, grid.ErrConfig), errors.Is(err, ErrInvalidSettings):
		return ExitConfig
	default:
		return ExitError
	}
}
