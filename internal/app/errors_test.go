package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/keypad/internal/dispatch"
	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/renderer"
)

func TestStageError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StageError
		expected string
	}{
		{"nil error", nil, ""},
		{"no layout", &StageError{Stage: StageRun, Err: errors.New("boom")}, "run: boom"},
		{"with layout", &StageError{Stage: StageBuild, Layout: "pad.toml", Err: errors.New("boom")}, "build pad.toml: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestStageErrorMatchesConfigOnlyWhenLoading(t *testing.T) {
	cause := errors.New("permission denied")
	assert.ErrorIs(t, &StageError{Stage: StageLoad, Err: cause}, grid.ErrConfig)
	assert.ErrorIs(t, &StageError{Stage: StageLoad, Err: cause}, cause)
	assert.NotErrorIs(t, &StageError{Stage: StageRun, Err: cause}, grid.ErrConfig)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", fmt.Errorf("wrapped: %w", grid.ErrConfig), ExitConfig},
		{"settings", fmt.Errorf("%w: bad", ErrInvalidSettings), ExitConfig},
		{"render init", &StageError{Stage: StageInstantiate, Err: renderer.NewRenderInitError("screen", errors.New("no tty"))}, ExitError},
		{"write", &dispatch.WriteError{ID: "b1", Total: 1, Err: errors.New("closed")}, ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
