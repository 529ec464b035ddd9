package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.toml")
	require.NoError(t, os.WriteFile(path, []byte("denominator = 1\n"), 0o644))

	w, err := New(path, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, path, w.Path())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes <- struct{}{} })
	}()

	// Writes to a sibling file are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))

	// A burst of writes settles into one change.
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("denominator = 2\n"), 0o644))
	}

	select {
	case <-changes:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.toml")
	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Run(context.Background(), func() {}), ErrClosed)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "pad.toml"))
	assert.Error(t, err)
}
