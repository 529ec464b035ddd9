package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runKeypad(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestHeadlessScript(t *testing.T) {
	t.Setenv("KEYPAD_RENDERER", "headless")
	t.Setenv("KEYPAD_LOG_LEVEL", "error")

	code, out, _ := runKeypad(t, "b9\nb1\nb1\n", "-layout", "phone")
	assert.Equal(t, 0, code)
	assert.Equal(t, "911", out)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("KEYPAD_LAYOUT", "phone")
	t.Setenv("KEYPAD_RENDERER", "headless")
	t.Setenv("KEYPAD_LOG_LEVEL", "error")

	code, out, _ := runKeypad(t, "tab\nkp7\n", "-layout", "numpad")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\t7", out)
}

func TestList(t *testing.T) {
	code, out, _ := runKeypad(t, "", "-list")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "numpad")
	assert.Contains(t, out, "phone")
}

func TestVersion(t *testing.T) {
	code, out, _ := runKeypad(t, "", "-version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "keypad dev\n"))
}

func TestCheckExitCodes(t *testing.T) {
	code, out, _ := runKeypad(t, "", "-layout", "numpad", "-check")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ok")

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("denominator = 0\n[[key]]\nid = \"a\"\nregion = [0, 0, 1, 1]\noutput = \"a\"\n"), 0o644))

	code, out, _ = runKeypad(t, "", "-layout", path, "-check")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "denominator 0 must be positive")
}

func TestConfigErrorExitsTwo(t *testing.T) {
	t.Setenv("KEYPAD_RENDERER", "headless")

	code, out, errOut := runKeypad(t, "", "-layout", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, 2, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error: load")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := runKeypad(t, "", "-watch")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "-watch requires -check")

	code, _, _ = runKeypad(t, "", "-renderer", "gtk", "-print")
	assert.Equal(t, 2, code)

	code, _, _ = runKeypad(t, "", "-no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runKeypad(t, "", "-h")
	assert.Equal(t, 0, code)
}

func TestPrint(t *testing.T) {
	code, out, _ := runKeypad(t, "", "-layout", "numpad", "-print")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "builtin:numpad")
	assert.Contains(t, out, "Num")
}
