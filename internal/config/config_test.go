package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keypad/internal/logging"
)

func TestFromEnvironmentDefaults(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvironment(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{
		"KEYPAD_LAYOUT":     "numpad",
		"KEYPAD_RENDERER":   "headless",
		"KEYPAD_LOG_LEVEL":  "debug",
		"KEYPAD_LOG_FILE":   "/tmp/keypad.log",
		"KEYPAD_LOG_FORMAT": "json",
	})
	require.NoError(t, err)

	assert.Equal(t, Config{
		Layout:    "numpad",
		Renderer:  RendererHeadless,
		LogLevel:  "debug",
		LogFile:   "/tmp/keypad.log",
		LogFormat: logging.FormatJSON,
	}, cfg)
}

func TestFlagsOverrideEnv(t *testing.T) {
	cfg, err := FromEnvironment(map[string]string{"KEYPAD_LAYOUT": "numpad", "KEYPAD_LOG_LEVEL": "warn"})
	require.NoError(t, err)

	fs := flag.NewFlagSet("keypad", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-layout", "pad.yaml", "-log-format", "json"}))

	assert.Equal(t, "pad.yaml", cfg.Layout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, logging.FormatJSON, cfg.LogFormat)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Config{Renderer: "gtk", LogLevel: "loud", LogFormat: "xml"}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "layout must not be empty")
	assert.Contains(t, msg, `unknown renderer "gtk"`)
	assert.Contains(t, msg, `unknown log level "loud"`)
	assert.Contains(t, msg, `unknown log format "xml"`)
}
