// Package config holds the runtime settings of the keypad.
//
// Settings are read from KEYPAD_* environment variables and may then be
// overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dshills/keypad/internal/layout"
	"github.com/dshills/keypad/internal/logging"
)

// Renderer names.
const (
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// Config is the runtime configuration.
type Config struct {
	// Layout is a builtin layout name or the path of a layout file.
	Layout string `env:"KEYPAD_LAYOUT" envDefault:"phone"`

	// Renderer is terminal or headless.
	Renderer string `env:"KEYPAD_RENDERER" envDefault:"terminal"`

	LogLevel  string         `env:"KEYPAD_LOG_LEVEL"  envDefault:"info"`
	LogFile   string         `env:"KEYPAD_LOG_FILE"`
	LogFormat logging.Format `env:"KEYPAD_LOG_FORMAT" envDefault:"console"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Layout:    layout.DefaultLayout,
		Renderer:  RendererTerminal,
		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// FromEnvironment reads the configuration from the given variables instead
// of the process environment.
func FromEnvironment(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags registers flags on fs that override the fields of c. The
// current values of c become the flag defaults.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Layout, "layout", c.Layout, "Builtin layout name or path to a .toml/.yaml layout file")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "Renderer (terminal, headless)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Write logs to this file instead of stderr")
	fs.Func("log-format", "Log format (console, json)", func(s string) error {
		c.LogFormat = logging.Format(s)
		return nil
	})
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Layout == "" {
		errs = append(errs, errors.New("layout must not be empty"))
	}
	switch c.Renderer {
	case RendererTerminal, RendererHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown renderer %q (must be terminal or headless)", c.Renderer))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (must be console or json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Logging returns the logger settings. The caller supplies the output.
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
