package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a layout file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates a layout file extension that has no decoder.
var ErrUnknownFormat = errors.New("unknown layout format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (want .toml, .yaml or .yml)", ErrUnknownFormat, path)
	}
}

// Parse decodes layout data. Decode failures are returned as *ParseError.
func Parse(source string, format Format, data []byte) (*File, error) {
	var f File
	var err error

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			err = nil // empty document: reported as an empty table later
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	f.Source = source
	return &f, nil
}

// LoadFile reads and decodes a layout file.
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	return Parse(path, format, data)
}

// Resolve loads a builtin layout by name, or a layout file by path when no
// builtin has that name.
func Resolve(ref string) (*File, error) {
	if IsBuiltin(ref) {
		return Builtin(ref)
	}
	return LoadFile(ref)
}
