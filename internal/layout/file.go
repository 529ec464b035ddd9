package layout

import (
	"fmt"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
)

// File is a decoded layout file.
type File struct {
	Name        string `toml:"name" yaml:"name"`
	Denominator int    `toml:"denominator" yaml:"denominator"`
	Columns     int    `toml:"columns" yaml:"columns"`
	Rows        int    `toml:"rows" yaml:"rows"`
	Keys        []Key  `toml:"key" yaml:"keys"`

	// Source is where the file came from, for diagnostics.
	Source string `toml:"-" yaml:"-"`
}

// Key is one key entry of a layout file.
type Key struct {
	ID     string  `toml:"id" yaml:"id"`
	Label  string  `toml:"label" yaml:"label"`
	Region []int   `toml:"region" yaml:"region"`
	Output *string `toml:"output" yaml:"output"`
	Bytes  []int   `toml:"bytes" yaml:"bytes"`
}

// Spec returns the grid the layout is drawn on.
func (f *File) Spec() grid.Spec {
	return grid.NewSpec(f.Denominator).WithAxes(f.Columns, f.Rows)
}

// Descriptors converts the key entries into table rows. Region shape and
// output problems of every key are collected into one *ParseError.
func (f *File) Descriptors() ([]keytable.RawDescriptor, error) {
	var problems []string
	rows := make([]keytable.RawDescriptor, 0, len(f.Keys))

	for i, k := range f.Keys {
		name := k.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		var region grid.Rect
		if len(k.Region) != 4 {
			problems = append(problems, fmt.Sprintf("key %s: region needs 4 values [left, top, right, bottom], got %d", name, len(k.Region)))
		} else {
			region = grid.NewRect(k.Region[0], k.Region[1], k.Region[2], k.Region[3])
		}

		output, err := k.output()
		if err != nil {
			problems = append(problems, fmt.Sprintf("key %s: %v", name, err))
		}

		rows = append(rows, keytable.RawDescriptor{
			ID:     k.ID,
			Label:  k.Label,
			Region: region,
			Output: output,
		})
	}

	if len(problems) > 0 {
		return nil, &ParseError{Source: f.Source, Problems: problems}
	}
	return rows, nil
}

func (k Key) output() ([]byte, error) {
	switch {
	case k.Output != nil && k.Bytes != nil:
		return nil, fmt.Errorf("set output or bytes, not both")
	case k.Output != nil:
		if *k.Output == "" {
			return nil, fmt.Errorf("output is empty")
		}
		return []byte(*k.Output), nil
	case k.Bytes != nil:
		if len(k.Bytes) == 0 {
			return nil, fmt.Errorf("bytes is empty")
		}
		out := make([]byte, len(k.Bytes))
		for i, b := range k.Bytes {
			if b < 0 || b > 0xFF {
				return nil, fmt.Errorf("bytes[%d] = %d is not a byte", i, b)
			}
			out[i] = byte(b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("missing output")
	}
}

// Build converts the file into a key table. It does not validate geometry.
func (f *File) Build() (*keytable.Table, error) {
	rows, err := f.Descriptors()
	if err != nil {
		return nil, err
	}
	return keytable.Build(rows)
}
