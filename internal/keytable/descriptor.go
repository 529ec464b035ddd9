package keytable

import (
	"fmt"

	"github.com/dshills/keypad/internal/grid"
)

// RawDescriptor is one unchecked row of a layout, as authored.
type RawDescriptor struct {
	ID     string
	Label  string
	Region grid.Rect
	Output []byte
}

// Descriptor is one validated key: where it sits on the grid, how it is
// identified and the bytes it emits when activated. Descriptors are values;
// the output bytes are never shared with callers.
type Descriptor struct {
	id     string
	label  string
	region grid.Rect
	output []byte
}

func newDescriptor(raw RawDescriptor) Descriptor {
	return Descriptor{
		id:     raw.ID,
		label:  raw.Label,
		region: raw.Region,
		output: append([]byte(nil), raw.Output...),
	}
}

// ID returns the unique identifier of the key.
func (d Descriptor) ID() string { return d.id }

// Label returns the text a renderer shows on the key. It defaults to the
// identifier when the layout gives none.
func (d Descriptor) Label() string {
	if d.label == "" {
		return d.id
	}
	return d.label
}

// Region returns the key rectangle in grid units.
func (d Descriptor) Region() grid.Rect { return d.region }

// Output returns a copy of the bytes emitted on activation.
func (d Descriptor) Output() []byte {
	return append([]byte(nil), d.output...)
}

// OutputLen returns the number of bytes emitted on activation.
func (d Descriptor) OutputLen() int { return len(d.output) }

// Raw returns the row this descriptor was built from.
func (d Descriptor) Raw() RawDescriptor {
	return RawDescriptor{
		ID:     d.id,
		Label:  d.label,
		Region: d.region,
		Output: d.Output(),
	}
}

// IsZero reports whether d is the zero Descriptor.
func (d Descriptor) IsZero() bool {
	return d.id == ""
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s@%s", d.id, d.region)
}
