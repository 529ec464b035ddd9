package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
)

func loadBuiltin(t *testing.T, name string) (*File, *keytable.Table) {
	t.Helper()
	f, err := Builtin(name)
	require.NoError(t, err)
	table, err := f.Build()
	require.NoError(t, err)
	require.NoError(t, grid.Validate(f.Spec(), table))
	return f, table
}

func output(t *testing.T, table *keytable.Table, id string) []byte {
	t.Helper()
	d, ok := table.Lookup(id)
	require.True(t, ok, id)
	return d.Output()
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"numpad", "phone"}, BuiltinNames())
	assert.True(t, IsBuiltin(DefaultLayout))
	assert.False(t, IsBuiltin("qwerty"))

	_, err := Builtin("qwerty")
	assert.Error(t, err)
}

func TestPhoneLayout(t *testing.T) {
	f, table := loadBuiltin(t, "phone")
	assert.Equal(t, "phone", f.Name)
	assert.Equal(t, grid.Spec{Denominator: 12, Columns: 3, Rows: 4}, f.Spec())
	assert.Equal(t, 12, table.Len())
	assert.Equal(t, "b0", table.At(0).ID())
	assert.Equal(t, []byte("#"), output(t, table, "bhash"))
	assert.Equal(t, "*", must(table.Lookup("basterisk")).Label())

	assert.True(t, grid.Analyze(f.Spec(), table).Clean())
}

func must(d keytable.Descriptor, ok bool) keytable.Descriptor {
	if !ok {
		panic("missing descriptor")
	}
	return d
}

func TestNumpadWireFormat(t *testing.T) {
	f, table := loadBuiltin(t, "numpad")

	tests := map[string][]byte{
		"enter":     {0x0A},
		"kpenter":   {0x0A},
		"tab":       {0x09},
		"backspace": {0x08},
		"up":        {0x1B, '[', 'A'},
		"down":      {0x1B, '[', 'B'},
		"right":     {0x1B, '[', 'C'},
		"left":      {0x1B, '[', 'D'},
		"f1":        []byte("<f1>"),
		"lshft":     []byte("<lshft>"),
		"nlck":      []byte("<nlck>"),
		"kp5":       []byte("5"),
	}
	for id, want := range tests {
		assert.Equal(t, want, output(t, table, id), id)
	}

	report := grid.Analyze(f.Spec(), table)
	assert.True(t, report.Clean(), "overlaps=%v uncovered=%d", report.Overlaps, report.Uncovered)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
name: arrows
denominator: 2
keys:
  - id: up
    region: [0, 0, 2, 1]
    output: "\e[A"
  - id: down
    region: [0, 1, 2, 2]
    bytes: [27, 91, 66]
`)
	f, err := Parse("arrows.yaml", FormatYAML, data)
	require.NoError(t, err)
	table, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, []byte("\x1b[A"), output(t, table, "up"))
	assert.Equal(t, []byte("\x1b[B"), output(t, table, "down"))
	assert.Equal(t, "arrows.yaml", f.Source)
}

func TestDescriptorsCollectEveryProblem(t *testing.T) {
	data := []byte(`
denominator = 4

[[key]]
id = "short"
region = [0, 0, 2]
output = "s"

[[key]]
id = "both"
region = [0, 0, 2, 2]
output = "b"
bytes = [98]

[[key]]
id = "none"
region = [2, 2, 4, 4]

[[key]]
id = "big"
region = [0, 2, 2, 4]
bytes = [256]
`)
	f, err := Parse("bad.toml", FormatTOML, data)
	require.NoError(t, err)

	_, err = f.Build()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(err, grid.ErrConfig))
	require.Len(t, perr.Problems, 4)
	assert.Contains(t, perr.Problems[0], "key short: region needs 4 values")
	assert.Contains(t, perr.Problems[1], "key both: set output or bytes")
	assert.Contains(t, perr.Problems[2], "key none: missing output")
	assert.Contains(t, perr.Problems[3], "bytes[0] = 256")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse("typo.toml", FormatTOML, []byte("denominator = 4\n[[key]]\nid = \"a\"\nregoin = [0, 0, 1, 1]\n"))
	assert.True(t, errors.Is(err, grid.ErrConfig))

	_, err = Parse("typo.yaml", FormatYAML, []byte("denominator: 4\nkeys:\n  - id: a\n    regoin: [0, 0, 1, 1]\n"))
	assert.True(t, errors.Is(err, grid.ErrConfig))
}

func TestEmptyLayoutBuildsNoTable(t *testing.T) {
	f, err := Parse("empty.yaml", FormatYAML, nil)
	require.NoError(t, err)
	_, err = f.Build()
	assert.ErrorAs(t, err, &keytable.EmptyTableError{})
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.toml")
	require.NoError(t, os.WriteFile(path, []byte("denominator = 1\n[[key]]\nid = \"x\"\nregion = [0, 0, 1, 1]\noutput = \"x\"\n"), 0o644))

	f, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Source)

	_, err = Resolve(filepath.Join(dir, "one.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Resolve(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiagramPhone(t *testing.T) {
	f, table := loadBuiltin(t, "phone")
	out := Diagram(table, f.Spec(), DefaultDiagramOptions(f.Spec()))
	lines := strings.Split(out, "\n")

	assert.Equal(t, "0           4           8          12", lines[0])
	assert.Equal(t, "+-----------+-----------+-----------+ 0", lines[1])
	assert.Equal(t, "|     1     |     2     |     3     |", lines[2])
	assert.Equal(t, "+-----------+-----------+-----------+ 3", lines[4])
	assert.Contains(t, out, "|     *     |     0     |     #     |")
	assert.Equal(t, "+-----------+-----------+-----------+ 12", lines[13])
}
