package layout

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// DefaultLayout is the layout used when none is configured.
const DefaultLayout = "phone"

// BuiltinNames lists the builtin layouts in alphabetical order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(names)
	return names
}

// IsBuiltin reports whether name is a builtin layout.
func IsBuiltin(name string) bool {
	return slices.Contains(BuiltinNames(), name)
}

// Builtin loads a builtin layout by name.
func Builtin(name string) (*File, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("no builtin layout %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse("builtin:"+name, FormatTOML, data)
}
