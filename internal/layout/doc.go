// Package layout reads keypad layouts from TOML and YAML files and ships
// the builtin layouts.
//
// A layout file names its grid and lists its keys:
//
//	name = "phone"
//	denominator = 12
//	columns = 3
//	rows = 4
//
//	[[key]]
//	id = "b1"
//	label = "1"
//	region = [0, 0, 4, 3]   # left, top, right, bottom
//	output = "1"
//
// The YAML form uses the same fields with the key list under "keys".
// Output is either a string, where escapes such as "\u001B[A" or "\b"
// produce control bytes, or "bytes", a list of integers 0..255. Unknown
// fields are rejected so typos do not silently drop keys.
package layout
