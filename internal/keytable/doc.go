// Package keytable holds the ordered, immutable set of key descriptors a
// keypad is built from.
//
// A Table is built once at startup from RawDescriptor rows and is
// read-only afterwards; it can be shared with renderers and the dispatch
// engine without synchronization. Build rejects empty tables and empty or
// duplicate identifiers, reporting every problem at once. Geometry is not
// checked here; run grid.Validate on the built table.
package keytable
