package keytable

import (
	"errors"
	"iter"

	"github.com/dshills/keypad/internal/grid"
)

// Table is an ordered, immutable collection of descriptors. Order is the
// declaration order of the rows it was built from.
type Table struct {
	descriptors []Descriptor
	index       map[string]int
}

// Build constructs a table from rows. It fails when rows is empty or when
// any identifier is empty or repeated; all such problems are joined into
// the returned error and no table is produced. Geometry is left to
// grid.Validate.
func Build(rows []RawDescriptor) (*Table, error) {
	if len(rows) == 0 {
		return nil, EmptyTableError{}
	}

	var errs []error
	seen := make(map[string][]int, len(rows))
	var order []string
	for i, row := range rows {
		if row.ID == "" {
			errs = append(errs, &EmptyIDError{Row: i})
			continue
		}
		if _, ok := seen[row.ID]; !ok {
			order = append(order, row.ID)
		}
		seen[row.ID] = append(seen[row.ID], i)
	}
	for _, id := range order {
		if at := seen[id]; len(at) > 1 {
			errs = append(errs, &DuplicateIDError{ID: id, Rows: at})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t := &Table{
		descriptors: make([]Descriptor, len(rows)),
		index:       make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		t.descriptors[i] = newDescriptor(row)
		t.index[row.ID] = i
	}
	return t, nil
}

// Lookup finds a descriptor by exact identifier. A missing id is not an
// error.
func (t *Table) Lookup(id string) (Descriptor, bool) {
	i, ok := t.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return t.descriptors[i], true
}

// Len returns the number of descriptors.
func (t *Table) Len() int {
	return len(t.descriptors)
}

// At returns the i-th descriptor in declaration order.
func (t *Table) At(i int) Descriptor {
	return t.descriptors[i]
}

// All yields the descriptors in declaration order. The sequence can be
// ranged over any number of times.
func (t *Table) All() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for _, d := range t.descriptors {
			if !yield(d) {
				return
			}
		}
	}
}

// Regions yields id and region pairs in declaration order, which makes a
// Table usable as a grid.Layout.
func (t *Table) Regions() iter.Seq2[string, grid.Rect] {
	return func(yield func(string, grid.Rect) bool) {
		for _, d := range t.descriptors {
			if !yield(d.id, d.region) {
				return
			}
		}
	}
}

// IDs returns the identifiers in declaration order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.descriptors))
	for i, d := range t.descriptors {
		ids[i] = d.id
	}
	return ids
}

var _ grid.Layout = (*Table)(nil)
