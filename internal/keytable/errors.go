package keytable

import (
	"fmt"
	"strings"

	"github.com/dshills/keypad/internal/grid"
)

// EmptyTableError is returned by Build when no rows are given.
type EmptyTableError struct{}

func (EmptyTableError) Error() string {
	return "key table: no descriptors"
}

// Is makes EmptyTableError match grid.ErrConfig.
func (EmptyTableError) Is(target error) bool {
	return target == grid.ErrConfig
}

// DuplicateIDError reports an identifier declared more than once.
type DuplicateIDError struct {
	ID string

	// Rows lists every zero-based row index that declared ID.
	Rows []int
}

func (e *DuplicateIDError) Error() string {
	rows := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		rows[i] = fmt.Sprint(r)
	}
	return fmt.Sprintf("key table: duplicate id %q in rows %s", e.ID, strings.Join(rows, ", "))
}

// Is makes DuplicateIDError match grid.ErrConfig.
func (e *DuplicateIDError) Is(target error) bool {
	return target == grid.ErrConfig
}

// EmptyIDError reports a row without an identifier.
type EmptyIDError struct {
	Row int
}

func (e *EmptyIDError) Error() string {
	return fmt.Sprintf("key table: row %d has an empty id", e.Row)
}

// Is makes EmptyIDError match grid.ErrConfig.
func (e *EmptyIDError) Is(target error) bool {
	return target == grid.ErrConfig
}
