package layout

import (
	"fmt"
	"strings"

	"github.com/dshills/keypad/internal/grid"
)

// ParseError reports a layout file that could not be decoded or converted
// into descriptors. It matches grid.ErrConfig.
type ParseError struct {
	Source   string   // File path or builtin name
	Problems []string // Every problem found
	Err      error    // Underlying decoder error, if any
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	msg := strings.Join(e.Problems, "; ")
	if e.Err != nil {
		if msg != "" {
			msg += "; "
		}
		msg += e.Err.Error()
	}
	return fmt.Sprintf("layout %s: %s", e.Source, msg)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes ParseError match grid.ErrConfig.
func (e *ParseError) Is(target error) bool {
	return target == grid.ErrConfig
}
