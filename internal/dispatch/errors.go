package dispatch

import (
	"errors"
	"fmt"
)

// ErrNoOutput is reported when a descriptor has nothing to emit.
var ErrNoOutput = errors.New("dispatch: descriptor has no output")

// WriteError reports an output sequence that was not fully delivered.
type WriteError struct {
	ID      string // Descriptor identifier
	Written int    // Bytes delivered before the failure
	Total   int    // Length of the output sequence
	Err     error  // Underlying error
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("dispatch %s: wrote %d of %d bytes: %v", e.ID, e.Written, e.Total, e.Err)
}

func (e *WriteError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
