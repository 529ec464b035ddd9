package grid

import "errors"

// ErrConfig classifies every layout configuration error: bad geometry,
// duplicate or empty identifiers, empty tables and undecodable layout
// files. Use errors.Is(err, ErrConfig) to detect them.
var ErrConfig = errors.New("invalid layout configuration")
