// Package renderer defines the contract between the keypad core and the
// toolkit that draws keys and reports activations.
//
// The core never depends on a particular toolkit. A Renderer receives the
// built table and its grid, creates one activatable control per descriptor,
// and calls the registered Activator whenever a control is triggered. The
// renderer owns the event loop; Run returns only when the toolkit shuts
// down or Stop is called.
//
// Implementations live in subpackages: terminal draws keys with tcell and
// activates them with the mouse or keyboard, headless positions keys on a
// virtual canvas and activates them programmatically or from a line-based
// script.
package renderer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
)

// Activator receives the descriptor of every activated control.
type Activator func(keytable.Descriptor)

// Handle identifies an instantiated keypad. It is opaque to the core; each
// renderer returns its own implementation.
type Handle interface {
	ID() uuid.UUID
}

// Renderer is the toolkit boundary.
type Renderer interface {
	// Instantiate creates one control per descriptor, positioned by scaling
	// its region by spec.Denominator. A toolkit failure is reported as a
	// *RenderInitError.
	Instantiate(table *keytable.Table, spec grid.Spec) (Handle, error)

	// OnActivate registers the function called for every activation.
	OnActivate(h Handle, fn Activator) error

	// Run hands control to the toolkit event loop.
	Run(h Handle) error

	// Stop asks a running event loop to return. It is safe to call from
	// any goroutine and more than once.
	Stop(h Handle)
}

// Errors shared by renderer implementations.
var (
	// ErrForeignHandle indicates a handle created by a different renderer.
	ErrForeignHandle = errors.New("renderer: handle belongs to another renderer")

	// ErrUnknownKey indicates an activation for an id that is not in the table.
	ErrUnknownKey = errors.New("renderer: unknown key")
)

// RenderInitError reports that the toolkit could not create an element.
type RenderInitError struct {
	Element string // Element that failed, e.g. "screen" or a key id
	Err     error  // Underlying error
}

// NewRenderInitError creates a new RenderInitError.
func NewRenderInitError(element string, err error) *RenderInitError {
	return &RenderInitError{Element: element, Err: err}
}

func (e *RenderInitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("renderer: could not create %s: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("renderer: could not create %s", e.Element)
}

func (e *RenderInitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BaseHandle carries the identity shared by every handle implementation.
type BaseHandle struct {
	id uuid.UUID
}

// NewBaseHandle creates a handle identity.
func NewBaseHandle() BaseHandle {
	return BaseHandle{id: uuid.New()}
}

// ID returns the handle identifier.
func (h BaseHandle) ID() uuid.UUID {
	return h.id
}
