// Package headless is a renderer without a display. It lays keys out on a
// virtual canvas and activates them on request, either programmatically or
// from a line-oriented script where every line names a key id.
//
//	printf 'b1\nb2\nbhash\n' | keypad -renderer headless
//
// It backs tests and non-interactive use of a layout.
package headless

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
	"github.com/dshills/keypad/internal/logging"
	"github.com/dshills/keypad/internal/renderer"
)

// Default canvas size.
const (
	DefaultWidth  = 480
	DefaultHeight = 480
)

// Renderer implements renderer.Renderer without a display.
type Renderer struct {
	width, height int
	input         io.Reader
	log           *zerolog.Logger

	mu        sync.Mutex
	instances []*Handle
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCanvas sets the virtual canvas size.
func WithCanvas(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// WithInput makes Run read key ids from in, one per line. Blank lines and
// lines starting with '#' are skipped. Run returns at end of input.
func WithInput(in io.Reader) Option {
	return func(r *Renderer) {
		r.input = in
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = logging.Component(l, "headless")
		}
	}
}

// New creates a headless renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:  DefaultWidth,
		height: DefaultHeight,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle is a headless keypad instance.
type Handle struct {
	renderer.BaseHandle

	mu       sync.Mutex
	controls []renderer.Control
	index    map[string]int
	activate renderer.Activator

	stop     chan struct{}
	stopOnce sync.Once
}

// Instantiate lays out one control per descriptor on the canvas.
func (r *Renderer) Instantiate(table *keytable.Table, spec grid.Spec) (renderer.Handle, error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, renderer.NewRenderInitError("canvas",
			fmt.Errorf("size %dx%d must be positive", r.width, r.height))
	}

	h := &Handle{
		BaseHandle: renderer.NewBaseHandle(),
		controls:   renderer.Layout(table, spec, r.width, r.height),
		index:      make(map[string]int, table.Len()),
		stop:       make(chan struct{}),
	}
	for i, c := range h.controls {
		h.index[c.Descriptor.ID()] = i
		r.log.Debug().
			Str("id", c.Descriptor.ID()).
			Stringer("region", c.Descriptor.Region()).
			Msg("creating key")
	}

	r.mu.Lock()
	r.instances = append(r.instances, h)
	r.mu.Unlock()
	return h, nil
}

// Instances returns every handle created so far.
func (r *Renderer) Instances() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.instances)
}

func (r *Renderer) handle(h renderer.Handle) (*Handle, error) {
	hh, ok := h.(*Handle)
	if !ok || hh == nil {
		return nil, renderer.ErrForeignHandle
	}
	return hh, nil
}

// OnActivate registers the activation callback.
func (r *Renderer) OnActivate(h renderer.Handle, fn renderer.Activator) error {
	hh, err := r.handle(h)
	if err != nil {
		return err
	}
	hh.mu.Lock()
	defer hh.mu.Unlock()
	hh.activate = fn
	return nil
}

// Controls returns the instantiated controls in declaration order.
func (h *Handle) Controls() []renderer.Control {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.controls)
}

// Activate triggers the control with the given id, as a click would.
func (h *Handle) Activate(id string) error {
	h.mu.Lock()
	i, ok := h.index[id]
	fn := h.activate
	var d keytable.Descriptor
	if ok {
		d = h.controls[i].Descriptor
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", renderer.ErrUnknownKey, id)
	}
	if fn != nil {
		fn(d)
	}
	return nil
}

// Click activates the control under canvas point (x, y), if any.
func (h *Handle) Click(x, y int) (string, bool) {
	h.mu.Lock()
	i, ok := renderer.HitTest(h.controls, x, y)
	var id string
	if ok {
		id = h.controls[i].Descriptor.ID()
	}
	h.mu.Unlock()

	if !ok {
		return "", false
	}
	_ = h.Activate(id) // id came from the table
	return id, true
}

// Run replays the input script, or waits for Stop when there is none.
func (r *Renderer) Run(h renderer.Handle) error {
	hh, err := r.handle(h)
	if err != nil {
		return err
	}
	if r.input == nil {
		<-hh.stop
		return nil
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r.input)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-hh.stop:
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-hh.stop:
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading key script: %w", err)
					}
				default:
				}
				return nil
			}
			r.replay(hh, line)
		}
	}
}

func (r *Renderer) replay(h *Handle, line string) {
	id := strings.TrimSpace(line)
	if id == "" || strings.HasPrefix(id, "#") {
		return
	}
	if err := h.Activate(id); err != nil {
		if errors.Is(err, renderer.ErrUnknownKey) {
			r.log.Warn().Str("id", id).Msg("skipping unknown key")
			return
		}
		r.log.Error().Err(err).Str("id", id).Msg("activation failed")
	}
}

// Stop ends Run.
func (r *Renderer) Stop(h renderer.Handle) {
	hh, err := r.handle(h)
	if err != nil {
		return
	}
	hh.stopOnce.Do(func() { close(hh.stop) })
}
