// Package terminal renders a keypad in a terminal with tcell.
//
// Keys are drawn as boxes scaled to the screen. A key is activated by
// pressing and releasing the left mouse button over it, or by moving the
// keyboard focus onto it (arrows, Tab) and pressing Enter or Space.
// Ctrl-C and Ctrl-Q end the event loop.
//
// tcell talks to the controlling terminal directly, so standard output
// stays free for key output and can be piped to another process.
package terminal

import (
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
	"github.com/dshills/keypad/internal/logging"
	"github.com/dshills/keypad/internal/renderer"
)

// Renderer implements renderer.Renderer on a tcell screen.
type Renderer struct {
	newScreen func() (tcell.Screen, error)
	styles    Styles
	log       *zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScreen makes the renderer use an existing screen, such as a
// tcell.SimulationScreen in tests. The screen is initialised by
// Instantiate.
func WithScreen(s tcell.Screen) Option {
	return func(r *Renderer) {
		r.newScreen = func() (tcell.Screen, error) { return s, nil }
	}
}

// WithStyles overrides the colours used for keys.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = logging.Component(l, "terminal")
		}
	}
}

// New creates a terminal renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		newScreen: tcell.NewScreen,
		styles:    DefaultStyles(),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// stopRequest is posted as an interrupt payload to end Run.
type stopRequest struct{}

// Handle is the terminal renderer's keypad instance.
type Handle struct {
	renderer.BaseHandle

	mu       sync.Mutex
	screen   tcell.Screen
	table    *keytable.Table
	spec     grid.Spec
	controls []renderer.Control
	order    []int // control indexes in reading order, for focus movement
	activate renderer.Activator

	focus      int // position in order, -1 when nothing is focused
	pressed    int // control index under a held mouse button, or -1
	buttonDown bool

	finiOnce sync.Once
}

// Instantiate initialises the screen and lays out one control per
// descriptor.
func (r *Renderer) Instantiate(table *keytable.Table, spec grid.Spec) (renderer.Handle, error) {
	screen, err := r.newScreen()
	if err != nil {
		return nil, renderer.NewRenderInitError("screen", err)
	}
	if err := screen.Init(); err != nil {
		return nil, renderer.NewRenderInitError("screen", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	h := &Handle{
		BaseHandle: renderer.NewBaseHandle(),
		screen:     screen,
		table:      table,
		spec:       spec,
		focus:      -1,
		pressed:    -1,
	}
	h.relayout()

	for _, c := range h.controls {
		r.log.Debug().
			Str("id", c.Descriptor.ID()).
			Stringer("region", c.Descriptor.Region()).
			Int("x", c.Bounds.Left).
			Int("y", c.Bounds.Top).
			Int("w", c.Bounds.Width()).
			Int("h", c.Bounds.Height()).
			Msg("creating key")
		if c.Bounds.IsEmpty() {
			r.log.Warn().Str("id", c.Descriptor.ID()).Msg("key too small to draw at this screen size")
		}
	}

	r.draw(h)
	return h, nil
}

func (r *Renderer) handle(h renderer.Handle) (*Handle, error) {
	th, ok := h.(*Handle)
	if !ok || th == nil {
		return nil, renderer.ErrForeignHandle
	}
	return th, nil
}

// OnActivate registers the activation callback.
func (r *Renderer) OnActivate(h renderer.Handle, fn renderer.Activator) error {
	th, err := r.handle(h)
	if err != nil {
		return err
	}
	th.mu.Lock()
	defer th.mu.Unlock()
	th.activate = fn
	return nil
}

// Run processes terminal events until Stop, Ctrl-C or Ctrl-Q. The screen
// is restored before Run returns.
func (r *Renderer) Run(h renderer.Handle) error {
	th, err := r.handle(h)
	if err != nil {
		return err
	}
	defer th.fini()

	for {
		ev := th.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !r.handleEvent(th, ev) {
			return nil
		}
	}
}

// Stop ends a running event loop.
func (r *Renderer) Stop(h renderer.Handle) {
	th, err := r.handle(h)
	if err != nil {
		return
	}
	_ = th.screen.PostEvent(tcell.NewEventInterrupt(stopRequest{})) // best-effort; queue may be full or closed
}

// Controls returns the controls as currently laid out.
func (r *Renderer) Controls(h renderer.Handle) []renderer.Control {
	th, err := r.handle(h)
	if err != nil {
		return nil
	}
	th.mu.Lock()
	defer th.mu.Unlock()
	return slices.Clone(th.controls)
}

// handleEvent returns false when the loop should end.
func (r *Renderer) handleEvent(h *Handle, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := e.Data().(stopRequest); ok {
			return false
		}

	case *tcell.EventResize:
		h.screen.Clear()
		h.relayout()
		r.draw(h)
		h.screen.Sync()

	case *tcell.EventMouse:
		r.handleMouse(h, e)

	case *tcell.EventKey:
		return r.handleKey(h, e)
	}
	return true
}

func (r *Renderer) handleMouse(h *Handle, e *tcell.EventMouse) {
	x, y := e.Position()
	down := e.Buttons()&tcell.Button1 != 0

	h.mu.Lock()
	fire := -1
	switch {
	case down && !h.buttonDown:
		if i, ok := renderer.HitTest(h.controls, x, y); ok {
			h.pressed = i
		}
	case !down && h.buttonDown:
		if i, ok := renderer.HitTest(h.controls, x, y); ok && i == h.pressed {
			fire = i
		}
		h.pressed = -1
	}
	h.buttonDown = down
	h.mu.Unlock()

	if fire >= 0 {
		r.fire(h, fire)
	}
	r.draw(h)
}

func (r *Renderer) handleKey(h *Handle, e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	case tcell.KeyTab, tcell.KeyRight, tcell.KeyDown:
		h.moveFocus(1)
	case tcell.KeyBacktab, tcell.KeyLeft, tcell.KeyUp:
		h.moveFocus(-1)
	case tcell.KeyEnter:
		r.fireFocused(h)
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			r.fireFocused(h)
		}
	}
	r.draw(h)
	return true
}

func (r *Renderer) fireFocused(h *Handle) {
	h.mu.Lock()
	i := -1
	if h.focus >= 0 && h.focus < len(h.order) {
		i = h.order[h.focus]
	}
	h.mu.Unlock()
	if i >= 0 {
		r.fire(h, i)
	}
}

// fire runs the activator outside the handle lock so it may call back into
// the renderer.
func (r *Renderer) fire(h *Handle, i int) {
	h.mu.Lock()
	fn := h.activate
	d := h.controls[i].Descriptor
	h.mu.Unlock()

	if fn == nil {
		r.log.Warn().Str("id", d.ID()).Msg("activation with no callback registered")
		return
	}
	fn(d)
}

func (h *Handle) moveFocus(delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.order)
	if n == 0 {
		return
	}
	if h.focus < 0 {
		if delta > 0 {
			h.focus = 0
		} else {
			h.focus = n - 1
		}
		return
	}
	h.focus = ((h.focus+delta)%n + n) % n
}

// relayout recomputes control bounds for the current screen size. Focus
// follows the same control across resizes.
func (h *Handle) relayout() {
	w, ht := h.screen.Size()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.controls = renderer.Layout(h.table, h.spec, w, ht)
	if h.order == nil {
		h.order = readingOrder(h.controls)
	}
}

// readingOrder sorts control indexes top to bottom, then left to right,
// using grid regions so the order does not depend on screen size.
func readingOrder(controls []renderer.Control) []int {
	order := make([]int, len(controls))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ra, rb := controls[a].Descriptor.Region(), controls[b].Descriptor.Region()
		if ra.Top != rb.Top {
			return ra.Top - rb.Top
		}
		return ra.Left - rb.Left
	})
	return order
}

func (h *Handle) fini() {
	h.finiOnce.Do(h.screen.Fini)
}
