package terminal

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
	"github.com/dshills/keypad/internal/renderer"
)

func phoneTable(t *testing.T) *keytable.Table {
	t.Helper()
	rows := []keytable.RawDescriptor{
		{ID: "b1", Label: "1", Region: grid.NewRect(0, 0, 4, 3), Output: []byte("1")},
		{ID: "b2", Label: "2", Region: grid.NewRect(4, 0, 8, 3), Output: []byte("2")},
		{ID: "b3", Label: "3", Region: grid.NewRect(8, 0, 12, 3), Output: []byte("3")},
		{ID: "b4", Label: "4", Region: grid.NewRect(0, 3, 4, 6), Output: []byte("4")},
		{ID: "b5", Label: "5", Region: grid.NewRect(4, 3, 8, 6), Output: []byte("5")},
		{ID: "b6", Label: "6", Region: grid.NewRect(8, 3, 12, 6), Output: []byte("6")},
		{ID: "b7", Label: "7", Region: grid.NewRect(0, 6, 4, 9), Output: []byte("7")},
		{ID: "b8", Label: "8", Region: grid.NewRect(4, 6, 8, 9), Output: []byte("8")},
		{ID: "b9", Label: "9", Region: grid.NewRect(8, 6, 12, 9), Output: []byte("9")},
		{ID: "basterisk", Label: "*", Region: grid.NewRect(0, 9, 4, 12), Output: []byte("*")},
		{ID: "b0", Label: "0", Region: grid.NewRect(4, 9, 8, 12), Output: []byte("0")},
		{ID: "bhash", Label: "#", Region: grid.NewRect(8, 9, 12, 12), Output: []byte("#")},
	}
	table, err := keytable.Build(rows)
	require.NoError(t, err)
	return table
}

type recorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *recorder) activate(d keytable.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, d.ID())
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func start(t *testing.T) (*Renderer, renderer.Handle, tcell.SimulationScreen, *recorder, <-chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	r := New(WithScreen(screen))

	h, err := r.Instantiate(phoneTable(t), grid.NewSpec(12).WithAxes(3, 4))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, r.OnActivate(h, rec.activate))

	done := make(chan error, 1)
	go func() { done <- r.Run(h) }()
	return r, h, screen, rec, done
}

func wait(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func centre(c renderer.Control) (int, int) {
	b := c.Bounds
	return b.Left + b.Width()/2, b.Top + b.Height()/2
}

func TestInstantiateLaysOutEveryKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	r := New(WithScreen(screen))
	h, err := r.Instantiate(phoneTable(t), grid.NewSpec(12))
	require.NoError(t, err)

	controls := r.Controls(h)
	require.Len(t, controls, 12)

	w, ht := screen.Size()
	area := 0
	for _, c := range controls {
		area += c.Bounds.Width() * c.Bounds.Height()
	}
	assert.Equal(t, w*ht, area)
}

func TestInstantiateReportsScreenFailure(t *testing.T) {
	r := New()
	r.newScreen = func() (tcell.Screen, error) { return nil, errors.New("no tty") }

	_, err := r.Instantiate(phoneTable(t), grid.NewSpec(12))
	var ierr *renderer.RenderInitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "screen", ierr.Element)
}

func TestClickActivatesKeyUnderPointer(t *testing.T) {
	r, h, screen, rec, done := start(t)
	controls := r.Controls(h)

	x, y := centre(controls[4])
	screen.InjectMouse(x, y, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(x, y, tcell.ButtonNone, tcell.ModNone)

	// Press on one key and release on another: no activation.
	x1, y1 := centre(controls[0])
	x2, y2 := centre(controls[1])
	screen.InjectMouse(x1, y1, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(x2, y2, tcell.ButtonNone, tcell.ModNone)

	x, y = centre(controls[11])
	screen.InjectMouse(x, y, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(x, y, tcell.ButtonNone, tcell.ModNone)

	r.Stop(h)
	wait(t, done)
	assert.Equal(t, []string{"b5", "bhash"}, rec.got())
}

func TestKeyboardFocusActivation(t *testing.T) {
	r, h, screen, rec, done := start(t)

	// The first Tab focuses b1 in reading order; two more land on b3.
	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyTab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyBacktab, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	r.Stop(h)
	wait(t, done)
	assert.Equal(t, []string{"b3", "b2"}, rec.got())
}

func TestCtrlCEndsRun(t *testing.T) {
	_, _, screen, rec, done := start(t)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	wait(t, done)
	assert.Empty(t, rec.got())
}

func TestForeignHandle(t *testing.T) {
	r := New(WithScreen(tcell.NewSimulationScreen("UTF-8")))
	assert.ErrorIs(t, r.OnActivate(foreign{}, func(keytable.Descriptor) {}), renderer.ErrForeignHandle)
	assert.ErrorIs(t, r.Run(foreign{}), renderer.ErrForeignHandle)
	assert.Nil(t, r.Controls(foreign{}))
}

type foreign struct{ renderer.BaseHandle }

func TestReadingOrder(t *testing.T) {
	table := phoneTable(t)
	controls := renderer.Layout(table, grid.NewSpec(12), 12, 12)
	order := readingOrder(controls)

	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = controls[idx].Descriptor.ID()
	}
	assert.Equal(t, []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8", "b9", "basterisk", "b0", "bhash"}, ids)
}
