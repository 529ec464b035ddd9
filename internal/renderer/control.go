package renderer

import (
	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
)

// Control is one instantiated key: its descriptor and where it landed on
// the canvas.
type Control struct {
	Descriptor keytable.Descriptor
	Bounds     grid.ScreenRect
}

// Layout scales every descriptor of the table onto a width x height canvas.
// Controls are returned in declaration order.
func Layout(table *keytable.Table, spec grid.Spec, width, height int) []Control {
	controls := make([]Control, 0, table.Len())
	for d := range table.All() {
		controls = append(controls, Control{
			Descriptor: d,
			Bounds:     spec.Scale(d.Region(), width, height),
		})
	}
	return controls
}

// HitTest returns the index of the control under (x, y). When controls
// overlap, the one declared last wins, matching the drawing order.
func HitTest(controls []Control, x, y int) (int, bool) {
	for i := len(controls) - 1; i >= 0; i-- {
		if controls[i].Bounds.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}
