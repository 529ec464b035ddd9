package layout

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/keytable"
)

// DiagramOptions controls how many characters a grid unit occupies.
type DiagramOptions struct {
	ColumnsPerUnit int
	RowsPerUnit    int
}

// DefaultDiagramOptions returns a scale that keeps most layouts within 80
// columns.
func DefaultDiagramOptions(spec grid.Spec) DiagramOptions {
	opts := DiagramOptions{ColumnsPerUnit: 1, RowsPerUnit: 1}
	if spec.Denominator > 0 && spec.Denominator <= 24 {
		opts.ColumnsPerUnit = 3
	}
	return opts
}

// Diagram draws the layout as ASCII boxes with centred labels and grid
// coordinates along the top and right edges. Keys are drawn in declaration
// order, so a later key covers an earlier one it overlaps.
func Diagram(table *keytable.Table, spec grid.Spec, opts DiagramOptions) string {
	if spec.Denominator <= 0 {
		return ""
	}
	cw := max(opts.ColumnsPerUnit, 1)
	rh := max(opts.RowsPerUnit, 1)
	width := spec.Denominator*cw + 1
	height := spec.Denominator*rh + 1

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
	}
	put := func(x, y int, r rune) {
		if y >= 0 && y < height && x >= 0 && x < width {
			canvas[y][x] = r
		}
	}

	xEdges := []int{0, spec.Denominator}
	yEdges := []int{0, spec.Denominator}

	for d := range table.All() {
		r := d.Region()
		if r.IsDegenerate() {
			continue
		}
		xEdges = append(xEdges, r.Left, r.Right)
		yEdges = append(yEdges, r.Top, r.Bottom)

		x0, y0 := r.Left*cw, r.Top*rh
		x1, y1 := r.Right*cw, r.Bottom*rh
		for y := y0 + 1; y < y1; y++ {
			for x := x0 + 1; x < x1; x++ {
				put(x, y, ' ')
			}
			put(x0, y, '|')
			put(x1, y, '|')
		}
		for x := x0 + 1; x < x1; x++ {
			put(x, y0, '-')
			put(x, y1, '-')
		}
		put(x0, y0, '+')
		put(x1, y0, '+')
		put(x0, y1, '+')
		put(x1, y1, '+')

		if y1-y0 < 2 {
			continue
		}
		label := fitLabel(d.Label(), x1-x0-1)
		lx := x0 + 1 + (x1-x0-1-uniseg.StringWidth(label))/2
		for _, ch := range label {
			put(lx, (y0+y1)/2, ch)
			lx++
		}
	}

	slices.Sort(xEdges)
	xEdges = slices.Compact(xEdges)
	slices.Sort(yEdges)
	yEdges = slices.Compact(yEdges)

	var b strings.Builder

	header := []rune(strings.Repeat(" ", width+1))
	for _, e := range xEdges {
		label := strconv.Itoa(e)
		start := e*cw - len(label) + 1
		for i, ch := range label {
			if at := start + i; at >= 0 && at < len(header) {
				header[at] = ch
			}
		}
	}
	b.WriteString(strings.TrimRight(string(header), " "))
	b.WriteByte('\n')

	for y, row := range canvas {
		line := strings.TrimRight(string(row), " ")
		if y%rh == 0 && slices.Contains(yEdges, y/rh) {
			line += strings.Repeat(" ", width-len([]rune(line))+1) + strconv.Itoa(y/rh)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// fitLabel trims a label to at most width terminal cells.
func fitLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(label) <= width {
		return label
	}
	var b strings.Builder
	used := 0
	state := -1
	rest := label
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}
