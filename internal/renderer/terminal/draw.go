package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keypad/internal/renderer"
)

// Styles are the colours used to draw keys.
type Styles struct {
	Background tcell.Style
	Key        tcell.Style
	Focused    tcell.Style
	Pressed    tcell.Style
}

// DefaultStyles returns the default key colours.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Background: base,
		Key:        base.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray),
		Focused:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorLightSkyBlue).Bold(true),
		Pressed:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true),
	}
}

func (r *Renderer) draw(h *Handle) {
	h.mu.Lock()
	focused := -1
	if h.focus >= 0 && h.focus < len(h.order) {
		focused = h.order[h.focus]
	}
	pressed := h.pressed
	controls := h.controls
	h.mu.Unlock()

	h.screen.Fill(' ', r.styles.Background)
	for i, c := range controls {
		style := r.styles.Key
		switch i {
		case pressed:
			style = r.styles.Pressed
		case focused:
			style = r.styles.Focused
		}
		drawControl(h.screen, c, style)
	}
	h.screen.Show()
}

func drawControl(s tcell.Screen, c renderer.Control, style tcell.Style) {
	b := c.Bounds
	if b.IsEmpty() {
		return
	}
	for y := b.Top; y < b.Bottom; y++ {
		for x := b.Left; x < b.Right; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}

	if b.Width() >= 2 && b.Height() >= 2 {
		right, bottom := b.Right-1, b.Bottom-1
		for x := b.Left + 1; x < right; x++ {
			s.SetContent(x, b.Top, tcell.RuneHLine, nil, style)
			s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
		}
		for y := b.Top + 1; y < bottom; y++ {
			s.SetContent(b.Left, y, tcell.RuneVLine, nil, style)
			s.SetContent(right, y, tcell.RuneVLine, nil, style)
		}
		s.SetContent(b.Left, b.Top, tcell.RuneULCorner, nil, style)
		s.SetContent(right, b.Top, tcell.RuneURCorner, nil, style)
		s.SetContent(b.Left, bottom, tcell.RuneLLCorner, nil, style)
		s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
	}

	label := c.Descriptor.Label()
	inner := b
	if b.Width() > 2 && b.Height() > 2 {
		inner.Left++
		inner.Right--
		inner.Top++
		inner.Bottom--
	}
	drawLabel(s, inner.Left, inner.Top+inner.Height()/2, inner.Width(), label, style)
}

// drawLabel centers text on row y within width cells, truncating by
// grapheme cluster when it does not fit.
func drawLabel(s tcell.Screen, left, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	textWidth := uniseg.StringWidth(text)
	x := left
	if textWidth < width {
		x += (width - textWidth) / 2
	}
	end := left + width

	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if x+w > end {
			return
		}
		runes := []rune(cluster)
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
