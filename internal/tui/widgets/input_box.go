package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/mattn/go-runewidth"
)

// inputBox draws every text-like field: a bordered box with the label in
// the top edge and the value wrapped inside.
type inputBox struct {
	focus     bool
	label     string
	text      string
	emptyText string
	currency  string
}

func (b inputBox) textWidth(area component.Rect) int {
	w := area.Width - 2
	if b.currency != "" {
		w -= runewidth.StringWidth(b.currency) + 1
	}

	return max(w, 1)
}

func (b inputBox) shown() string {
	if b.text == "" {
		return b.emptyText
	}

	return b.text
}

// heightUsed is the wrapped line count plus the two border rows.
func (b inputBox) heightUsed(area component.Rect) int {
	return len(wrapRunes(b.shown(), b.textWidth(area))) + 2
}

func (b inputBox) render(screen tcell.Screen, area component.Rect, textCursor int, th *theme.Theme) {
	h := b.heightUsed(area)
	box := component.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: h}
	c := newCanvas(screen, box.Intersect(area))

	c.box(box, th.Border(b.focus), th.BorderStyle(b.focus), b.label)

	inner := box.Inner()
	width := b.textWidth(area)
	style := th.Base()
	if b.text == "" {
		style = th.Placeholder()
	}
	lines := wrapRunes(b.shown(), width)
	for i, line := range lines {
		c.text(inner.X, inner.Y+i, width, line, style)
	}

	if b.currency != "" {
		cw := runewidth.StringWidth(b.currency)
		c.text(inner.Right()-cw, inner.Y, cw, b.currency, th.Placeholder())
	}

	if b.focus {
		line, col := locateCursor(b.text, width, textCursor)
		if line >= len(lines) {
			line, col = len(lines)-1, width-1
		}
		r := ' '
		if b.text != "" {
			r = runeAtCell(lines[line], col)
		}
		c.set(inner.X+col, inner.Y+line, r, th.Cursor())
	}
}

// runeAtCell returns the rune drawn at cell col of line, or a space past the
// end.
func runeAtCell(line string, col int) rune {
	used := 0
	for _, r := range line {
		if used == col {
			return r
		}
		used += runewidth.RuneWidth(r)
		if used > col {
			return ' '
		}
	}

	return ' '
}
