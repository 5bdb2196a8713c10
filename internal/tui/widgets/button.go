package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/mattn/go-runewidth"
)

// buttonHeight is the height of the drawn box; forms reserve one extra row.
const buttonHeight = 3

type buttonWidget struct {
	focus bool
	label string
}

func (b buttonWidget) render(screen tcell.Screen, area component.Rect, th *theme.Theme) {
	box := component.Rect{
		X:      area.X,
		Y:      area.Y,
		Width:  runewidth.StringWidth(b.label) + 2,
		Height: buttonHeight,
	}
	c := newCanvas(screen, box.Intersect(area))

	style := th.Base()
	if b.focus {
		style = th.ButtonFocused()
	}
	c.fill(box, style)
	c.box(box, th.Border(false), style, "")
	c.text(box.X+1, box.Y+1, box.Width-2, b.label, style)
}
