package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
)

// Cursor is a list position kept inside [0, count).
type Cursor struct {
	current int
}

func (c *Cursor) Current() int {
	return c.current
}

// Set moves the cursor, clamped to count entries.
func (c *Cursor) Set(i, count int) {
	c.current = min(max(i, 0), max(count-1, 0))
}

// Handle moves the cursor on Up / Down and reports whether it moved.
func (c *Cursor) Handle(ev events.Event, count int) bool {
	prev := c.current
	switch {
	case events.IsKeyPressed(ev, tcell.KeyUp):
		c.Set(c.current-1, count)
	case events.IsKeyPressed(ev, tcell.KeyDown):
		c.Set(c.current+1, count)
	default:
		c.Set(c.current, count)
	}

	return c.current != prev
}

// Select draws a vertical list with the cursor entry highlighted.
type Select struct {
	Items []string
	Focus bool
}

// Render draws the list inside area and returns the rect it used.
func (s Select) Render(screen tcell.Screen, area component.Rect, cursor int, th *theme.Theme) component.Rect {
	c := newCanvas(screen, area)
	offset := max(cursor-area.Height+1, 0)

	rows := 0
	for i := offset; i < len(s.Items) && rows < area.Height; i++ {
		style := th.Base()
		prefix := "  "
		if i == cursor {
			prefix = "> "
			if s.Focus {
				style = th.Select()
			}
		}
		y := area.Y + rows
		c.fill(component.Rect{X: area.X, Y: y, Width: area.Width, Height: 1}, style)
		c.text(area.X, y, area.Width, prefix+s.Items[i], style)
		rows++
	}

	return component.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: rows}
}
