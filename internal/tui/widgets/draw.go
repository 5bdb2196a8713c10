package widgets

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/mattn/go-runewidth"
)

// canvas clips every write to a region so a widget can never draw outside
// the area it was given.
type canvas struct {
	screen tcell.Screen
	clip   component.Rect
}

func newCanvas(screen tcell.Screen, clip component.Rect) canvas {
	return canvas{screen: screen, clip: clip}
}

func (c canvas) set(x, y int, r rune, style tcell.Style) {
	if !c.clip.Contains(x, y) {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// text draws s starting at (x, y), at most maxWidth cells wide, and returns
// the number of cells used.
func (c canvas) text(x, y, maxWidth int, s string, style tcell.Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		c.set(x+used, y, r, style)
		if w == 2 {
			c.set(x+used+1, y, ' ', style)
		}
		used += w
	}

	return used
}

func (c canvas) fill(area component.Rect, style tcell.Style) {
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c.set(x, y, ' ', style)
		}
	}
}

// box draws a border around area with an optional title in the top edge.
func (c canvas) box(area component.Rect, set theme.BorderSet, style tcell.Style, title string) {
	if area.Width < 2 || area.Height < 2 {
		return
	}

	right, bottom := area.Right()-1, area.Bottom()-1
	for x := area.X + 1; x < right; x++ {
		c.set(x, area.Y, set.Horizontal, style)
		c.set(x, bottom, set.Horizontal, style)
	}
	for y := area.Y + 1; y < bottom; y++ {
		c.set(area.X, y, set.Vertical, style)
		c.set(right, y, set.Vertical, style)
	}
	c.set(area.X, area.Y, set.TopLeft, style)
	c.set(right, area.Y, set.TopRight, style)
	c.set(area.X, bottom, set.BottomLeft, style)
	c.set(right, bottom, set.BottomRight, style)

	if title != "" {
		c.text(area.X+1, area.Y, area.Width-2, " "+title+" ", style)
	}
}

// boxBottomTitle writes a caption into the bottom edge of a box.
func (c canvas) boxBottomTitle(area component.Rect, title string, style tcell.Style) {
	if area.Width < 4 || area.Height < 2 {
		return
	}
	c.text(area.X+1, area.Bottom()-1, area.Width-2, " "+title+" ", style)
}

// wrapRunes hard-wraps s into lines of at most width cells. Explicit
// newlines start a new line. The result always has at least one line.
func wrapRunes(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var b strings.Builder
		used := 0
		for _, r := range para {
			w := runewidth.RuneWidth(r)
			if used+w > width && used > 0 {
				lines = append(lines, b.String())
				b.Reset()
				used = 0
			}
			b.WriteRune(r)
			used += w
		}
		lines = append(lines, b.String())
	}

	return lines
}

// locateCursor maps a rune offset in s onto the line/column of its wrapped
// layout.
func locateCursor(s string, width, offset int) (line, col int) {
	if width <= 0 {
		return 0, 0
	}

	used, seen := 0, 0
	for _, r := range s {
		if seen == offset {
			break
		}
		w := runewidth.RuneWidth(r)
		if r == '\n' {
			line++
			used = 0
			seen++
			continue
		}
		if used+w > width && used > 0 {
			line++
			used = 0
		}
		used += w
		seen++
	}
	if used >= width {
		line++
		used = 0
	}

	return line, used
}
