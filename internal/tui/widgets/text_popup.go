package widgets

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/mattn/go-runewidth"
)

const dismissHint = "press ESC to dismiss"

// TextPopup is a centered, scrollable message overlay. It stays on screen
// until Escape is pressed; while shown it asks the page stack to ignore the
// next Escape.
type TextPopup struct {
	title  string
	text   string
	scroll int
}

func NewTextPopup(title string) *TextPopup {
	return &TextPopup{title: title}
}

// SetText shows the popup with text.
func (p *TextPopup) SetText(text string) {
	p.text = text
	p.scroll = 0
}

// Clear hides the popup.
func (p *TextPopup) Clear() {
	p.text = ""
	p.scroll = 0
}

func (p *TextPopup) IsShown() bool {
	return p.text != ""
}

func (p *TextPopup) Text() string {
	return p.text
}

// HandleEvent scrolls or dismisses the popup. Events are only consumed
// while it is shown; the returned ok reports that.
func (p *TextPopup) HandleEvent(ev events.Event) (result component.HandleResult, ok bool) {
	if !p.IsShown() {
		return result, false
	}

	k, isKey := events.KeyOf(ev)
	if !isKey {
		return result, false
	}

	switch k.Key() {
	case tcell.KeyUp:
		p.scroll = max(p.scroll-1, 0)
	case tcell.KeyDown:
		p.scroll++
	case tcell.KeyEscape:
		p.Clear()
	}

	if p.IsShown() {
		result.EscIgnores = 1
	}

	return result, true
}

// Render draws the popup centered in area.
func (p *TextPopup) Render(screen tcell.Screen, area component.Rect, th *theme.Theme) {
	if !p.IsShown() {
		return
	}

	width := max(runewidth.StringWidth(dismissHint), runewidth.StringWidth(p.title)) + 4
	for _, line := range strings.Split(p.text, "\n") {
		width = max(width, runewidth.StringWidth(line)+4)
	}
	width = min(width, area.Width*4/5, area.Width)

	lines := wrapRunes(p.text, width-4)
	height := min(len(lines)+2, area.Height*4/5, area.Height)

	box := area.Centered(width, height)
	if box.IsEmpty() {
		return
	}

	c := newCanvas(screen, box)
	c.fill(box, th.Base())
	c.box(box, th.Border(true), th.BorderStyle(true), p.title)
	c.boxBottomTitle(box, dismissHint, th.Placeholder())

	inner := box.Margin(2, 1)
	scroll := min(p.scroll, max(len(lines)-inner.Height, 0))
	for i := 0; i < inner.Height && scroll+i < len(lines); i++ {
		c.text(inner.X, inner.Y+i, inner.Width, lines[scroll+i], th.Base())
	}
}
