package widgets

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// popupMaxRows caps the number of candidates shown at once.
const popupMaxRows = 8

// FilterSelectPopup is a filterable list overlay bound to a SelectInput.
// While open it consumes every key press of its form.
type FilterSelectPopup struct {
	title      string
	candidates []string

	open     bool
	filter   string
	filtered []string
	cursor   int
}

// NewFilterSelectPopup returns a closed popup offering candidates.
func NewFilterSelectPopup(title string, candidates []string) *FilterSelectPopup {
	p := &FilterSelectPopup{title: title}
	p.SetCandidates(candidates)

	return p
}

// SetCandidates replaces the candidate list and refilters.
func (p *FilterSelectPopup) SetCandidates(candidates []string) {
	p.candidates = append([]string(nil), candidates...)
	p.refilter()
}

// Candidates returns the full candidate list.
func (p *FilterSelectPopup) Candidates() []string {
	return append([]string(nil), p.candidates...)
}

// Open shows the popup with an empty filter.
func (p *FilterSelectPopup) Open() {
	p.OpenWithFilter("")
}

// OpenWithFilter shows the popup with the filter seeded with query.
func (p *FilterSelectPopup) OpenWithFilter(query string) {
	p.open = true
	p.filter = query
	p.cursor = 0
	p.refilter()
}

// Close hides the popup without selecting.
func (p *FilterSelectPopup) Close() {
	p.open = false
}

func (p *FilterSelectPopup) IsOpen() bool {
	return p.open
}

// Filter is the active query.
func (p *FilterSelectPopup) Filter() string {
	return p.filter
}

// Filtered returns the candidates matching the filter, in candidate order.
func (p *FilterSelectPopup) Filtered() []string {
	return append([]string(nil), p.filtered...)
}

// Highlighted returns the highlighted candidate, if any.
func (p *FilterSelectPopup) Highlighted() (string, bool) {
	if len(p.filtered) == 0 {
		return "", false
	}

	return p.filtered[p.cursor], true
}

// HandleEvent applies a key press while the popup is open. Enter commits the
// highlighted candidate through onSelect and closes the popup; Escape
// closes it without selecting. Closed popups ignore events.
func (p *FilterSelectPopup) HandleEvent(ev events.Event, onSelect func(string)) {
	if !p.open {
		return
	}

	k, ok := events.KeyOf(ev)
	if !ok {
		return
	}

	switch {
	case events.IsPrintable(k):
		p.filter += string(k.Rune())
		p.cursor = 0
		p.refilter()
	case events.IsBackspace(k):
		if r := []rune(p.filter); len(r) > 0 {
			p.filter = string(r[:len(r)-1])
			p.cursor = 0
			p.refilter()
		}
	default:
		switch k.Key() {
		case tcell.KeyUp:
			p.cursor = max(p.cursor-1, 0)
		case tcell.KeyDown:
			p.cursor = min(p.cursor+1, max(len(p.filtered)-1, 0))
		case tcell.KeyEnter:
			selected, ok := p.Highlighted()
			if !ok {
				return
			}
			p.open = false
			if onSelect != nil {
				onSelect(selected)
			}
		case tcell.KeyEscape:
			p.open = false
		}
	}
}

func (p *FilterSelectPopup) refilter() {
	query := strings.TrimSpace(p.filter)
	if query == "" {
		p.filtered = append(p.filtered[:0], p.candidates...)
	} else {
		p.filtered = p.filtered[:0]
		for _, c := range p.candidates {
			if fuzzy.MatchNormalizedFold(query, c) {
				p.filtered = append(p.filtered, c)
			}
		}
	}

	if p.cursor >= len(p.filtered) {
		p.cursor = max(len(p.filtered)-1, 0)
	}
}

// height is the number of rows the open popup occupies: borders, the
// filter line and the visible candidates.
func (p *FilterSelectPopup) height() int {
	return min(max(len(p.filtered), 1), popupMaxRows) + 3
}

// Render draws the popup anchored to the field it belongs to: below the
// field when it fits inside bounds, above it otherwise.
func (p *FilterSelectPopup) Render(screen tcell.Screen, anchor, bounds component.Rect, th *theme.Theme) {
	if !p.open {
		return
	}

	h := p.height()
	area := component.Rect{X: anchor.X, Y: anchor.Bottom(), Width: anchor.Width, Height: h}
	if area.Bottom() > bounds.Bottom() && anchor.Y-h >= bounds.Y {
		area.Y = anchor.Y - h
	}
	area = area.Intersect(bounds)
	if area.IsEmpty() {
		return
	}

	c := newCanvas(screen, area)
	c.fill(area, th.Base())
	c.box(area, th.Border(true), th.BorderStyle(true), p.title)

	inner := area.Inner()
	c.text(inner.X, inner.Y, inner.Width, "> "+p.filter, th.Base())

	rows := inner.Height - 1
	if rows <= 0 {
		return
	}
	if len(p.filtered) == 0 {
		c.text(inner.X, inner.Y+1, inner.Width, "no matches", th.Placeholder())
		return
	}

	offset := max(p.cursor-rows+1, 0)
	for i := 0; i < rows && offset+i < len(p.filtered); i++ {
		idx := offset + i
		style := th.Base()
		if idx == p.cursor {
			style = th.Select()
			c.fill(component.Rect{X: inner.X, Y: inner.Y + 1 + i, Width: inner.Width, Height: 1}, style)
		}
		c.text(inner.X+1, inner.Y+1+i, inner.Width-1, p.filtered[idx], style)
	}
}
