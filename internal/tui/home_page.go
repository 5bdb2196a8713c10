package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/widgets"
)

const sidebarWidth = 32

const helpText = `Global
  Ctrl+C    Quit
  Ctrl+R    Reload settings
  Esc       Go back / close popup
  ?         Show this help

Menu
  Up/Down   Select an entry
  Enter     Open the entry

Forms
  Tab/Down  Next field
  Up        Previous field
  Enter     Next field, or press the focused button
  Space     Toggle a boolean
  Type      Edit text, or filter a list field`

// HomePage is the root page: the sidebar menu next to the list of
// transfers requested in this session.
type HomePage struct {
	sidebar *Sidebar
	help    *widgets.TextPopup
}

func NewHomePage(store Store) *HomePage {
	return &HomePage{
		sidebar: NewSidebar(store),
		help:    widgets.NewTextPopup("Help"),
	}
}

func (p *HomePage) Name() string {
	return "Home"
}

func (p *HomePage) Hints() []string {
	return []string{"<Enter> Open", "<?> Help"}
}

func (p *HomePage) HandleEvent(ctx context.Context, ev events.Event, tx chan<- events.Event) (component.HandleResult, error) {
	if result, ok := p.help.HandleEvent(ev); ok {
		return result, nil
	}

	var result component.HandleResult
	if events.IsCharPressed(ev, '?') {
		p.help.SetText(helpText)
		result.EscIgnores = 1
		return result, nil
	}

	sidebar, err := p.sidebar.HandleEvent(ctx, ev, tx)
	if err != nil {
		return result, err
	}
	result.Merge(sidebar)

	return result, nil
}

func (p *HomePage) Render(screen tcell.Screen, area component.Rect, shared *component.SharedState) component.Rect {
	th := shared.Theme
	left, right := area.SplitLeft(sidebarWidth)

	p.sidebar.Render(screen, left.Margin(1, 1), shared)

	transfers := make([]string, 0, len(shared.PendingTransfers))
	for i := len(shared.PendingTransfers) - 1; i >= 0; i-- {
		t := shared.PendingTransfers[i]
		transfers = append(transfers, fmt.Sprintf("%s %s -> %s", t.Amount, t.Unit, t.To))
	}
	if len(transfers) == 0 {
		transfers = append(transfers, "No transfers requested yet")
	}

	panel := right.Margin(1, 1)
	widgets.Select{Items: []string{"Requested transfers"}}.Render(screen, panel, -1, th)
	widgets.Select{Items: transfers}.Render(screen, panel.Below(2), -1, th)

	p.help.Render(screen, area, th)

	return area
}
