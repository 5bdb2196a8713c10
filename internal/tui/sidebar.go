package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/widgets"
)

// Sidebar entries, in display order.
const (
	sidebarSend = iota
	sidebarTestnet
	sidebarSettings
	sidebarEntries
)

// Sidebar is the menu of the home page, topped by a price and portfolio
// summary.
type Sidebar struct {
	store  Store
	cursor widgets.Cursor
}

func NewSidebar(store Store) *Sidebar {
	return &Sidebar{store: store}
}

func (s *Sidebar) Name() string {
	return "Sidebar"
}

// Selected is the highlighted entry.
func (s *Sidebar) Selected() int {
	return s.cursor.Current()
}

func (s *Sidebar) HandleEvent(ctx context.Context, ev events.Event, tx chan<- events.Event) (component.HandleResult, error) {
	var result component.HandleResult

	s.cursor.Handle(ev, sidebarEntries)
	if !events.IsKeyPressed(ev, tcell.KeyEnter) {
		return result, nil
	}

	switch s.cursor.Current() {
	case sidebarSend:
		page, err := NewSendPage()
		if err != nil {
			return result, err
		}
		result.PageInserts = append(result.PageInserts, page)
	case sidebarTestnet:
		cfg, err := s.store.Load(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to load settings: %w", err)
		}
		cfg.TestnetMode = !cfg.TestnetMode
		if err := s.store.Save(ctx, cfg); err != nil {
			return result, fmt.Errorf("failed to save settings: %w", err)
		}
		events.TrySend(tx, events.ConfigUpdate{})

		result.Reload = true
		result.RefreshAssets = true
	case sidebarSettings:
		page, err := NewSettingsPage(ctx, s.store)
		if err != nil {
			return result, err
		}
		result.PageInserts = append(result.PageInserts, page)
	}

	return result, nil
}

func (s *Sidebar) entries(shared *component.SharedState) []string {
	testnet := "off"
	if shared.TestnetMode {
		testnet = "on"
	}

	return []string{"Send", "Testnet Mode: " + testnet, "Settings"}
}

func (s *Sidebar) summary(shared *component.SharedState) []string {
	lines := []string{"ETH Price: " + shared.PriceLabel()}
	if shared.ShowPortfolio() {
		if total, ok := shared.Portfolio(); ok {
			lines = append(lines, fmt.Sprintf("Portfolio: $%.2f", total))
		} else {
			lines = append(lines, "Portfolio: Loading...")
		}
	}

	return lines
}

func (s *Sidebar) Render(screen tcell.Screen, area component.Rect, shared *component.SharedState) component.Rect {
	th := shared.Theme

	summary := s.summary(shared)
	widgets.Select{Items: summary}.Render(screen, area, -1, th)

	menu := area.Below(len(summary) + 1)
	used := widgets.Select{Items: s.entries(shared), Focus: true}.Render(screen, menu, s.cursor.Current(), th)

	return component.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: used.Bottom() - area.Y}
}
