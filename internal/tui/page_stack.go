package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/logger"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/google/uuid"
	"github.com/rivo/tview"
)

type stackEntry struct {
	id   string
	comp component.Component
}

// PageStack is the navigation history. The bottom page is the root and is
// never popped. It is only used from the UI goroutine.
type PageStack struct {
	pages  *tview.Pages
	stack  []stackEntry
	shared *component.SharedState

	// Escape presses still to be ignored, as requested by the last result.
	pendingEscIgnores int

	onChange        func()
	refresh         func() error
	onRefreshAssets func()
}

// NewPageStack creates a stack holding root.
func NewPageStack(root component.Component, shared *component.SharedState) *PageStack {
	ps := &PageStack{
		pages:  tview.NewPages(),
		shared: shared,
	}
	ps.Push(root)

	return ps
}

// Pages returns the underlying tview.Pages
func (ps *PageStack) Pages() *tview.Pages {
	return ps.pages
}

// OnChange registers a hook run after every push or pop.
func (ps *PageStack) OnChange(fn func()) {
	ps.onChange = fn
}

// OnRefresh registers a hook run before pages reload, to resync the shared
// state from its sources.
func (ps *PageStack) OnRefresh(fn func() error) {
	ps.refresh = fn
}

// OnRefreshAssets registers the hook run when a result asks for new asset
// balances.
func (ps *PageStack) OnRefreshAssets(fn func()) {
	ps.onRefreshAssets = fn
}

// Push adds comp on top of the stack and shows it.
func (ps *PageStack) Push(comp component.Component) {
	id := uuid.NewString()
	ps.stack = append(ps.stack, stackEntry{id: id, comp: comp})

	ps.pages.AddPage(id, newPageView(comp, ps.shared), true, true)
	ps.pages.SwitchToPage(id)
	logger.Log.Debugf("Pushed page %s", comp.Name())

	ps.changed()
}

// Pop removes the top page unless it is the root, and returns it.
func (ps *PageStack) Pop() component.Component {
	if len(ps.stack) <= 1 {
		return nil
	}

	top := ps.stack[len(ps.stack)-1]
	ps.stack = ps.stack[:len(ps.stack)-1]

	if s, ok := top.comp.(component.Stopper); ok {
		s.Stop()
	}
	ps.pages.RemovePage(top.id)
	ps.pages.SwitchToPage(ps.stack[len(ps.stack)-1].id)
	logger.Log.Debugf("Popped page %s", top.comp.Name())

	ps.changed()

	return top.comp
}

func (ps *PageStack) changed() {
	if ps.onChange != nil {
		ps.onChange()
	}
}

// Top returns the visible page.
func (ps *PageStack) Top() component.Component {
	return ps.stack[len(ps.stack)-1].comp
}

// Depth returns the current stack depth
func (ps *PageStack) Depth() int {
	return len(ps.stack)
}

// PendingEscIgnores is the number of upcoming Escape presses that will not
// pop a page.
func (ps *PageStack) PendingEscIgnores() int {
	return ps.pendingEscIgnores
}

// Crumbs returns the page names from the root up.
func (ps *PageStack) Crumbs() []string {
	crumbs := make([]string, len(ps.stack))
	for i, e := range ps.stack {
		crumbs[i] = e.comp.Name()
	}

	return crumbs
}

// HandleEvent delivers ev to the top page and applies its result. An Escape
// press pops the page unless a previous result asked for it to be ignored.
func (ps *PageStack) HandleEvent(ctx context.Context, ev events.Event, tx chan<- events.Event) error {
	isEsc := events.IsKeyPressed(ev, tcell.KeyEscape)
	escPop := isEsc && ps.pendingEscIgnores == 0

	result, err := ps.Top().HandleEvent(ctx, ev, tx)
	if err != nil {
		return fmt.Errorf("%s: %w", ps.Top().Name(), err)
	}

	// Only key handling reports whether the page still wants Escape.
	if _, isKey := ev.(events.Input); isKey {
		ps.pendingEscIgnores = result.EscIgnores
	}
	if escPop {
		result.PagePops++
	}

	return ps.Apply(result)
}

// Apply performs the navigation and reload requests of result. Inserted
// pages are reloaded once so they start from the current shared state.
func (ps *PageStack) Apply(result component.HandleResult) error {
	var errs []error

	for range result.PagePops {
		if ps.Pop() == nil {
			break
		}
	}
	for _, page := range result.PageInserts {
		ps.Push(page)
		if r, ok := page.(component.Reloader); ok {
			if err := r.Reload(ps.shared); err != nil {
				errs = append(errs, fmt.Errorf("reload %s: %w", page.Name(), err))
			}
		}
	}

	if result.RefreshAssets && ps.onRefreshAssets != nil {
		ps.onRefreshAssets()
	}

	if result.Reload {
		errs = append(errs, ps.ReloadAll())
	}

	return errors.Join(errs...)
}

// ReloadAll resyncs the shared state and reloads every live page.
func (ps *PageStack) ReloadAll() error {
	var errs []error

	if ps.refresh != nil {
		if err := ps.refresh(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, e := range ps.stack {
		if r, ok := e.comp.(component.Reloader); ok {
			if err := r.Reload(ps.shared); err != nil {
				errs = append(errs, fmt.Errorf("reload %s: %w", e.comp.Name(), err))
			}
		}
	}

	return errors.Join(errs...)
}

// Stop stops every page that owns background work.
func (ps *PageStack) Stop() {
	for i := len(ps.stack) - 1; i >= 0; i-- {
		if s, ok := ps.stack[i].comp.(component.Stopper); ok {
			s.Stop()
		}
	}
}
