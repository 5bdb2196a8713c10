// Package component defines the protocol shared by every interactive widget
// and page: consume one event, report the navigation side effects as a
// HandleResult, and render into a screen region.
package component

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/events"
)

// Component is a page or composite widget owned by the page stack.
type Component interface {
	// Name identifies the component in breadcrumbs and logs.
	Name() string

	// HandleEvent consumes one event. ctx is cancelled when the application
	// shuts down; work spawned by the component must honor it. tx publishes
	// follow-up events onto the UI loop.
	HandleEvent(ctx context.Context, ev events.Event, tx chan<- events.Event) (HandleResult, error)

	// Render draws into area and returns the region actually occupied.
	Render(screen tcell.Screen, area Rect, shared *SharedState) Rect
}

// Reloader is implemented by components whose backing data is derived from
// shared state and must be recomputed when a result requests a reload.
type Reloader interface {
	Reload(shared *SharedState) error
}

// Stopper is implemented by components that own background work which must
// end when the component leaves the stack.
type Stopper interface {
	Stop()
}

// HandleResult reports the side effects of one handled event.
type HandleResult struct {
	// Number of pages to go back, usually 1.
	PagePops int
	// Pages to push, in order.
	PageInserts []Component
	// Number of upcoming Escape presses the page stack must not treat as
	// "go back", because the component consumes them itself (an open popup).
	EscIgnores int
	// The external state changed and pages must recompute their data.
	Reload bool
	// Asset balances should be fetched again.
	RefreshAssets bool
}

// Merge folds o into r: counts add up, inserts are appended in order and
// flags are OR-ed.
func (r *HandleResult) Merge(o HandleResult) {
	r.PagePops += o.PagePops
	r.PageInserts = append(r.PageInserts, o.PageInserts...)
	r.EscIgnores += o.EscIgnores
	r.Reload = r.Reload || o.Reload
	r.RefreshAssets = r.RefreshAssets || o.RefreshAssets
}

// MergeAll merges results left to right.
func MergeAll(results ...HandleResult) HandleResult {
	var out HandleResult
	for _, r := range results {
		out.Merge(r)
	}

	return out
}

// IsZero reports whether the result requests nothing.
func (r HandleResult) IsZero() bool {
	return r.PagePops == 0 && len(r.PageInserts) == 0 && r.EscIgnores == 0 && !r.Reload && !r.RefreshAssets
}
