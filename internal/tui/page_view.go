package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/rivo/tview"
)

// pageView adapts a Component to a tview primitive so tview.Pages can lay
// it out. Input never reaches it: the application routes keys through the
// page stack.
type pageView struct {
	*tview.Box
	comp   component.Component
	shared *component.SharedState
}

func newPageView(comp component.Component, shared *component.SharedState) *pageView {
	return &pageView{Box: tview.NewBox(), comp: comp, shared: shared}
}

// Draw fills the page background and lets the component render inside.
func (v *pageView) Draw(screen tcell.Screen) {
	v.SetBackgroundColor(v.shared.Theme.BgColor)
	v.DrawForSubclass(screen, v)

	x, y, width, height := v.GetInnerRect()
	v.comp.Render(screen, component.Rect{X: x, Y: y, Width: width, Height: height}, v.shared)
}
