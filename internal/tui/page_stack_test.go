package tui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(pages ...*stubPage) *PageStack {
	ps := NewPageStack(pages[0], component.NewSharedState())
	for _, p := range pages[1:] {
		ps.Push(p)
	}
	return ps
}

func TestPageStackEscapePopsButKeepsRoot(t *testing.T) {
	root, child := &stubPage{name: "root"}, &stubPage{name: "child"}
	ps := newTestStack(root, child)
	ctx := context.Background()

	require.NoError(t, ps.HandleEvent(ctx, key(tcell.KeyEscape), nil))
	assert.Equal(t, 1, ps.Depth())
	assert.True(t, child.stopped)
	assert.Len(t, child.seen, 1)

	require.NoError(t, ps.HandleEvent(ctx, key(tcell.KeyEscape), nil))
	assert.Equal(t, 1, ps.Depth())
	assert.Same(t, root, ps.Top())
}

func TestPageStackEscIgnoresSuppressPop(t *testing.T) {
	root := &stubPage{name: "root"}
	child := &stubPage{name: "child", results: []component.HandleResult{
		{EscIgnores: 1}, // a popup opens
		{},              // Escape closes it
	}}
	ps := newTestStack(root, child)
	ctx := context.Background()

	require.NoError(t, ps.HandleEvent(ctx, char('x'), nil))
	assert.Equal(t, 1, ps.PendingEscIgnores())

	require.NoError(t, ps.HandleEvent(ctx, key(tcell.KeyEscape), nil))
	assert.Equal(t, 2, ps.Depth(), "escape consumed by the popup")
	assert.Zero(t, ps.PendingEscIgnores())

	require.NoError(t, ps.HandleEvent(ctx, key(tcell.KeyEscape), nil))
	assert.Equal(t, 1, ps.Depth())
}

func TestPageStackBackgroundEventsKeepPendingIgnores(t *testing.T) {
	child := &stubPage{name: "child", results: []component.HandleResult{{EscIgnores: 1}}}
	ps := newTestStack(&stubPage{name: "root"}, child)
	ctx := context.Background()

	require.NoError(t, ps.HandleEvent(ctx, char('x'), nil))
	require.NoError(t, ps.HandleEvent(ctx, events.Tick{}, nil))
	assert.Equal(t, 1, ps.PendingEscIgnores())

	require.NoError(t, ps.HandleEvent(ctx, key(tcell.KeyEscape), nil))
	assert.Equal(t, 2, ps.Depth())
}

func TestPageStackAppliesPopsThenInserts(t *testing.T) {
	a, b := &stubPage{name: "a"}, &stubPage{name: "b"}
	child := &stubPage{name: "child", results: []component.HandleResult{
		{PagePops: 1, PageInserts: []component.Component{a, b}},
	}}
	ps := newTestStack(&stubPage{name: "root"}, child)

	require.NoError(t, ps.HandleEvent(context.Background(), key(tcell.KeyEnter), nil))
	assert.Equal(t, []string{"root", "a", "b"}, ps.Crumbs())
	assert.Same(t, b, ps.Top())
}

func TestPageStackPopsNeverRemoveRoot(t *testing.T) {
	ps := newTestStack(&stubPage{name: "root"}, &stubPage{name: "one"}, &stubPage{name: "two"})

	require.NoError(t, ps.Apply(component.HandleResult{PagePops: 10}))
	assert.Equal(t, []string{"root"}, ps.Crumbs())
	assert.Nil(t, ps.Pop())
}

func TestPageStackReloadOrder(t *testing.T) {
	root, child := &stubPage{name: "root"}, &stubPage{name: "child"}
	ps := newTestStack(root, child)

	var order []string
	ps.OnRefresh(func() error {
		order = append(order, "refresh")
		assert.Zero(t, root.reloads)
		return nil
	})

	require.NoError(t, ps.Apply(component.HandleResult{Reload: true}))
	assert.Equal(t, []string{"refresh"}, order)
	assert.Equal(t, 1, root.reloads)
	assert.Equal(t, 1, child.reloads)
}

func TestPageStackReloadJoinsErrors(t *testing.T) {
	root := &stubPage{name: "root", reloadErr: errStub}
	child := &stubPage{name: "child"}
	ps := newTestStack(root, child)

	err := ps.ReloadAll()
	assert.ErrorIs(t, err, errStub)
	assert.Equal(t, 1, child.reloads)
}

func TestPageStackMergedReloadFromComposite(t *testing.T) {
	left := component.HandleResult{}
	right := component.HandleResult{Reload: true}
	root := &stubPage{name: "root", results: []component.HandleResult{component.MergeAll(left, right)}}
	ps := newTestStack(root)

	require.NoError(t, ps.HandleEvent(context.Background(), key(tcell.KeyEnter), nil))
	assert.Equal(t, 1, root.reloads)
}

func TestPageStackRefreshAssetsHook(t *testing.T) {
	ps := newTestStack(&stubPage{name: "root"})
	called := false
	ps.OnRefreshAssets(func() { called = true })

	require.NoError(t, ps.Apply(component.HandleResult{RefreshAssets: true}))
	assert.True(t, called)
}

func TestPageStackWrapsPageErrors(t *testing.T) {
	ps := newTestStack(&stubPage{name: "root", err: errStub})

	err := ps.HandleEvent(context.Background(), key(tcell.KeyEnter), nil)
	assert.ErrorIs(t, err, errStub)
	assert.Contains(t, err.Error(), "root")
}

func TestPageStackOnChange(t *testing.T) {
	ps := newTestStack(&stubPage{name: "root"})
	changes := 0
	ps.OnChange(func() { changes++ })

	ps.Push(&stubPage{name: "child"})
	ps.Pop()
	ps.Pop()
	assert.Equal(t, 2, changes)
}

func TestPageStackReloadsInsertedPages(t *testing.T) {
	root := &stubPage{name: "root"}
	ps := newTestStack(root)
	child := &stubPage{name: "child", reloadErr: errStub}

	err := ps.Apply(component.HandleResult{PageInserts: []component.Component{child}})
	assert.ErrorIs(t, err, errStub)
	assert.Equal(t, 1, child.reloads)
	assert.Zero(t, root.reloads)
	assert.Same(t, child, ps.Top())
}
