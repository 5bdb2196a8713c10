package component

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComponent struct {
	name   string
	result HandleResult
}

func (s *stubComponent) Name() string { return s.name }

func (s *stubComponent) HandleEvent(context.Context, events.Event, chan<- events.Event) (HandleResult, error) {
	return s.result, nil
}

func (s *stubComponent) Render(_ tcell.Screen, area Rect, _ *SharedState) Rect { return area }

func TestMergeReloadIsOr(t *testing.T) {
	a := &stubComponent{name: "a", result: HandleResult{Reload: false}}
	b := &stubComponent{name: "b", result: HandleResult{Reload: true}}

	var merged HandleResult
	for _, child := range []Component{a, b} {
		r, err := child.HandleEvent(context.Background(), events.ConfigUpdate{}, nil)
		require.NoError(t, err)
		merged.Merge(r)
	}

	assert.True(t, merged.Reload)
}

func TestMergeFieldWise(t *testing.T) {
	p1 := &stubComponent{name: "p1"}
	p2 := &stubComponent{name: "p2"}
	p3 := &stubComponent{name: "p3"}

	got := MergeAll(
		HandleResult{PagePops: 1, PageInserts: []Component{p1}, EscIgnores: 1},
		HandleResult{PageInserts: []Component{p2, p3}, RefreshAssets: true},
		HandleResult{PagePops: 2, EscIgnores: 1},
	)

	assert.Equal(t, 3, got.PagePops)
	assert.Equal(t, 2, got.EscIgnores)
	assert.Equal(t, []Component{p1, p2, p3}, got.PageInserts)
	assert.False(t, got.Reload)
	assert.True(t, got.RefreshAssets)
}

func TestMergeIdentity(t *testing.T) {
	r := HandleResult{PagePops: 1, Reload: true}
	merged := MergeAll(HandleResult{}, r, HandleResult{})
	assert.Equal(t, r, merged)
	assert.True(t, HandleResult{}.IsZero())
	assert.False(t, r.IsZero())
}

func TestSharedStateApply(t *testing.T) {
	s := NewSharedState()
	assert.Equal(t, "Loading...", s.PriceLabel())

	assert.True(t, s.Apply(events.PriceError{Err: errors.New("offline")}))
	assert.Equal(t, "Unable to fetch", s.PriceLabel())

	assert.True(t, s.Apply(events.PriceUpdate{Price: "$3,012.55"}))
	assert.Equal(t, "$3,012.55", s.PriceLabel())
	require.NotNil(t, s.Online)
	assert.True(t, *s.Online)

	_, ok := s.Portfolio()
	assert.False(t, ok)

	s.Apply(events.AssetsUpdate{Assets: []events.Asset{
		{Symbol: "ETH", Balance: 1, USDPrice: 3000},
		{Symbol: "USDC", Balance: 250, USDPrice: 1},
	}})
	total, ok := s.Portfolio()
	require.True(t, ok)
	assert.InDelta(t, 3250.0, total, 1e-9)

	assert.True(t, s.Apply(events.AccountChange{Address: "0xabc"}))
	assert.False(t, s.Apply(events.AccountChange{Address: "0xabc"}))
	_, ok = s.Portfolio()
	assert.False(t, ok, "switching account drops stale assets")

	assert.False(t, s.Apply(events.Tick{}))
}

func TestShowPortfolio(t *testing.T) {
	s := NewSharedState()
	s.CurrentAccount = "0xabc"
	s.AlchemyKeyAvailable = true
	assert.True(t, s.ShowPortfolio())

	s.TestnetMode = true
	assert.False(t, s.ShowPortfolio())
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 10, Height: 6}

	assert.Equal(t, Rect{X: 3, Y: 4, Width: 8, Height: 4}, r.Inner())
	assert.Equal(t, Rect{X: 2, Y: 5, Width: 10, Height: 4}, r.Below(2))
	assert.Equal(t, Rect{X: 2, Y: 9, Width: 10, Height: 0}, r.Below(20))
	assert.True(t, r.Margin(6, 0).IsEmpty())

	left, rest := r.SplitLeft(4)
	assert.Equal(t, Rect{X: 2, Y: 3, Width: 4, Height: 6}, left)
	assert.Equal(t, Rect{X: 6, Y: 3, Width: 6, Height: 6}, rest)

	assert.Equal(t, Rect{X: 5, Y: 5, Width: 4, Height: 2}, r.Centered(4, 2))
	assert.Equal(t, Rect{X: 4, Y: 3, Width: 8, Height: 2}, r.Intersect(Rect{X: 4, Y: 0, Width: 20, Height: 5}))
	assert.True(t, r.Intersect(Rect{X: 50, Y: 50, Width: 1, Height: 1}).IsEmpty())

	assert.True(t, r.Contains(2, 3))
	assert.False(t, r.Contains(12, 3))
}
