package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/config"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
)

func key(k tcell.Key) events.Event {
	return events.Input{Key: tcell.NewEventKey(k, 0, tcell.ModNone)}
}

func char(r rune) events.Event {
	return events.Input{Key: tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)}
}

func typeInto(page component.Component, s string) error {
	for _, r := range s {
		if _, err := page.HandleEvent(context.Background(), char(r), nil); err != nil {
			return err
		}
	}
	return nil
}

// memStore is an in-memory Store.
type memStore struct {
	cfg       config.Config
	saves     int
	transfers []config.Transfer
	loadErr   error
	saveErr   error
}

func newMemStore() *memStore {
	return &memStore{cfg: config.Default()}
}

func (s *memStore) Load(context.Context) (config.Config, error) {
	if s.loadErr != nil {
		return config.Config{}, s.loadErr
	}
	return s.cfg, nil
}

func (s *memStore) Save(_ context.Context, cfg config.Config) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.saves++
	return nil
}

func (s *memStore) RecordTransfer(_ context.Context, t config.Transfer) error {
	s.transfers = append(s.transfers, t)
	return nil
}

var errStub = errors.New("stub failure")

// stubPage returns scripted results and records what it saw.
type stubPage struct {
	name      string
	results   []component.HandleResult
	err       error
	seen      []events.Event
	reloads   int
	reloadErr error
	stopped   bool
}

func (p *stubPage) Name() string { return p.name }

func (p *stubPage) HandleEvent(_ context.Context, ev events.Event, _ chan<- events.Event) (component.HandleResult, error) {
	p.seen = append(p.seen, ev)
	if p.err != nil {
		return component.HandleResult{}, p.err
	}
	if len(p.results) == 0 {
		return component.HandleResult{}, nil
	}
	r := p.results[0]
	p.results = p.results[1:]
	return r, nil
}

func (p *stubPage) Render(_ tcell.Screen, area component.Rect, _ *component.SharedState) component.Rect {
	return area
}

func (p *stubPage) Reload(*component.SharedState) error {
	p.reloads++
	return p.reloadErr
}

func (p *stubPage) Stop() { p.stopped = true }
