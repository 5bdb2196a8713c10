package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/config"
	"github.com/gmwallet/gm/internal/logger"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
	"github.com/rivo/tview"
)

const (
	defaultQueueSize    = 64
	defaultTickInterval = time.Second
	flashDuration       = 3 * time.Second
)

// Config holds the TUI configuration
type Config struct {
	Store Store
	// Sources feed background events into the UI loop. A one second Ticker
	// is used when empty; ticks expire the flash line.
	Sources []events.Source
	// Screen replaces the terminal, for tests.
	Screen    tcell.Screen
	QueueSize int
}

// Hinter is implemented by pages that list their keys in the status bar.
type Hinter interface {
	Hints() []string
}

// App is the main TUI application
type App struct {
	*tview.Application
	config     *Config
	shared     *component.SharedState
	pageStack  *PageStack
	header     *tview.TextView
	crumbs     *tview.TextView
	statusBar  *tview.TextView
	flash      *tview.TextView
	globalKeys KeyActions
	events     chan events.Event
	ctx        context.Context
	cancel     context.CancelFunc
	// flashUntil is when the current flash message expires.
	flashUntil time.Time
}

// NewApp creates a new TUI application
func NewApp(ctx context.Context, cfg *Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("tui: a settings store is required")
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = []events.Source{events.Ticker(defaultTickInterval)}
	}

	ctx, cancel := context.WithCancel(ctx)

	app := &App{
		Application: tview.NewApplication(),
		config:      cfg,
		shared:      component.NewSharedState(),
		globalKeys:  NewKeyActions(),
		events:      make(chan events.Event, cfg.QueueSize),
		ctx:         ctx,
		cancel:      cancel,
	}
	if cfg.Screen != nil {
		app.SetScreen(cfg.Screen)
	}

	if err := app.syncConfig(); err != nil {
		cancel()
		return nil, err
	}

	app.pageStack = NewPageStack(NewHomePage(cfg.Store), app.shared)
	app.pageStack.OnChange(app.updateChrome)
	app.pageStack.OnRefresh(app.syncConfig)
	app.pageStack.OnRefreshAssets(func() {
		logger.Log.Debug("Asset refresh requested")
		app.shared.Assets, app.shared.AssetsLoaded, app.shared.AssetsError = nil, false, ""
	})

	app.setupGlobalKeys()
	app.buildUI()

	return app, nil
}

// setupGlobalKeys configures global keyboard shortcuts
func (a *App) setupGlobalKeys() {
	a.globalKeys.Add(tcell.KeyCtrlC, KeyAction{
		Description: "Quit",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			a.Stop()
			return nil
		},
		Visible: true,
	})

	a.globalKeys.Add(tcell.KeyCtrlR, KeyAction{
		Description: "Reload",
		Action: func(evt *tcell.EventKey) *tcell.EventKey {
			if err := a.pageStack.ReloadAll(); err != nil {
				a.reportError(err)
			} else {
				a.Flash("Reloaded", false)
			}
			return nil
		},
		Visible: true,
	})
}

// buildUI constructs the UI layout
func (a *App) buildUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	a.crumbs = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	a.flash = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	mainFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pageStack.Pages(), 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.flash, 1, 0, false)

	a.SetRoot(mainFlex, true)
	a.SetInputCapture(a.handleKey)
	a.updateChrome()
}

// handleKey runs global shortcuts and turns every other key into an Input
// event for the page stack.
func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if action, ok := a.globalKeys.Get(event.Key()); ok {
		return action.Action(event)
	}

	a.dispatch(events.Input{Key: event})

	return nil
}

// dispatch handles one event on the UI goroutine.
func (a *App) dispatch(ev events.Event) {
	if a.shared.Apply(ev) {
		logger.Log.Tracef("Shared state updated by %T", ev)
	}

	switch e := ev.(type) {
	case events.ConfigUpdate:
		if err := a.syncConfig(); err != nil {
			a.reportError(err)
		}
	case events.TransferRequested:
		a.recordTransfer(e)
	case events.Tick:
		a.expireFlash(e.At)
	case events.PriceError:
		logger.Log.Warnf("Price source unavailable: %v", e.Err)
	case events.AssetsUpdateError:
		logger.Log.Warnf("Asset refresh failed: %v", e.Err)
	}

	if err := a.pageStack.HandleEvent(a.ctx, ev, a.events); err != nil {
		a.reportError(err)
	}

	a.updateChrome()
}

func (a *App) recordTransfer(e events.TransferRequested) {
	t := config.Transfer{
		At:      time.Now(),
		To:      e.To,
		Amount:  e.Amount,
		Unit:    e.Unit,
		Testnet: a.shared.TestnetMode,
	}
	if err := a.config.Store.RecordTransfer(a.ctx, t); err != nil {
		a.reportError(err)
		return
	}

	logger.Log.Infof("Transfer of %s %s to %s requested", e.Amount, e.Unit, e.To)
	a.Flash("Transfer requested", false)
}

// syncConfig copies the persisted settings into the shared state.
func (a *App) syncConfig() error {
	cfg, err := a.config.Store.Load(a.ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	a.shared.TestnetMode = cfg.TestnetMode
	a.shared.Currency = cfg.Currency
	a.shared.AlchemyKeyAvailable = cfg.HasAlchemyKey()
	if th, ok := theme.ByName(cfg.Theme); ok {
		a.shared.Theme = th
	}

	return nil
}

func (a *App) reportError(err error) {
	logger.Log.Errorf("%v", err)
	a.Flash(err.Error(), true)
}

// pump forwards background events onto the UI goroutine.
func (a *App) pump() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case ev := <-a.events:
			a.QueueUpdateDraw(func() {
				a.dispatch(ev)
			})
		}
	}
}

// Run starts the background sources and the UI loop, and blocks until the
// user quits. A failing source is reported without stopping the UI.
func (a *App) Run() error {
	defer a.cancel()

	go a.pump()

	go func() {
		if err := events.Run(a.ctx, a.events, a.config.Sources...); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.Errorf("Background source failed: %v", err)
			a.QueueUpdateDraw(func() {
				a.Flash("Background updates stopped: "+err.Error(), true)
			})
		}
	}()

	return a.Application.Run()
}

// Stop stops the TUI application
func (a *App) Stop() {
	a.cancel()
	a.pageStack.Stop()
	a.Application.Stop()
}

// updateChrome refreshes the header, breadcrumbs and status bar.
func (a *App) updateChrome() {
	th := a.shared.Theme
	for _, tv := range []*tview.TextView{a.header, a.crumbs, a.statusBar, a.flash} {
		tv.SetBackgroundColor(th.BgColor)
		tv.SetTextColor(th.FgColor)
	}

	title := theme.ColorName(th.TitleFg)
	muted := theme.ColorName(th.MutedColor)

	network := "mainnet"
	if a.shared.TestnetMode {
		network = "testnet"
	}
	a.header.SetText(fmt.Sprintf("[%s::b]gm[-::-] [%s]ETH %s | %s | %s[-]",
		title, muted, a.shared.PriceLabel(), a.shared.Currency, network))

	a.crumbs.SetText("[" + muted + "]" + strings.Join(a.pageStack.Crumbs(), " > ") + "[-]")

	var hints []string
	if h, ok := a.pageStack.Top().(Hinter); ok {
		hints = append(hints, h.Hints()...)
	}
	hints = append(hints, a.globalKeys.Hints()...)
	a.statusBar.SetText(" " + strings.Join(hints, " "))
}

// Flash displays a temporary message until a tick past flashDuration
// clears it. It must be called on the UI goroutine.
func (a *App) Flash(message string, isError bool) {
	a.flashUntil = time.Now().Add(flashDuration)

	color := theme.ColorName(a.shared.Theme.StatusOK)
	if isError {
		color = theme.ColorName(a.shared.Theme.StatusError)
	}
	a.flash.SetText(fmt.Sprintf("[%s::b] %s ", color, tview.Escape(message)))
}

// expireFlash clears the flash message once it is older than flashDuration.
func (a *App) expireFlash(now time.Time) {
	if a.flashUntil.IsZero() || now.Before(a.flashUntil) {
		return
	}

	a.flashUntil = time.Time{}
	a.flash.SetText("")
}

// FlashText returns the current flash message.
func (a *App) FlashText() string {
	return a.flash.GetText(true)
}

// Shared returns the application state snapshot.
func (a *App) Shared() *component.SharedState {
	return a.shared
}

// PageStack returns the navigation stack.
func (a *App) PageStack() *PageStack {
	return a.pageStack
}
