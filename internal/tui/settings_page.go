package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/config"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/widgets"
)

type settingsField int

const (
	settingsHeading settingsField = iota
	settingsCurrency
	settingsTheme
	settingsTestnet
	settingsAlchemyKey
	settingsSave
	settingsError
)

var settingsFields = []settingsField{
	settingsHeading,
	settingsCurrency,
	settingsTheme,
	settingsTestnet,
	settingsAlchemyKey,
	settingsSave,
	settingsError,
}

func (f settingsField) Field() (widgets.Field, error) {
	switch f {
	case settingsHeading:
		return &widgets.Heading{Text: "Settings"}, nil
	case settingsCurrency:
		return widgets.NewSelectInput("Currency", config.Currencies), nil
	case settingsTheme:
		return widgets.NewSelectInput("Theme", config.Themes), nil
	case settingsTestnet:
		return &widgets.BooleanInput{Label: "Testnet Mode"}, nil
	case settingsAlchemyKey:
		return &widgets.InputBox{Label: "Alchemy API Key", EmptyText: "not set"}, nil
	case settingsSave:
		return &widgets.Button{Label: "Save"}, nil
	case settingsError:
		return &widgets.ErrorText{}, nil
	}

	return nil, fmt.Errorf("unknown settings field %d", int(f))
}

// SettingsPage edits the persisted configuration.
type SettingsPage struct {
	store Store
	form  *widgets.Form[settingsField]
}

// NewSettingsPage builds the page from the stored configuration.
func NewSettingsPage(ctx context.Context, store Store) (*SettingsPage, error) {
	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	form, err := widgets.NewForm(settingsFields, func(f *widgets.Form[settingsField]) error {
		fillSettings(f, cfg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build settings form: %w", err)
	}

	return &SettingsPage{store: store, form: form}, nil
}

func fillSettings(f *widgets.Form[settingsField], cfg config.Config) {
	f.SetText(settingsCurrency, cfg.Currency)
	f.SetText(settingsTheme, cfg.Theme)
	f.SetBoolean(settingsTestnet, cfg.TestnetMode)
	f.SetText(settingsAlchemyKey, cfg.AlchemyAPIKey)
}

func (p *SettingsPage) Name() string {
	return "Settings"
}

func (p *SettingsPage) Hints() []string {
	return []string{"<Tab> Next", "<Space> Toggle", "<Enter> Save", "<Esc> Back"}
}

// Reload picks up changes made elsewhere, e.g. the sidebar testnet toggle.
func (p *SettingsPage) Reload(shared *component.SharedState) error {
	p.form.SetBoolean(settingsTestnet, shared.TestnetMode)
	p.form.SetText(settingsCurrency, shared.Currency)
	p.form.SetText(settingsTheme, shared.Theme.Name)

	return nil
}

func (p *SettingsPage) HandleEvent(ctx context.Context, ev events.Event, tx chan<- events.Event) (component.HandleResult, error) {
	var result component.HandleResult

	err := p.form.HandleEvent(ev, func(id settingsField, f *widgets.Form[settingsField]) error {
		if id != settingsSave {
			return nil
		}

		saved, refreshAssets, err := p.save(ctx, f)
		if err != nil || !saved {
			return err
		}
		events.TrySend(tx, events.ConfigUpdate{})

		result.PagePops = 1
		result.Reload = true
		result.RefreshAssets = refreshAssets

		return nil
	})
	if err != nil {
		return result, err
	}

	if p.form.IsSomePopupOpen() {
		result.EscIgnores = 1
	}

	return result, nil
}

// save validates and persists the form. Validation problems are shown in
// the form and reported as saved == false; storage failures are returned.
func (p *SettingsPage) save(ctx context.Context, f *widgets.Form[settingsField]) (saved, refreshAssets bool, err error) {
	prev, err := p.store.Load(ctx)
	if err != nil {
		return false, false, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg := prev
	cfg.Currency = f.Text(settingsCurrency)
	cfg.Theme = f.Text(settingsTheme)
	cfg.TestnetMode = f.Boolean(settingsTestnet)
	cfg.AlchemyAPIKey = f.Text(settingsAlchemyKey)

	if err := cfg.Validate(); err != nil {
		f.SetText(settingsError, err.Error())
		return false, false, nil
	}

	if err := p.store.Save(ctx, cfg); err != nil {
		return false, false, fmt.Errorf("failed to save settings: %w", err)
	}
	f.SetText(settingsError, "")

	refreshAssets = cfg.TestnetMode != prev.TestnetMode || cfg.AlchemyAPIKey != prev.AlchemyAPIKey

	return true, refreshAssets, nil
}

func (p *SettingsPage) Render(screen tcell.Screen, area component.Rect, shared *component.SharedState) component.Rect {
	p.form.Render(screen, area.Margin(1, 0), shared.Theme)

	return area
}
