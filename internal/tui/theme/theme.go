// Package theme provides the styling tokens consumed by widgets. Widgets
// never define colors themselves.
package theme

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// BorderSet is the glyph set used to draw a box.
type BorderSet struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Theme holds the color scheme for the TUI.
type Theme struct {
	Name string

	// Base colors
	BgColor     tcell.Color
	FgColor     tcell.Color
	BorderColor tcell.Color
	MutedColor  tcell.Color

	// Focus and selection
	FocusColor    tcell.Color
	SelectedBg    tcell.Color
	SelectedFg    tcell.Color
	ButtonFocusBg tcell.Color
	ButtonFocusFg tcell.Color

	// Status colors
	StatusOK    tcell.Color
	StatusError tcell.Color
	StatusInfo  tcell.Color

	TitleFg tcell.Color
}

// Dark is the default k9s-inspired scheme.
func Dark() *Theme {
	return &Theme{
		Name:          "dark",
		BgColor:       tcell.ColorBlack,
		FgColor:       tcell.ColorWhite,
		BorderColor:   tcell.ColorDarkCyan,
		MutedColor:    tcell.ColorGray,
		FocusColor:    tcell.ColorAqua,
		SelectedBg:    tcell.ColorDarkCyan,
		SelectedFg:    tcell.ColorWhite,
		ButtonFocusBg: tcell.ColorAqua,
		ButtonFocusFg: tcell.ColorBlack,
		StatusOK:      tcell.ColorGreen,
		StatusError:   tcell.ColorRed,
		StatusInfo:    tcell.ColorDodgerBlue,
		TitleFg:       tcell.ColorAqua,
	}
}

// Light suits terminals with a bright background.
func Light() *Theme {
	return &Theme{
		Name:          "light",
		BgColor:       tcell.ColorWhite,
		FgColor:       tcell.ColorBlack,
		BorderColor:   tcell.ColorNavy,
		MutedColor:    tcell.ColorGray,
		FocusColor:    tcell.ColorBlue,
		SelectedBg:    tcell.ColorNavy,
		SelectedFg:    tcell.ColorWhite,
		ButtonFocusBg: tcell.ColorBlue,
		ButtonFocusFg: tcell.ColorWhite,
		StatusOK:      tcell.ColorDarkGreen,
		StatusError:   tcell.ColorMaroon,
		StatusInfo:    tcell.ColorBlue,
		TitleFg:       tcell.ColorNavy,
	}
}

var registry = map[string]func() *Theme{
	"dark":  Dark,
	"light": Light,
}

// Names lists the registered theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// ByName looks a theme up case-insensitively.
func ByName(name string) (*Theme, bool) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}

	return ctor(), true
}

// Base is the style of plain text.
func (t *Theme) Base() tcell.Style {
	return tcell.StyleDefault.Background(t.BgColor).Foreground(t.FgColor)
}

// Border returns the glyphs for a box; focused boxes use the double set.
func (t *Theme) Border(focus bool) BorderSet {
	if focus {
		return BorderSet{
			Horizontal:  tview.Borders.HorizontalFocus,
			Vertical:    tview.Borders.VerticalFocus,
			TopLeft:     tview.Borders.TopLeftFocus,
			TopRight:    tview.Borders.TopRightFocus,
			BottomLeft:  tview.Borders.BottomLeftFocus,
			BottomRight: tview.Borders.BottomRightFocus,
		}
	}

	return BorderSet{
		Horizontal:  tview.Borders.Horizontal,
		Vertical:    tview.Borders.Vertical,
		TopLeft:     tview.Borders.TopLeft,
		TopRight:    tview.Borders.TopRight,
		BottomLeft:  tview.Borders.BottomLeft,
		BottomRight: tview.Borders.BottomRight,
	}
}

// BorderStyle is the style of box borders.
func (t *Theme) BorderStyle(focus bool) tcell.Style {
	if focus {
		return t.Base().Foreground(t.FocusColor)
	}

	return t.Base().Foreground(t.BorderColor)
}

// ButtonFocused is the style of a focused button.
func (t *Theme) ButtonFocused() tcell.Style {
	return t.Base().Background(t.ButtonFocusBg).Foreground(t.ButtonFocusFg).Bold(true)
}

// Select is the style of the highlighted entry of a list.
func (t *Theme) Select() tcell.Style {
	return t.Base().Background(t.SelectedBg).Foreground(t.SelectedFg)
}

// Heading is the style of section headings.
func (t *Theme) Heading() tcell.Style {
	return t.Base().Foreground(t.TitleFg).Bold(true)
}

// Placeholder is the style of empty-field hints.
func (t *Theme) Placeholder() tcell.Style {
	return t.Base().Foreground(t.MutedColor)
}

// Error is the style of error lines.
func (t *Theme) Error() tcell.Style {
	return t.Base().Foreground(t.StatusError)
}

// Info is the style of status lines.
func (t *Theme) Info() tcell.Style {
	return t.Base().Foreground(t.StatusInfo)
}

// Cursor is the style of the text-edit cursor cell.
func (t *Theme) Cursor() tcell.Style {
	return t.Base().Reverse(true)
}

// ColorName converts a tcell color to a tview color tag name.
func ColorName(color tcell.Color) string {
	switch color {
	case tcell.ColorGreen:
		return "green"
	case tcell.ColorRed:
		return "red"
	case tcell.ColorYellow:
		return "yellow"
	case tcell.ColorDodgerBlue:
		return "dodgerblue"
	case tcell.ColorGray:
		return "gray"
	case tcell.ColorAqua:
		return "aqua"
	case tcell.ColorDarkCyan:
		return "darkcyan"
	case tcell.ColorBlack:
		return "black"
	case tcell.ColorNavy:
		return "navy"
	case tcell.ColorBlue:
		return "blue"
	case tcell.ColorDarkGreen:
		return "darkgreen"
	case tcell.ColorMaroon:
		return "maroon"
	default:
		return "white"
	}
}
