package widgets

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k tcell.Key) events.Event {
	return events.Input{Key: tcell.NewEventKey(k, 0, tcell.ModNone)}
}

func char(r rune) events.Event {
	return events.Input{Key: tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)}
}

func typeText(t *testing.T, handle func(events.Event) error, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, handle(char(r)))
	}
}

type sendField int

const (
	sendHeading sendField = iota
	sendTo
	sendAmount
	sendConfirm
)

var sendFields = []sendField{sendHeading, sendTo, sendAmount, sendConfirm}

func (f sendField) Field() (Field, error) {
	switch f {
	case sendHeading:
		return &Heading{Text: "Send"}, nil
	case sendTo:
		return &InputBox{Label: "To"}, nil
	case sendAmount:
		return &InputBox{Label: "Amount", Currency: "ETH"}, nil
	case sendConfirm:
		return &Button{Label: "Confirm"}, nil
	}
	return nil, errors.New("unknown send field")
}

func newSendForm(t *testing.T) *Form[sendField] {
	t.Helper()
	form, err := NewForm(sendFields, nil)
	require.NoError(t, err)
	return form
}

type prefField int

const (
	prefHeading prefField = iota
	prefCurrency
	prefTestnet
	prefSave
	prefError
)

var prefFields = []prefField{prefHeading, prefCurrency, prefTestnet, prefSave, prefError}

func (f prefField) Field() (Field, error) {
	switch f {
	case prefHeading:
		return &Heading{Text: "Settings"}, nil
	case prefCurrency:
		return NewSelectInput("Currency", []string{"USD", "EUR", "GBP"}), nil
	case prefTestnet:
		return &BooleanInput{Label: "Testnet"}, nil
	case prefSave:
		return &Button{Label: "Save"}, nil
	case prefError:
		return &ErrorText{}, nil
	}
	return nil, errors.New("unknown pref field")
}

func newPrefForm(t *testing.T) *Form[prefField] {
	t.Helper()
	form, err := NewForm(prefFields, func(f *Form[prefField]) error {
		f.SetText(prefCurrency, "USD")
		return nil
	})
	require.NoError(t, err)
	return form
}

func TestFormInitialCursorSkipsHeading(t *testing.T) {
	form := newSendForm(t)
	assert.Equal(t, int(sendTo), form.Cursor())
	assert.Equal(t, sendTo, form.FocusedID())
	assert.True(t, form.IsFocused(sendTo))
}

func TestFormDownWraps(t *testing.T) {
	form := newSendForm(t)

	require.NoError(t, form.HandleEvent(key(tcell.KeyDown), nil))
	assert.Equal(t, int(sendAmount), form.Cursor())
	require.NoError(t, form.HandleEvent(key(tcell.KeyDown), nil))
	assert.Equal(t, int(sendConfirm), form.Cursor())
	require.NoError(t, form.HandleEvent(key(tcell.KeyDown), nil))
	assert.Equal(t, int(sendTo), form.Cursor())
}

func TestFormTabAndBacktab(t *testing.T) {
	form := newSendForm(t)

	require.NoError(t, form.HandleEvent(key(tcell.KeyBacktab), nil))
	assert.Equal(t, int(sendConfirm), form.Cursor())
	require.NoError(t, form.HandleEvent(key(tcell.KeyTab), nil))
	assert.Equal(t, int(sendTo), form.Cursor())
	require.NoError(t, form.HandleEvent(key(tcell.KeyUp), nil))
	assert.Equal(t, int(sendConfirm), form.Cursor())
}

func TestFormHiddenFieldIsSkipped(t *testing.T) {
	form := newSendForm(t)
	form.HideItem(sendAmount)

	form.AdvanceCursor()
	assert.Equal(t, int(sendConfirm), form.Cursor())
	assert.True(t, form.IsHidden(sendAmount))

	form.ShowItem(sendAmount)
	form.RetreatCursor()
	assert.Equal(t, int(sendAmount), form.Cursor())
}

func TestFormCycleClosure(t *testing.T) {
	form := newSendForm(t)
	start := form.Cursor()

	// To, Amount and Confirm are the interactive fields.
	for range 3 {
		form.AdvanceCursor()
	}
	assert.Equal(t, start, form.Cursor())

	form.HideItem(sendAmount)
	for range 2 {
		form.AdvanceCursor()
	}
	assert.Equal(t, start, form.Cursor())
}

func TestFormAdvanceRetreatInverse(t *testing.T) {
	form := newSendForm(t)

	for range 5 {
		before := form.Cursor()
		form.AdvanceCursor()
		form.RetreatCursor()
		assert.Equal(t, before, form.Cursor())

		form.RetreatCursor()
		form.AdvanceCursor()
		assert.Equal(t, before, form.Cursor())

		form.AdvanceCursor()
	}
}

func TestFormSingleValidTargetSelfLoops(t *testing.T) {
	form := newSendForm(t)
	form.HideItem(sendTo)
	form.HideItem(sendAmount)

	form.AdvanceCursor()
	assert.Equal(t, int(sendConfirm), form.Cursor())
	form.AdvanceCursor()
	assert.Equal(t, int(sendConfirm), form.Cursor())
	form.RetreatCursor()
	assert.Equal(t, int(sendConfirm), form.Cursor())
}

func TestFormNoValidTargetKeepsCursor(t *testing.T) {
	form := newSendForm(t)
	form.HideItem(sendTo)
	form.HideItem(sendAmount)
	form.HideItem(sendConfirm)

	form.AdvanceCursor()
	assert.Equal(t, int(sendTo), form.Cursor())
}

func TestFormVisibleCount(t *testing.T) {
	form := newSendForm(t)
	assert.Equal(t, 4, form.VisibleCount())

	form.HideItem(sendAmount)
	form.HideItem(sendAmount)
	form.HideItem(sendHeading)
	assert.Equal(t, 2, form.HiddenCount())
	assert.Equal(t, form.Len()-form.HiddenCount(), form.VisibleCount())

	form.ShowItem(sendHeading)
	assert.Equal(t, 3, form.VisibleCount())
}

func TestFormTyping(t *testing.T) {
	form := newSendForm(t)
	handle := func(ev events.Event) error { return form.HandleEvent(ev, nil) }

	typeText(t, handle, "0xab")
	assert.Equal(t, "0xab", form.Text(sendTo))
	assert.Equal(t, 4, form.TextCursor())

	require.NoError(t, handle(key(tcell.KeyBackspace2)))
	assert.Equal(t, "0xa", form.Text(sendTo))

	require.NoError(t, handle(key(tcell.KeyDown)))
	assert.Equal(t, 0, form.TextCursor())
	typeText(t, handle, "1.5")
	assert.Equal(t, "1.5", form.Text(sendAmount))
	assert.Equal(t, "0xa", form.Text(sendTo))
}

func TestFormSetTextClampsTextCursor(t *testing.T) {
	form := newSendForm(t)
	form.SetText(sendTo, "abcdef")
	form.UpdateTextCursor()
	assert.Equal(t, 6, form.TextCursor())

	form.SetText(sendTo, "ab")
	assert.Equal(t, 2, form.TextCursor())
}

func TestFormEnterAdvancesThenActivatesButton(t *testing.T) {
	form := newSendForm(t)
	var pressed []sendField
	onButton := func(id sendField, _ *Form[sendField]) error {
		pressed = append(pressed, id)
		return nil
	}

	require.NoError(t, form.HandleEvent(key(tcell.KeyEnter), onButton))
	assert.Equal(t, int(sendAmount), form.Cursor())
	assert.Empty(t, pressed)

	// Enter moves onto the button and is then delivered to it.
	require.NoError(t, form.HandleEvent(key(tcell.KeyEnter), onButton))
	assert.Equal(t, int(sendConfirm), form.Cursor())
	assert.Equal(t, []sendField{sendConfirm}, pressed)

	require.NoError(t, form.HandleEvent(key(tcell.KeyEnter), onButton))
	assert.Equal(t, int(sendConfirm), form.Cursor())
	assert.Len(t, pressed, 2)
}

func TestFormButtonCallbackMutatesForm(t *testing.T) {
	form := newSendForm(t)
	form.AdvanceCursor()
	form.AdvanceCursor()

	err := form.HandleEvent(key(tcell.KeyEnter), func(_ sendField, f *Form[sendField]) error {
		f.SetText(sendTo, "cleared")
		f.HideItem(sendAmount)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cleared", form.Text(sendTo))
	assert.True(t, form.IsHidden(sendAmount))
}

func TestFormButtonCallbackErrorPropagates(t *testing.T) {
	form := newSendForm(t)
	form.RetreatCursor()
	require.True(t, form.IsButtonFocused())

	errBoom := errors.New("boom")
	err := form.HandleEvent(key(tcell.KeyEnter), func(sendField, *Form[sendField]) error {
		return errBoom
	})
	assert.Same(t, errBoom, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestFormBooleanTogglesParity(t *testing.T) {
	form := newPrefForm(t)
	form.AdvanceCursor()
	require.True(t, form.IsFocused(prefTestnet))

	for i := 1; i <= 4; i++ {
		require.NoError(t, form.HandleEvent(char(' '), nil))
		assert.Equal(t, i%2 == 1, form.Boolean(prefTestnet))
	}
	assert.Equal(t, len("false"), form.TextCursor())

	form.SetBoolean(prefTestnet, true)
	assert.Equal(t, len("true"), form.TextCursor())
}

func TestFormSelectInputOpensPopupSeeded(t *testing.T) {
	form := newPrefForm(t)
	require.True(t, form.IsFocused(prefCurrency))
	require.Equal(t, "USD", form.Text(prefCurrency))

	require.NoError(t, form.HandleEvent(char('e'), nil))
	popup := form.Popup(prefCurrency)
	require.True(t, popup.IsOpen())
	assert.True(t, form.IsSomePopupOpen())
	assert.Equal(t, "e", popup.Filter())

	highlighted, ok := popup.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "EUR", highlighted)

	require.NoError(t, form.HandleEvent(key(tcell.KeyEnter), nil))
	assert.False(t, popup.IsOpen())
	assert.Equal(t, "EUR", form.Text(prefCurrency))
	assert.Equal(t, len("EUR"), form.TextCursor())
	assert.Equal(t, int(prefCurrency), form.Cursor())
}

func TestFormOpenPopupCapturesNavigation(t *testing.T) {
	form := newPrefForm(t)
	require.NoError(t, form.HandleEvent(key(tcell.KeyBackspace2), nil))
	popup := form.Popup(prefCurrency)
	require.True(t, popup.IsOpen())
	assert.Empty(t, popup.Filter())

	require.NoError(t, form.HandleEvent(key(tcell.KeyDown), nil))
	assert.Equal(t, int(prefCurrency), form.Cursor())
	highlighted, _ := popup.Highlighted()
	assert.Equal(t, "EUR", highlighted)

	require.NoError(t, form.HandleEvent(key(tcell.KeyEscape), nil))
	assert.False(t, popup.IsOpen())
	assert.Equal(t, "USD", form.Text(prefCurrency))
}

func TestFormEnterOnSelectWithNoMatchKeepsPopupOpen(t *testing.T) {
	form := newPrefForm(t)
	typeText(t, func(ev events.Event) error { return form.HandleEvent(ev, nil) }, "zz")

	popup := form.Popup(prefCurrency)
	assert.Empty(t, popup.Filtered())
	require.NoError(t, form.HandleEvent(key(tcell.KeyEnter), nil))
	assert.True(t, popup.IsOpen())
	assert.Equal(t, "USD", form.Text(prefCurrency))
}

func TestFormIgnoresNonKeyEvents(t *testing.T) {
	form := newSendForm(t)
	require.NoError(t, form.HandleEvent(events.ConfigUpdate{}, nil))
	assert.Equal(t, int(sendTo), form.Cursor())
}

type shuffledField int

func (shuffledField) Field() (Field, error) { return &Button{Label: "x"}, nil }

func TestNewFormRejectsOutOfOrderIDs(t *testing.T) {
	_, err := NewForm([]shuffledField{1, 0}, nil)
	assert.ErrorIs(t, err, ErrFieldOrder)
}

var errUnavailable = errors.New("unavailable")

type brokenField int

func (f brokenField) Field() (Field, error) {
	if f == 1 {
		return nil, errUnavailable
	}
	return &Button{Label: "ok"}, nil
}

func TestNewFormWrapsConversionError(t *testing.T) {
	_, err := NewForm([]brokenField{0, 1}, nil)
	assert.ErrorIs(t, err, ErrFieldConversion)
	assert.ErrorIs(t, err, errUnavailable)
}

type staticField int

func (staticField) Field() (Field, error) { return &Heading{Text: "only text"}, nil }

func TestNewFormRequiresFocusableField(t *testing.T) {
	_, err := NewForm([]staticField{0}, nil)
	assert.ErrorIs(t, err, ErrNoFocusable)
}

func TestNewFormInitializerError(t *testing.T) {
	_, err := NewForm(sendFields, func(*Form[sendField]) error { return errUnavailable })
	assert.ErrorIs(t, err, errUnavailable)
}

func TestFormWrongAccessorPanics(t *testing.T) {
	form := newSendForm(t)
	assert.Panics(t, func() { form.Boolean(sendTo) })
	assert.Panics(t, func() { form.Text(sendConfirm) })
	assert.Panics(t, func() { form.Popup(sendAmount) })

	currency, ok := form.Currency(sendAmount)
	assert.True(t, ok)
	assert.Equal(t, "ETH", currency)
	assert.False(t, form.SetCurrency(sendConfirm, "BTC"))
}

func TestFormHidingSelectClosesItsPopup(t *testing.T) {
	form := newPrefForm(t)
	require.NoError(t, form.HandleEvent(char('E'), nil))
	require.True(t, form.IsSomePopupOpen())

	form.HideItem(prefCurrency)
	assert.False(t, form.Popup(prefCurrency).IsOpen())
	assert.False(t, form.IsSomePopupOpen())

	form.AdvanceCursor()
	require.Equal(t, int(prefTestnet), form.Cursor())
	require.NoError(t, form.HandleEvent(char('z'), nil))
	assert.True(t, form.Boolean(prefTestnet))
	assert.Equal(t, "USD", form.Text(prefCurrency))
}

func TestFormIgnoresPopupOfHiddenSelect(t *testing.T) {
	form := newPrefForm(t)
	form.AdvanceCursor()
	form.HideItem(prefCurrency)
	form.Popup(prefCurrency).Open()

	assert.False(t, form.IsSomePopupOpen())
	require.NoError(t, form.HandleEvent(key(tcell.KeyRight), nil))
	assert.True(t, form.Boolean(prefTestnet))
	assert.Empty(t, form.Popup(prefCurrency).Filter())
}
