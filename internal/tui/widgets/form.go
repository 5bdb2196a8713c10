package widgets

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
)

var (
	// ErrFieldOrder means the identifier list is not the exhaustive,
	// ordered enumeration 0..n-1 of the identifier type.
	ErrFieldOrder = errors.New("form fields must enumerate every identifier in order")
	// ErrFieldConversion wraps a failed identifier-to-field conversion.
	ErrFieldConversion = errors.New("failed to build form field")
	// ErrNoFocusable means no field could ever receive focus.
	ErrNoFocusable = errors.New("form has no interactive field")
)

// FieldID is implemented by the integer enum a screen declares to name its
// fields. Each identifier converts into exactly one initial Field.
type FieldID interface {
	~int
	Field() (Field, error)
}

// Fixed heights of the non-wrapping rows.
const (
	headingHeight = 2
	buttonRows    = buttonHeight + 1
)

// Form is a vertical list of fields addressed by the identifier enum E.
// The field list is fixed at construction; only field contents and
// visibility change afterwards.
type Form[E FieldID] struct {
	ids        []E
	items      []Field
	hidden     map[int]struct{}
	cursor     int
	textCursor int

	formFocus       bool
	everythingEmpty bool
}

// NewForm builds one field per identifier in ids, which must list every
// value of E in order. Focus starts on the first interactive field, then
// init populates values or hides fields before the first render.
func NewForm[E FieldID](ids []E, init func(*Form[E]) error) (*Form[E], error) {
	f := &Form[E]{
		ids:       append([]E(nil), ids...),
		items:     make([]Field, 0, len(ids)),
		hidden:    make(map[int]struct{}),
		formFocus: true,
	}

	for i, id := range ids {
		if int(id) != i {
			return nil, fmt.Errorf("%w: position %d holds identifier %d", ErrFieldOrder, i, int(id))
		}

		item, err := id.Field()
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrFieldConversion, i, err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w %d: nil field", ErrFieldConversion, i)
		}

		f.items = append(f.items, item)
	}

	first := -1
	for i := range f.items {
		if f.isValidCursor(i) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, ErrNoFocusable
	}
	f.cursor = first

	if init != nil {
		if err := init(f); err != nil {
			return nil, err
		}
	}
	f.UpdateTextCursor()

	return f, nil
}

func (f *Form[E]) index(id E) int {
	i := int(id)
	if i < 0 || i >= len(f.items) {
		panic(fmt.Sprintf("form: identifier %d out of range [0, %d)", i, len(f.items)))
	}

	return i
}

// SetFormFocus controls whether the focused field is highlighted, for pages
// where the form shares the keyboard with other widgets.
func (f *Form[E]) SetFormFocus(focus bool) {
	f.formFocus = focus
}

// ShowEverythingEmpty renders all values blank while set, e.g. while the
// data behind the form is loading.
func (f *Form[E]) ShowEverythingEmpty(empty bool) {
	f.everythingEmpty = empty
}

// HideItem hides a field and closes its popup, if any. The cursor is left
// alone even when the focused field is hidden; callers relocate focus with
// AdvanceCursor.
func (f *Form[E]) HideItem(id E) {
	i := f.index(id)
	f.hidden[i] = struct{}{}
	if s, ok := f.items[i].(*SelectInput); ok && s.Popup != nil {
		s.Popup.Close()
	}
}

// ShowItem reveals a hidden field.
func (f *Form[E]) ShowItem(id E) {
	delete(f.hidden, f.index(id))
}

// IsHidden reports whether the field is hidden.
func (f *Form[E]) IsHidden(id E) bool {
	_, ok := f.hidden[f.index(id)]
	return ok
}

// HiddenCount is the number of hidden fields.
func (f *Form[E]) HiddenCount() int {
	return len(f.hidden)
}

// VisibleCount is the number of fields Render lays out.
func (f *Form[E]) VisibleCount() int {
	return len(f.items) - f.HiddenCount()
}

// Len is the number of fields.
func (f *Form[E]) Len() int {
	return len(f.items)
}

// Cursor is the index of the focused field.
func (f *Form[E]) Cursor() int {
	return f.cursor
}

// TextCursor is the edit position inside the focused field.
func (f *Form[E]) TextCursor() int {
	return f.textCursor
}

// FocusedID returns the identifier of the focused field.
func (f *Form[E]) FocusedID() E {
	return f.ids[f.cursor]
}

// AdvanceCursor moves focus to the next visible interactive field,
// wrapping around.
func (f *Form[E]) AdvanceCursor() {
	f.cursor = NextValid(f.cursor, len(f.items), f.isValidCursor)
	f.UpdateTextCursor()
}

// RetreatCursor moves focus to the previous visible interactive field,
// wrapping around.
func (f *Form[E]) RetreatCursor() {
	f.cursor = PrevValid(f.cursor, len(f.items), f.isValidCursor)
	f.UpdateTextCursor()
}

// UpdateTextCursor puts the edit cursor at the end of the focused field.
func (f *Form[E]) UpdateTextCursor() {
	f.textCursor = f.items[f.cursor].MaxCursor()
}

func (f *Form[E]) isValidCursor(i int) bool {
	if _, hidden := f.hidden[i]; hidden {
		return false
	}

	return IsInteractive(f.items[i])
}

// Item returns the field for id.
func (f *Form[E]) Item(id E) Field {
	return f.items[f.index(id)]
}

func (f *Form[E]) mismatch(id E, want string) string {
	return fmt.Sprintf("form: field %d is %T, which holds no %s", int(id), f.items[int(id)], want)
}

// Text returns the text of a text-bearing field. It panics for fields that
// hold no text.
func (f *Form[E]) Text(id E) string {
	switch item := f.items[f.index(id)].(type) {
	case *InputBox:
		return item.Text
	case *DisplayBox:
		return item.Text
	case *SelectInput:
		return item.Text
	case *DisplayText:
		return item.Text
	case *ErrorText:
		return item.Text
	}
	panic(f.mismatch(id, "text"))
}

// SetText replaces the text of a text-bearing field. The edit cursor is
// clamped when the focused field shrinks.
func (f *Form[E]) SetText(id E, text string) {
	i := f.index(id)
	switch item := f.items[i].(type) {
	case *InputBox:
		item.Text = text
	case *DisplayBox:
		item.Text = text
	case *SelectInput:
		item.Text = text
	case *DisplayText:
		item.Text = text
	case *ErrorText:
		item.Text = text
	default:
		panic(f.mismatch(id, "text"))
	}

	if i == f.cursor {
		f.textCursor = min(f.textCursor, f.items[i].MaxCursor())
	}
}

// Boolean returns the value of a BooleanInput. It panics for other fields.
func (f *Form[E]) Boolean(id E) bool {
	if item, ok := f.items[f.index(id)].(*BooleanInput); ok {
		return item.Value
	}
	panic(f.mismatch(id, "boolean"))
}

// SetBoolean sets the value of a BooleanInput. It panics for other fields.
func (f *Form[E]) SetBoolean(id E, value bool) {
	i := f.index(id)
	item, ok := f.items[i].(*BooleanInput)
	if !ok {
		panic(f.mismatch(id, "boolean"))
	}

	item.Value = value
	if i == f.cursor {
		f.UpdateTextCursor()
	}
}

// Currency returns the unit annotation of an InputBox; ok is false for
// other fields.
func (f *Form[E]) Currency(id E) (string, bool) {
	item, ok := f.items[f.index(id)].(*InputBox)
	if !ok {
		return "", false
	}

	return item.Currency, true
}

// SetCurrency sets the unit annotation of an InputBox and reports whether
// the field is one.
func (f *Form[E]) SetCurrency(id E, currency string) bool {
	item, ok := f.items[f.index(id)].(*InputBox)
	if ok {
		item.Currency = currency
	}

	return ok
}

// Popup returns the popup of a SelectInput. It panics for other fields.
func (f *Form[E]) Popup(id E) *FilterSelectPopup {
	if item, ok := f.items[f.index(id)].(*SelectInput); ok {
		return item.Popup
	}
	panic(f.mismatch(id, "popup"))
}

// IsFocused reports whether id holds the focus.
func (f *Form[E]) IsFocused(id E) bool {
	return f.cursor == f.index(id)
}

// IsButtonFocused reports whether the focused field is a Button.
func (f *Form[E]) IsButtonFocused() bool {
	_, ok := f.items[f.cursor].(*Button)
	return ok
}

// IsSomePopupOpen reports whether any select popup is open.
func (f *Form[E]) IsSomePopupOpen() bool {
	return f.openPopup() >= 0
}

func (f *Form[E]) openPopup() int {
	for i, item := range f.items {
		if _, hidden := f.hidden[i]; hidden {
			continue
		}
		if s, ok := item.(*SelectInput); ok && s.Popup != nil && s.Popup.IsOpen() {
			return i
		}
	}

	return -1
}

// HandleEvent routes one key press. An open popup receives it exclusively.
// Otherwise navigation keys move the focus first and the event is then
// delivered to the focused field; activating a Button calls onButton with
// the button's identifier and the form itself. An error from onButton is
// returned unchanged.
func (f *Form[E]) HandleEvent(ev events.Event, onButton func(E, *Form[E]) error) error {
	k, ok := events.KeyOf(ev)
	if !ok {
		return nil
	}

	if i := f.openPopup(); i >= 0 {
		f.handleSelect(f.items[i].(*SelectInput), k, ev)
		return nil
	}

	switch k.Key() {
	case tcell.KeyUp, tcell.KeyBacktab:
		f.RetreatCursor()
	case tcell.KeyDown, tcell.KeyTab:
		f.AdvanceCursor()
	case tcell.KeyEnter:
		if !f.IsButtonFocused() {
			f.AdvanceCursor()
		}
	}

	switch item := f.items[f.cursor].(type) {
	case *InputBox:
		HandleTextInput(&item.Text, &f.textCursor, ev)
	case *BooleanInput:
		if isToggleKey(k) {
			item.Value = !item.Value
			f.textCursor = item.MaxCursor()
		}
	case *SelectInput:
		f.handleSelect(item, k, ev)
	case *Button:
		if k.Key() == tcell.KeyEnter && onButton != nil {
			return onButton(f.ids[f.cursor], f)
		}
	}

	return nil
}

func isToggleKey(k *tcell.EventKey) bool {
	if events.IsPrintable(k) || events.IsBackspace(k) {
		return true
	}

	return k.Key() == tcell.KeyLeft || k.Key() == tcell.KeyRight
}

func (f *Form[E]) handleSelect(item *SelectInput, k *tcell.EventKey, ev events.Event) {
	if item.Popup == nil {
		return
	}

	if item.Popup.IsOpen() {
		item.Popup.HandleEvent(ev, func(selected string) {
			item.Text = selected
			f.textCursor = utf8.RuneCountInString(selected)
		})
		return
	}

	switch {
	case events.IsPrintable(k):
		item.Popup.OpenWithFilter(string(k.Rune()))
	case events.IsBackspace(k):
		item.Popup.Open()
	}
}

// Height returns the rows Render would consume at the given width.
func (f *Form[E]) Height(width int) int {
	area := component.Rect{Width: width}
	total := 0
	for i, item := range f.items {
		if _, hidden := f.hidden[i]; hidden {
			continue
		}
		total += f.rowHeight(item, area)
	}

	return total
}

func (f *Form[E]) rowHeight(item Field, area component.Rect) int {
	switch item := item.(type) {
	case *Heading, *StaticText:
		return headingHeight
	case *Button:
		return buttonRows
	case *DisplayText:
		return statusHeight(item.Text, area)
	case *ErrorText:
		return statusHeight(item.Text, area)
	default:
		return f.boxFor(-1, item).heightUsed(area)
	}
}

func statusHeight(text string, area component.Rect) int {
	if text == "" {
		return 0
	}

	return len(wrapRunes(text, area.Width-2)) + 2
}

// boxFor adapts a text-like field to the input box renderer.
func (f *Form[E]) boxFor(i int, item Field) inputBox {
	b := inputBox{focus: f.formFocus && i == f.cursor, label: LabelOf(item)}
	switch item := item.(type) {
	case *InputBox:
		b.text, b.emptyText, b.currency = item.Text, item.EmptyText, item.Currency
	case *DisplayBox:
		b.text, b.emptyText = item.Text, item.EmptyText
	case *BooleanInput:
		b.text = strconv.FormatBool(item.Value)
	case *SelectInput:
		b.text, b.emptyText = item.Text, item.EmptyText
	}

	if f.everythingEmpty {
		b.text, b.emptyText = "", ""
	}

	return b
}

// Render lays the visible fields out top to bottom inside area. Open popups
// are drawn last so they cover the fields below them.
func (f *Form[E]) Render(screen tcell.Screen, area component.Rect, th *theme.Theme) {
	full := area
	c := newCanvas(screen, full)
	anchors := make(map[int]component.Rect)

	for i, item := range f.items {
		if _, hidden := f.hidden[i]; hidden {
			continue
		}
		if area.Height <= 0 {
			break
		}

		h := f.rowHeight(item, area)
		switch item := item.(type) {
		case *Heading:
			c.text(area.X, area.Y, area.Width, item.Text, th.Heading())
		case *StaticText:
			c.text(area.X, area.Y, area.Width, item.Text, th.Base())
		case *Button:
			buttonWidget{focus: f.formFocus && i == f.cursor, label: item.Label}.render(screen, area, th)
		case *DisplayText:
			f.renderStatus(c, area, item.Text, th.Info())
		case *ErrorText:
			f.renderStatus(c, area, item.Text, th.Error())
		default:
			f.boxFor(i, item).render(screen, area, f.textCursor, th)
			anchors[i] = component.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: h}
		}

		area = area.Below(h)
	}

	for i, item := range f.items {
		if s, ok := item.(*SelectInput); ok && s.Popup != nil {
			if anchor, placed := anchors[i]; placed {
				s.Popup.Render(screen, anchor, full, th)
			}
		}
	}
}

func (f *Form[E]) renderStatus(c canvas, area component.Rect, text string, style tcell.Style) {
	if text == "" {
		return
	}

	inner := area.Below(1).Margin(1, 0)
	for i, line := range wrapRunes(text, inner.Width) {
		c.text(inner.X, inner.Y+i, inner.Width, line, style)
	}
}
