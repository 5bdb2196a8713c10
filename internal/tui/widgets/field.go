package widgets

import (
	"strconv"
	"unicode/utf8"
)

// Field is one row of a Form. The set of variants is closed; each variant is
// a pointer type so the form edits it in place.
type Field interface {
	// MaxCursor is the upper bound of the text-edit cursor.
	MaxCursor() int

	isField()
}

// Heading is a bold section title.
type Heading struct {
	Text string
}

// StaticText is a fixed informational line.
type StaticText struct {
	Text string
}

// InputBox is an editable text field. EmptyText is shown while Text is
// empty; Currency, when set, annotates the value with its unit.
type InputBox struct {
	Label     string
	Text      string
	EmptyText string
	Currency  string
}

// BooleanInput is a toggle.
type BooleanInput struct {
	Label string
	Value bool
}

// DisplayBox shows a value the user cannot edit, drawn like an InputBox.
type DisplayBox struct {
	Label     string
	Text      string
	EmptyText string
}

// SelectInput is a text field whose value is chosen from Popup. Text holds
// the committed selection.
type SelectInput struct {
	Label     string
	Text      string
	EmptyText string
	Popup     *FilterSelectPopup
}

// Button invokes the form's button callback when activated.
type Button struct {
	Label string
}

// DisplayText is a status line, hidden while empty.
type DisplayText struct {
	Text string
}

// ErrorText is an error line, hidden while empty.
type ErrorText struct {
	Text string
}

func (*Heading) MaxCursor() int        { return 0 }
func (*StaticText) MaxCursor() int     { return 0 }
func (f *InputBox) MaxCursor() int     { return utf8.RuneCountInString(f.Text) }
func (f *BooleanInput) MaxCursor() int { return len(strconv.FormatBool(f.Value)) }
func (f *DisplayBox) MaxCursor() int   { return utf8.RuneCountInString(f.Text) }
func (f *SelectInput) MaxCursor() int  { return utf8.RuneCountInString(f.Text) }
func (*Button) MaxCursor() int         { return 0 }
func (*DisplayText) MaxCursor() int    { return 0 }
func (*ErrorText) MaxCursor() int      { return 0 }

func (*Heading) isField()      {}
func (*StaticText) isField()   {}
func (*InputBox) isField()     {}
func (*BooleanInput) isField() {}
func (*DisplayBox) isField()   {}
func (*SelectInput) isField()  {}
func (*Button) isField()       {}
func (*DisplayText) isField()  {}
func (*ErrorText) isField()    {}

// LabelOf returns the caption of labelled fields and "" for the others.
func LabelOf(f Field) string {
	switch f := f.(type) {
	case *InputBox:
		return f.Label
	case *BooleanInput:
		return f.Label
	case *DisplayBox:
		return f.Label
	case *SelectInput:
		return f.Label
	case *Button:
		return f.Label
	default:
		return ""
	}
}

// IsInteractive reports whether focus may rest on f.
func IsInteractive(f Field) bool {
	switch f.(type) {
	case *InputBox, *DisplayBox, *BooleanInput, *SelectInput, *Button:
		return true
	default:
		return false
	}
}

// NewSelectInput builds a SelectInput whose popup offers candidates.
func NewSelectInput(label string, candidates []string) *SelectInput {
	return &SelectInput{
		Label: label,
		Popup: NewFilterSelectPopup(label, candidates),
	}
}
