package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/events"
)

// HandleTextInput applies one key press to an editable text and its rune
// cursor. It reports whether the event was consumed.
func HandleTextInput(text *string, cursor *int, ev events.Event) bool {
	k, ok := events.KeyOf(ev)
	if !ok {
		return false
	}

	runes := []rune(*text)
	pos := min(max(*cursor, 0), len(runes))

	switch {
	case events.IsPrintable(k):
		updated := make([]rune, 0, len(runes)+1)
		updated = append(updated, runes[:pos]...)
		updated = append(updated, k.Rune())
		updated = append(updated, runes[pos:]...)
		*text, *cursor = string(updated), pos+1
	case events.IsBackspace(k):
		if pos == 0 {
			*cursor = pos
			return true
		}
		*text, *cursor = string(append(runes[:pos-1:pos-1], runes[pos:]...)), pos-1
	default:
		switch k.Key() {
		case tcell.KeyDelete:
			if pos < len(runes) {
				*text = string(append(runes[:pos:pos], runes[pos+1:]...))
			}
			*cursor = pos
		case tcell.KeyLeft:
			*cursor = max(pos-1, 0)
		case tcell.KeyRight:
			*cursor = min(pos+1, len(runes))
		case tcell.KeyHome, tcell.KeyCtrlA:
			*cursor = 0
		case tcell.KeyEnd, tcell.KeyCtrlE:
			*cursor = len(runes)
		case tcell.KeyCtrlU:
			*text, *cursor = string(runes[pos:]), 0
		default:
			return false
		}
	}

	return true
}
