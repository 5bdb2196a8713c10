package events

import "github.com/gdamore/tcell/v2"

// KeyOf returns the key press carried by ev, if any.
func KeyOf(ev Event) (*tcell.EventKey, bool) {
	in, ok := ev.(Input)
	if !ok || in.Key == nil {
		return nil, false
	}

	return in.Key, true
}

// IsKeyPressed reports whether ev is a press of key without modifiers.
// Backspace matches both terminal encodings.
func IsKeyPressed(ev Event, key tcell.Key) bool {
	k, ok := KeyOf(ev)
	if !ok || k.Modifiers() != tcell.ModNone {
		return false
	}

	if key == tcell.KeyBackspace || key == tcell.KeyBackspace2 {
		return IsBackspace(k)
	}

	return k.Key() == key
}

// IsCharPressed reports whether ev is a press of the printable rune ch.
func IsCharPressed(ev Event, ch rune) bool {
	k, ok := KeyOf(ev)

	return ok && IsPrintable(k) && k.Rune() == ch
}

// IsAnyKeyPressed reports whether ev is a key press at all.
func IsAnyKeyPressed(ev Event) bool {
	_, ok := KeyOf(ev)
	return ok
}

// IsBackspace matches both the ^H and DEL encodings of backspace.
func IsBackspace(k *tcell.EventKey) bool {
	return k.Key() == tcell.KeyBackspace || k.Key() == tcell.KeyBackspace2
}

// IsPrintable reports whether k inserts a character. Alt and Ctrl chords
// are shortcuts, not text.
func IsPrintable(k *tcell.EventKey) bool {
	if k.Key() != tcell.KeyRune {
		return false
	}

	return k.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) == 0
}
