package tui

import (
	"github.com/gdamore/tcell/v2"
)

// ActionHandler is a function that handles a key action
type ActionHandler func(evt *tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// KeyActions maps keys to application-wide actions. Pages never see keys
// bound here.
type KeyActions struct {
	actions map[tcell.Key]KeyAction
}

// NewKeyActions creates a new key actions manager
func NewKeyActions() KeyActions {
	return KeyActions{
		actions: make(map[tcell.Key]KeyAction),
	}
}

// Add adds a key action
func (k *KeyActions) Add(key tcell.Key, action KeyAction) {
	k.actions[key] = action
}

// Get retrieves a key action
func (k *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	action, ok := k.actions[key]
	return action, ok
}

var keyNames = []struct {
	key  tcell.Key
	name string
}{
	{tcell.KeyCtrlR, "^R"},
	{tcell.KeyCtrlC, "^C"},
}

// Hints returns visible action hints for status bar
func (k *KeyActions) Hints() []string {
	var hints []string
	for _, kn := range keyNames {
		if action, ok := k.actions[kn.key]; ok && action.Visible {
			hints = append(hints, "<"+kn.name+"> "+action.Description)
		}
	}

	return hints
}
