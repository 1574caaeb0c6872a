package ui

import "slices"

// KeyMode selects the keybinding set of the interactive preview.
type KeyMode string

const (
	// KeyModeVim enables vim-style keys (j/k, gg/G, / filter).
	KeyModeVim KeyMode = "vim"
	// KeyModeEmacs enables ctrl-modified emacs keys.
	KeyModeEmacs KeyMode = "emacs"
	// KeyModeFunction disables single-key shortcuts; arrows and function keys only.
	KeyModeFunction KeyMode = "function"
)

// DefaultKeyMode is the default keybinding mode.
const DefaultKeyMode = KeyModeVim

// ValidKeyModes lists all valid key modes for validation.
var ValidKeyModes = []KeyMode{KeyModeVim, KeyModeEmacs, KeyModeFunction}

// IsValidKeyMode checks if a key mode string is valid. Empty means the default.
func IsValidKeyMode(mode string) bool {
	return mode == "" || slices.Contains(ValidKeyModes, KeyMode(mode))
}

// KeyAction is what a key press does in the preview.
type KeyAction string

const (
	ActionNone     KeyAction = ""
	ActionDown     KeyAction = "down"
	ActionUp       KeyAction = "up"
	ActionPageDown KeyAction = "page_down"
	ActionPageUp   KeyAction = "page_up"
	ActionTop      KeyAction = "top"
	ActionBottom   KeyAction = "bottom"
	ActionFilter   KeyAction = "filter"
	ActionClear    KeyAction = "clear"
	ActionQuit     KeyAction = "quit"
	actionPendingG KeyAction = "pending_g"
)

// commonKeyBindings apply in every mode.
var commonKeyBindings = map[string]KeyAction{
	"down":   ActionDown,
	"up":     ActionUp,
	"pgdown": ActionPageDown,
	"pgup":   ActionPageUp,
	"home":   ActionTop,
	"end":    ActionBottom,
	"f3":     ActionFilter,
	"esc":    ActionClear,
	"ctrl+c": ActionQuit,
	"f10":    ActionQuit,
}

// VimKeyBindings maps keys to actions for vim mode.
var VimKeyBindings = map[string]KeyAction{
	"j": ActionDown,
	"k": ActionUp,
	"g": actionPendingG,
	"G": ActionBottom,
	"/": ActionFilter,
	"q": ActionQuit,
}

// EmacsKeyBindings maps keys to actions for emacs mode.
var EmacsKeyBindings = map[string]KeyAction{
	"ctrl+n": ActionDown,
	"ctrl+p": ActionUp,
	"alt+<":  ActionTop,
	"alt+>":  ActionBottom,
	"ctrl+s": ActionFilter,
	"ctrl+g": ActionClear,
	"ctrl+q": ActionQuit,
}

// keyResolver turns key strings into actions, tracking the pending g of gg.
type keyResolver struct {
	mode    KeyMode
	pending string
}

func newKeyResolver(mode KeyMode) *keyResolver {
	if !IsValidKeyMode(string(mode)) || mode == "" {
		mode = DefaultKeyMode
	}
	return &keyResolver{mode: mode}
}

func (r *keyResolver) resolve(key string) KeyAction {
	if r.pending == "g" {
		r.pending = ""
		if key == "g" {
			return ActionTop
		}
	}

	var action KeyAction
	var ok bool
	switch r.mode {
	case KeyModeVim:
		action, ok = VimKeyBindings[key]
	case KeyModeEmacs:
		action, ok = EmacsKeyBindings[key]
	}
	if !ok {
		action = commonKeyBindings[key]
	}

	if action == actionPendingG {
		r.pending = "g"
		return ActionNone
	}
	return action
}

// help is the footer hint for the mode.
func (r *keyResolver) help() string {
	switch r.mode {
	case KeyModeEmacs:
		return "C-n/C-p move  C-s filter  C-g clear  C-q quit"
	case KeyModeFunction:
		return "↑/↓ move  F3 filter  esc clear  F10 quit"
	}
	return "j/k move  gg/G top/bottom  / filter  esc clear  q quit"
}
