package keybindings

// Action names the line-editor operation a keystroke dispatches to.
// This is the generalized version of ggc's workflow-oriented action set,
// narrowed to the operations the line editor (spec §4.2) exposes.
type Action string

// Line-editor actions recognized by the resolver and dispatch loop.
const (
	ActionBackspace            Action = "backspace"
	ActionDelete               Action = "delete"
	ActionMoveLeft             Action = "move_left"
	ActionMoveRight            Action = "move_right"
	ActionWordLeft             Action = "word_left"
	ActionWordRight            Action = "word_right"
	ActionHome                 Action = "home"
	ActionEnd                  Action = "end"
	ActionKillToEnd            Action = "kill_to_end"
	ActionKillToStart          Action = "kill_to_start"
	ActionKillWord             Action = "kill_word"
	ActionYank                 Action = "yank"
	ActionHistoryPrev          Action = "history_prev"
	ActionHistoryNext          Action = "history_next"
	ActionAcceptLine           Action = "accept_line"
	ActionAcceptSuggestion     Action = "accept_suggestion"
	ActionAcceptSuggestionWord Action = "accept_suggestion_word"
	ActionClearScreen          Action = "clear_screen"
	ActionReloadStores         Action = "reload_stores"
)

// AllActions lists every bindable action, in a stable display order.
func AllActions() []Action {
	return []Action{
		ActionBackspace, ActionDelete,
		ActionMoveLeft, ActionMoveRight, ActionWordLeft, ActionWordRight,
		ActionHome, ActionEnd,
		ActionKillToEnd, ActionKillToStart, ActionKillWord, ActionYank,
		ActionHistoryPrev, ActionHistoryNext,
		ActionAcceptLine, ActionAcceptSuggestion, ActionAcceptSuggestionWord,
		ActionClearScreen, ActionReloadStores,
	}
}

// KeyBindingMap holds the resolved key strokes for every line-editor action.
// Multiple key strokes per action are supported (e.g. history_prev bound to
// both Ctrl+P and the Up arrow).
type KeyBindingMap struct {
	Backspace            []KeyStroke
	Delete               []KeyStroke
	MoveLeft             []KeyStroke
	MoveRight            []KeyStroke
	WordLeft             []KeyStroke
	WordRight            []KeyStroke
	Home                 []KeyStroke
	End                  []KeyStroke
	KillToEnd            []KeyStroke
	KillToStart          []KeyStroke
	KillWord             []KeyStroke
	Yank                 []KeyStroke
	HistoryPrev          []KeyStroke
	HistoryNext          []KeyStroke
	AcceptLine           []KeyStroke
	AcceptSuggestion     []KeyStroke
	AcceptSuggestionWord []KeyStroke
	ClearScreen          []KeyStroke
	ReloadStores         []KeyStroke
}

// DefaultKeyBindingMap returns the built-in default (readline-like) bindings.
func DefaultKeyBindingMap() *KeyBindingMap {
	return &KeyBindingMap{
		Backspace:            []KeyStroke{NewRawKeyStroke([]byte{127})},
		Delete:               []KeyStroke{NewCtrlKeyStroke('d')},
		MoveLeft:             []KeyStroke{NewLeftArrowKeyStroke()},
		MoveRight:            []KeyStroke{NewRightArrowKeyStroke()},
		WordLeft:             []KeyStroke{NewAltKeyStroke('b', "b")},
		WordRight:            []KeyStroke{NewAltKeyStroke('f', "f")},
		Home:                 []KeyStroke{NewCtrlKeyStroke('a')},
		End:                  []KeyStroke{NewCtrlKeyStroke('e')},
		KillToEnd:            []KeyStroke{NewCtrlKeyStroke('k')},
		KillToStart:          []KeyStroke{NewCtrlKeyStroke('u')},
		KillWord:             []KeyStroke{NewCtrlKeyStroke('w')},
		Yank:                 []KeyStroke{NewCtrlKeyStroke('y')},
		HistoryPrev:          []KeyStroke{NewCtrlKeyStroke('p'), NewUpArrowKeyStroke()},
		HistoryNext:          []KeyStroke{NewCtrlKeyStroke('n'), NewDownArrowKeyStroke()},
		AcceptLine:           []KeyStroke{NewEnterKeyStroke()},
		AcceptSuggestion:     []KeyStroke{NewRightArrowKeyStroke()},
		AcceptSuggestionWord: []KeyStroke{NewTabKeyStroke()},
		ClearScreen:          []KeyStroke{NewCtrlKeyStroke('l')},
		ReloadStores:         []KeyStroke{NewCtrlKeyStroke('r')},
	}
}

// field returns the slice backing a given action, or nil for unknown actions.
func (km *KeyBindingMap) field(a Action) *[]KeyStroke {
	switch a {
	case ActionBackspace:
		return &km.Backspace
	case ActionDelete:
		return &km.Delete
	case ActionMoveLeft:
		return &km.MoveLeft
	case ActionMoveRight:
		return &km.MoveRight
	case ActionWordLeft:
		return &km.WordLeft
	case ActionWordRight:
		return &km.WordRight
	case ActionHome:
		return &km.Home
	case ActionEnd:
		return &km.End
	case ActionKillToEnd:
		return &km.KillToEnd
	case ActionKillToStart:
		return &km.KillToStart
	case ActionKillWord:
		return &km.KillWord
	case ActionYank:
		return &km.Yank
	case ActionHistoryPrev:
		return &km.HistoryPrev
	case ActionHistoryNext:
		return &km.HistoryNext
	case ActionAcceptLine:
		return &km.AcceptLine
	case ActionAcceptSuggestion:
		return &km.AcceptSuggestion
	case ActionAcceptSuggestionWord:
		return &km.AcceptSuggestionWord
	case ActionClearScreen:
		return &km.ClearScreen
	case ActionReloadStores:
		return &km.ReloadStores
	default:
		return nil
	}
}

// Set assigns the key strokes bound to an action.
func (km *KeyBindingMap) Set(a Action, keys []KeyStroke) {
	if f := km.field(a); f != nil {
		*f = keys
	}
}

// Get returns the key strokes bound to an action.
func (km *KeyBindingMap) Get(a Action) []KeyStroke {
	if f := km.field(a); f != nil {
		return *f
	}
	return nil
}

// Lookup finds the action bound to a given key stroke, if any. When several
// actions share a key (a misconfiguration `Conflicts` would flag), the first
// match in `AllActions` order wins.
func (km *KeyBindingMap) Lookup(ks KeyStroke) (Action, bool) {
	for _, a := range AllActions() {
		for _, bound := range km.Get(a) {
			if bound.Equals(ks) {
				return a, true
			}
		}
	}
	return "", false
}

// Conflicts reports key strokes bound to more than one action, formatted as
// "<keystroke>: <action>,<action>,...".
func (km *KeyBindingMap) Conflicts() []string {
	seen := make(map[string][]string)
	var order []string
	for _, a := range AllActions() {
		for _, ks := range km.Get(a) {
			key := ks.String()
			if _, ok := seen[key]; !ok {
				order = append(order, key)
			}
			seen[key] = append(seen[key], string(a))
		}
	}
	var conflicts []string
	for _, key := range order {
		actions := seen[key]
		if len(actions) > 1 {
			line := key + ": "
			for i, a := range actions {
				if i > 0 {
					line += ","
				}
				line += a
			}
			conflicts = append(conflicts, line)
		}
	}
	return conflicts
}
