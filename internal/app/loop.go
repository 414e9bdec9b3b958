// Package app implements the cooperative, single-threaded event loop that
// ties the line editor, classifier, suggestion engine, and highlighter
// together (spec.md §2/§5). Grounded on router/router.go's dispatch-table
// style: one Route per input event, one switch per action, generalized
// from a one-shot CLI dispatch into a per-keystroke loop that never
// returns until the user exits.
package app

import (
	"fmt"
	"io"

	"github.com/tern-fm/tern/internal/classify"
	"github.com/tern-fm/tern/internal/diag"
	"github.com/tern-fm/tern/internal/keybindings"
	"github.com/tern-fm/tern/internal/session"
	"github.com/tern-fm/tern/internal/store"
	"github.com/tern-fm/tern/internal/suggest"
	"github.com/tern-fm/tern/internal/termio"
	"github.com/tern-fm/tern/pkg/ui"
)

// Loop owns the terminal-facing event loop for one interactive session.
type Loop struct {
	Sess   *session.Session
	Keymap *keybindings.KeyBindingMap
	Diag   *diag.Sink

	in  *termio.TimedByteReader
	out io.Writer

	suggestion  *suggest.Suggestion
	historyPos  int // index one-past the entry currently shown, 0 = not browsing
	browseStash string
}

// NewLoop returns a Loop reading keys from in and writing redraws to out.
// session.New constructs its Highlighter with a nil writer (it has no
// output stream yet), so NewLoop installs the real one here — without
// this, the first Render call's termio.MoveCol(nil, ...) would panic
// before a single key is ever read.
func NewLoop(sess *session.Session, keymap *keybindings.KeyBindingMap, diagSink *diag.Sink, in *termio.TimedByteReader, out io.Writer) *Loop {
	sess.Highlighter.SetWriter(out)
	return &Loop{Sess: sess, Keymap: keymap, Diag: diagSink, in: in, out: out}
}

// Run executes the read-classify-suggest-render cycle until the user exits
// or the input stream closes. Returning nil means a clean exit (an
// accepted "exit"/"quit" line); a non-nil error means the input stream
// failed.
func (l *Loop) Run() error {
	for {
		l.render()

		ev, err := termio.ReadKey(l.in)
		if err != nil {
			return err
		}

		exit, err := l.handle(ev)
		if err != nil {
			l.Diag.Warn("executor", "%v", err)
		}
		if exit {
			return nil
		}
	}
}

// handle dispatches one decoded key event, returning true if the loop
// should stop.
func (l *Loop) handle(ev termio.KeyEvent) (bool, error) {
	b := l.Sess.Buffer

	switch ev.Key {
	case termio.KeyGrapheme:
		b.Insert(ev.Rune)
		l.resetHistoryBrowse()
		return false, nil
	case termio.KeyBackspace:
		b.Backspace()
		l.resetHistoryBrowse()
		return false, nil
	case termio.KeyDelete:
		b.Delete()
		return false, nil
	case termio.KeyArrowLeft:
		b.MoveLeft()
		return false, nil
	case termio.KeyArrowRight:
		return l.handleArrowRight(), nil
	case termio.KeyWordLeft:
		b.WordLeft()
		return false, nil
	case termio.KeyWordRight:
		b.WordRight()
		return false, nil
	case termio.KeyHome:
		b.Home()
		return false, nil
	case termio.KeyEnd:
		l.handleEnd()
		return false, nil
	case termio.KeyTab:
		l.acceptSuggestionWord()
		return false, nil
	case termio.KeyEnter:
		return l.acceptLine()
	case termio.KeyArrowUp:
		l.browseHistory(-1)
		return false, nil
	case termio.KeyArrowDown:
		l.browseHistory(1)
		return false, nil
	case termio.KeyCtrl:
		return l.handleCtrl(ev.Rune)
	}
	return false, nil
}

// handleArrowRight implements the right-arrow dual role spec.md §4.2/§4.4
// describe: accept the active suggestion if the cursor is at the end of
// the buffer and one is showing, otherwise move the cursor.
func (l *Loop) handleArrowRight() bool {
	b := l.Sess.Buffer
	if l.suggestion != nil && b.Cursor() == b.End() {
		l.acceptSuggestion()
		return false
	}
	b.MoveRight()
	return false
}

// handleEnd implements spec.md §8 scenario 6: End accepts an active
// suggestion exactly as Right-arrow does when the cursor already sits at
// the end of the buffer (the only position a suggestion is ever computed
// for); otherwise it's the plain cursor-to-end motion of §4.2.
func (l *Loop) handleEnd() {
	b := l.Sess.Buffer
	if l.suggestion != nil && b.Cursor() == b.End() {
		l.acceptSuggestion()
		return
	}
	b.MoveToEnd()
}

func (l *Loop) handleCtrl(r rune) (bool, error) {
	action, ok := l.Keymap.Lookup(keybindings.NewCtrlKeyStroke(r))
	if !ok {
		return false, nil
	}
	return l.dispatch(action)
}

func (l *Loop) dispatch(action keybindings.Action) (bool, error) {
	b := l.Sess.Buffer
	switch action {
	case keybindings.ActionBackspace:
		b.Backspace()
	case keybindings.ActionDelete:
		b.Delete()
	case keybindings.ActionMoveLeft:
		b.MoveLeft()
	case keybindings.ActionMoveRight:
		b.MoveRight()
	case keybindings.ActionWordLeft:
		b.WordLeft()
	case keybindings.ActionWordRight:
		b.WordRight()
	case keybindings.ActionHome:
		b.Home()
	case keybindings.ActionEnd:
		l.handleEnd()
	case keybindings.ActionKillToEnd:
		b.KillToEnd()
	case keybindings.ActionKillToStart:
		b.KillToStart()
	case keybindings.ActionKillWord:
		b.KillWord()
	case keybindings.ActionYank:
		b.Yank()
	case keybindings.ActionHistoryPrev:
		l.browseHistory(-1)
	case keybindings.ActionHistoryNext:
		l.browseHistory(1)
	case keybindings.ActionAcceptLine:
		return l.acceptLine()
	case keybindings.ActionAcceptSuggestion:
		l.acceptSuggestion()
	case keybindings.ActionAcceptSuggestionWord:
		l.acceptSuggestionWord()
	case keybindings.ActionClearScreen:
		l.Sess.Highlighter.Reset()
		ui.ClearScreen(l.out)
	case keybindings.ActionReloadStores:
		l.reloadStores()
	}
	return false, nil
}

// acceptLine implements accept_line (spec.md §5): the buffer is handed to
// the executor, execution is recorded in history/jump/dirhistory, and the
// buffer is cleared for the next prompt. A bare "exit"/"quit" line stops
// the loop instead of spawning a shell.
func (l *Loop) acceptLine() (bool, error) {
	line := l.Sess.Buffer.Text()
	fmt.Fprintln(l.out)
	l.resetHistoryBrowse()
	l.suggestion = nil
	l.Sess.Buffer.SetText("")

	if line == "" {
		return false, nil
	}
	if line == "exit" || line == "quit" {
		return true, nil
	}

	l.Sess.RecordExecution(line)
	_, err := l.Sess.Executor.Run(line)
	return false, err
}

func (l *Loop) acceptSuggestion() {
	if l.suggestion == nil {
		return
	}
	switch l.suggestion.Kind {
	case suggest.KindBAEJ:
		l.Sess.Buffer.ReplaceLastWord(l.suggestion.Text)
	case suggest.KindInline:
		text := l.Sess.Buffer.Text()
		if tail, ok := suggestionTail(text, l.suggestion); ok {
			l.Sess.Buffer.AcceptTail(tail)
		}
	}
	l.suggestion = nil
}

// acceptSuggestionWord accepts only up to the next word boundary of the
// suggestion's tail (spec.md §4.2's accept_suggestion_word). A BAEJ
// suggestion has no internal word boundary to stop at short of the whole
// replacement, so it behaves the same as a full accept_suggestion there.
func (l *Loop) acceptSuggestionWord() {
	if l.suggestion == nil {
		return
	}
	if l.suggestion.Kind == suggest.KindBAEJ {
		l.acceptSuggestion()
		return
	}
	text := l.Sess.Buffer.Text()
	tail, ok := suggestionTail(text, l.suggestion)
	if !ok {
		return
	}
	cut := wordBoundary(tail)
	l.Sess.Buffer.AcceptTail(tail[:cut])
	if cut == len(tail) {
		l.suggestion = nil
	}
}

func wordBoundary(s string) int {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	for i < len(s) && !isSpaceByte(s[i]) {
		i++
	}
	return i
}

// browseHistory steps the buffer through history entries, most recent
// first, the way ActionHistoryPrev/Next describe. delta -1 moves to an
// older entry, +1 moves toward the live (unsent) line.
func (l *Loop) browseHistory(delta int) {
	h := l.Sess.History
	if h.Len() == 0 {
		return
	}
	if l.historyPos == 0 {
		l.browseStash = l.Sess.Buffer.Text()
		l.historyPos = h.Len()
	}
	l.historyPos += delta
	if l.historyPos < 1 {
		l.historyPos = 1
	}
	if l.historyPos > h.Len() {
		l.historyPos = 0
		l.Sess.Buffer.SetText(l.browseStash)
		return
	}
	if line, ok := h.At(store.HistoryHandle(l.historyPos - 1)); ok {
		l.Sess.Buffer.SetText(line)
	}
}

func (l *Loop) resetHistoryBrowse() {
	l.historyPos = 0
}

// reloadStores re-reads every persisted table and re-resolves the
// keybinding profile from the current config (spec.md §4.2's
// reload_stores), without restarting the process.
func (l *Loop) reloadStores() {
	for _, err := range l.Sess.Load("") {
		l.Diag.Warn("reload", "%v", err)
	}
	cfg := l.Sess.Config
	keymap, err := keybindings.NewResolver(cfg).Resolve(keybindings.Profile(cfg.Interactive.Profile))
	if err != nil {
		l.Diag.Warn("reload", "%v", err)
		keymap = keybindings.DefaultKeyBindingMap()
	}
	l.Keymap = keymap
}

// render runs the classifier and suggestion engine against the current
// buffer and redraws the line.
func (l *Loop) render() {
	text := l.Sess.Buffer.Text()
	lookups := l.Sess.Lookups()
	res := classify.Classify(text, lookups)
	l.Sess.WrongCmd = res.WrongCmd

	l.suggestion = l.computeSuggestion(text, res)

	prompt := l.Sess.Config.PromptStr
	if res.WrongCmd {
		prompt = l.Sess.Config.WarningPromptStr
	}
	extraRows := 0
	if tail, ok := suggestionTail(text, l.suggestion); ok {
		l.suggestion.Rows = l.suggestionRows(prompt, text, tail)
		extraRows = l.suggestion.Rows
	}

	l.Sess.Highlighter.Render(l.Sess.Buffer, res, res.WrongCmd, extraRows)
	l.renderSuggestionOverlay(text, res.WrongCmd)
}
