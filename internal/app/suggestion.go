package app

import (
	"strings"

	"github.com/tern-fm/tern/internal/classify"
	"github.com/tern-fm/tern/internal/suggest"
)

// buildContext derives the suggestion engine's dispatch context from the
// current line and classifier result (spec.md §4.4). Only called when the
// cursor sits at the end of the buffer — word-interior suggestions are out
// of scope (see Loop.computeSuggestion).
func buildContext(text string, res classify.Result) suggest.Context {
	trimmed := strings.TrimLeft(text, " \t")
	isComment := strings.HasPrefix(trimmed, "#")

	fields := strings.Fields(text)
	command := ""
	if len(fields) > 0 {
		command = strings.ToLower(fields[0])
	}

	lastStart := lastWordByteStart(text)
	return suggest.Context{
		Command:         command,
		IsComment:       isComment,
		WrongCmd:        res.WrongCmd,
		CursorAtWordEnd: true,
		LastWord:        text[lastStart:],
		LastWordOffset:  lastStart,
	}
}

// lastWordByteStart returns the byte offset where the word ending at text's
// end begins, mirroring buffer.Buffer.LastWordStart but operating directly
// on the rendered text so callers don't need a live buffer reference.
func lastWordByteStart(text string) int {
	i := len(text)
	for i > 0 && !isSpaceByte(text[i-1]) {
		i--
	}
	return i
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

// computeSuggestion runs the suggestion engine for the current session
// state, or returns nil if suggestions are suppressed this tick.
func (l *Loop) computeSuggestion(text string, res classify.Result) *suggest.Suggestion {
	b := l.Sess.Buffer
	if b.Cursor() != b.End() {
		return nil // spec.md §4.4: never overwrite buffer text right of the cursor
	}
	ctx := buildContext(text, res)
	return suggest.Suggest(ctx, l.Sess.Config.SuggestionStrategy, l.Sess.Sources())
}

// suggestionTail returns the ghost text to render for sug and whether it
// should render at all, given the text already in the buffer. Per
// spec.md §3, an inline suggestion overlays only the untyped tail of the
// word under the cursor; a BAEJ suggestion's full text is shown after a
// " > " separator regardless of any shared prefix.
func suggestionTail(text string, sug *suggest.Suggestion) (string, bool) {
	if sug == nil || sug.Text == "" {
		return "", false
	}
	switch sug.Kind {
	case suggest.KindBAEJ:
		return " > " + sug.Text, true
	case suggest.KindInline:
		typed := text[lastWordByteStart(text):]
		if !strings.HasPrefix(sug.Text, typed) {
			return "", false
		}
		tail := sug.Text[len(typed):]
		if tail == "" {
			return "", false
		}
		return tail, true
	default:
		return "", false
	}
}
