package app

import (
	"fmt"

	"github.com/tern-fm/tern/internal/buffer"
	"github.com/tern-fm/tern/internal/termio"
	"github.com/tern-fm/tern/pkg/ui"
)

// suggestionDim is the muted color spec.md §3 calls for: ghost text must
// be visually distinct from, and less prominent than, real buffer text.
const suggestionDim = "\x1b[2m"
const suggestionReset = "\x1b[0m"

// renderSuggestionOverlay draws the active suggestion's ghost text after
// the cursor and restores the cursor to its logical column, per
// spec.md §4.4's inline/BAEJ rendering rules. Called immediately after
// Driver.Render, which has already positioned the cursor at the end of
// the buffer (computeSuggestion only ever produces a suggestion when the
// cursor sits there).
func (l *Loop) renderSuggestionOverlay(text string, wrongCmd bool) {
	tail, ok := suggestionTail(text, l.suggestion)
	if !ok {
		return
	}

	prompt := l.Sess.Config.PromptStr
	if wrongCmd {
		prompt = l.Sess.Config.WarningPromptStr
	}
	cursorCol := 1 + lineDisplayWidth(prompt) + lineDisplayWidth(text)
	fmt.Fprint(l.out, suggestionDim, tail, suggestionReset)
	termio.EraseToRight(l.out)
	termio.MoveCol(l.out, cursorCol)
}

// suggestionRows reports how many rows beyond the first the prompt,
// buffer text, and suggestion tail together claim on a terminal of the
// attached width, the value Suggestion.Rows carries per spec.md §3 so the
// highlighter's erase-below bookkeeping never leaves trailing ghost
// glyphs behind on a narrower redraw. Grounded on pkg/ui/terminal.go's
// Dimensions, generalized from a single-shot width query into a per-tick
// wrap calculation.
func (l *Loop) suggestionRows(prompt, text, tail string) int {
	width, _ := ui.Dimensions(l.out, 80, 24)
	if width <= 0 {
		return 0
	}
	total := lineDisplayWidth(prompt) + lineDisplayWidth(text) + lineDisplayWidth(tail)
	rows := (total - 1) / width
	if rows < 0 {
		return 0
	}
	return rows
}

func lineDisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += buffer.DisplayWidth(r)
	}
	return w
}
