package termio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI sequences for cursor/region control. Grounded on pkg/ui/terminal.go's
// escape constants, extended with the relative-move/erase sequences §4.1
// requires (move_rel, move_col, erase_to_right, erase_below).
const (
	escHideCursor    = "\x1b[?25l"
	escShowCursor    = "\x1b[?25h"
	escEraseToRight  = "\x1b[K"
	escEraseBelow    = "\x1b[J"
	escMoveColPrefix = "\x1b["
)

// HideCursor hides the terminal cursor. Idempotent: writing it again is a no-op visually.
func HideCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, escHideCursor)
}

// ShowCursor makes the terminal cursor visible again.
func ShowCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, escShowCursor)
}

// MoveRel moves the cursor dx columns (negative left, positive right) and dy
// rows (negative up, positive down). Zero deltas are no-ops.
func MoveRel(w io.Writer, dx, dy int) {
	if dy < 0 {
		_, _ = fmt.Fprintf(w, "\x1b[%dA", -dy)
	} else if dy > 0 {
		_, _ = fmt.Fprintf(w, "\x1b[%dB", dy)
	}
	if dx > 0 {
		_, _ = fmt.Fprintf(w, "\x1b[%dC", dx)
	} else if dx < 0 {
		_, _ = fmt.Fprintf(w, "\x1b[%dD", -dx)
	}
}

// MoveCol moves the cursor to absolute column c (1-based) on the current row.
func MoveCol(w io.Writer, c int) {
	if c < 1 {
		c = 1
	}
	_, _ = fmt.Fprintf(w, "%s%dG", escMoveColPrefix, c)
}

// EraseToRight clears from the cursor to the end of the current line.
func EraseToRight(w io.Writer) {
	_, _ = fmt.Fprint(w, escEraseToRight)
}

// EraseBelow clears from the cursor to the end of the screen.
func EraseBelow(w io.Writer) {
	_, _ = fmt.Fprint(w, escEraseBelow)
}

// WindowSize returns the current terminal size for fd. Callers refresh it on
// SIGWINCH (see ResizeNotifier) rather than polling.
func WindowSize(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}

// ResizeNotifier delivers a value every time the controlling terminal's size
// changes (SIGWINCH on unix; a closed-never channel on Windows, which has no
// such signal), so the caller can re-query WindowSize. Call Stop to release
// the underlying signal channel.
type ResizeNotifier struct {
	C    <-chan os.Signal
	stop func()
}

// Stop releases the signal channel backing the notifier.
func (n *ResizeNotifier) Stop() {
	if n != nil && n.stop != nil {
		n.stop()
	}
}
