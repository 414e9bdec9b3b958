// Package highlight drives in-place recoloring of the input line and the
// prompt swap between normal and warning style, per spec.md §4.5.
// Grounded on internal/interactive/render_screen.go's column-math redraw
// pattern (saveCursorAtSearchPrompt's display-width-aware cursor
// positioning) and internal/prompt/prompt.go's prompt-string model,
// narrowed from a full dialog prompter down to the save/swap/restore the
// driver needs.
package highlight

import (
	"fmt"
	"io"

	"github.com/tern-fm/tern/internal/buffer"
	"github.com/tern-fm/tern/internal/classify"
	"github.com/tern-fm/tern/internal/termio"
)

// ANSI color codes emitted for each classify.Color. These are the
// "configured, typically red" codes spec.md §4.5 leaves to the driver.
var colorCodes = map[classify.Color]string{
	classify.ColorNone:         "",
	classify.ColorCommand:      "\x1b[32m",
	classify.ColorCommandWrong: "\x1b[31m",
	classify.ColorArgument:     "",
	classify.ColorString:       "\x1b[33m",
	classify.ColorComment:      "\x1b[90m",
	classify.ColorVariable:     "\x1b[36m",
	classify.ColorOperator:     "\x1b[35m",
}

const resetCode = "\x1b[0m"

// Prompt holds the pair of prompt strings the driver swaps between, per
// spec.md §6's prompt_str/warning_prompt_str config fields.
type Prompt struct {
	Normal  string
	Warning string
}

// Driver owns the redraw/prompt-swap state across ticks: whether the
// warning prompt is currently installed, and the row count claimed by
// the last frame (buffer + suggestion), so the next frame's erase-below
// covers at least as much as the last one did.
type Driver struct {
	w         io.Writer
	prompt    Prompt
	warningOn bool
	lastRows  int
}

// NewDriver returns a Driver that writes its redraws to w. w may be nil at
// construction time (session.New builds a Driver before the loop's output
// writer exists) — call SetWriter before the first Render.
func NewDriver(w io.Writer, prompt Prompt) *Driver {
	return &Driver{w: w, prompt: prompt}
}

// SetWriter installs the writer redraws go to. The event loop calls this
// once, wiring its own stdout into the Driver session.New constructed
// without one.
func (d *Driver) SetWriter(w io.Writer) {
	d.w = w
}

// activePrompt returns the prompt string that should currently be shown.
func (d *Driver) activePrompt() string {
	if d.warningOn {
		return d.prompt.Warning
	}
	return d.prompt.Normal
}

// Render implements spec.md §4.5's redraw contract: move the cursor to
// line start, re-emit each grapheme preceded by its color code, restore
// the cursor to its logical column, then re-emit enough erase-below to
// cover the largest state seen since the last full clear. wrongCmd drives
// the prompt swap: on a false→true transition the warning prompt is
// installed; on true→false it is restored. extraRows is the number of
// additional rows a visible suggestion currently claims, folded into the
// erase-below bookkeeping so suggestion cells never leave trailing
// glyphs (spec.md §4.4's "never leave trailing glyphs" rule).
func (d *Driver) Render(b *buffer.Buffer, res classify.Result, wrongCmd bool, extraRows int) {
	d.warningOn = wrongCmd

	termio.MoveCol(d.w, 1)
	fmt.Fprint(d.w, d.activePrompt())

	text := b.Text()
	d.writeColoredLine(text, res)

	termio.EraseToRight(d.w)

	cursorCol := 1 + displayWidth(d.activePrompt()) + displayWidthUpTo(text, b.ByteCursor())
	termio.MoveCol(d.w, cursorCol)

	rows := 1 + extraRows
	if rows < d.lastRows {
		termio.EraseBelow(d.w)
	}
	d.lastRows = rows
}

func (d *Driver) writeColoredLine(text string, res classify.Result) {
	current := classify.ColorNone
	open := false
	for i := 0; i < len(text); i++ {
		c := res.Colors[i]
		if c != current || !open {
			if open {
				fmt.Fprint(d.w, resetCode)
			}
			if code := colorCodes[c]; code != "" {
				fmt.Fprint(d.w, code)
				open = true
			} else {
				open = false
			}
			current = c
		}
		_, _ = d.w.Write([]byte{text[i]})
	}
	if open {
		fmt.Fprint(d.w, resetCode)
	}
}

// Reset clears the driver's row bookkeeping, used after a full screen
// clear (e.g. on SIGCONT or an explicit redraw command).
func (d *Driver) Reset() {
	d.lastRows = 0
}

// WarningActive reports whether the warning prompt is currently installed.
func (d *Driver) WarningActive() bool { return d.warningOn }

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += buffer.DisplayWidth(r)
	}
	return w
}

func displayWidthUpTo(s string, byteLen int) int {
	w := 0
	for i, r := range s {
		if i >= byteLen {
			break
		}
		w += buffer.DisplayWidth(r)
	}
	return w
}
