// Package buffer implements the line editor's input buffer: grapheme-aware
// cursor motion, kill/yank, and the quote-mode state machine that word
// motion and the classifier both rely on. Grounded on
// internal/interactive/input.go's realTimeEditor (grapheme clustering,
// word motion) generalized from that file's UI-bound editing methods into
// a standalone, redraw-agnostic buffer.
package buffer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// QuoteMode tracks the line editor's quote state, per spec.md §4.2: plain →
// single-quoted on an unescaped ', back to plain on the next unescaped ';
// likewise for double quotes. A backslash in plain mode escapes the next
// grapheme (including a following quote character).
type QuoteMode int

// Quote modes.
const (
	QuotePlain QuoteMode = iota
	QuoteSingle
	QuoteDouble
)

// Buffer is the input buffer: an ordered sequence of graphemes, always
// valid UTF-8, with a cursor and an end position tracked in both graphemes
// and bytes (spec.md §3 invariant: 0 <= cursor <= end).
type Buffer struct {
	runes  []rune
	cursor int // grapheme index
	quote  QuoteMode
	escape bool // previous grapheme in plain mode was an unescaped backslash
	yank   []rune
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Text returns the buffer contents as a string.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// SetText replaces the buffer contents and moves the cursor to the end.
func (b *Buffer) SetText(s string) {
	b.runes = []rune(s)
	b.cursor = len(b.runes)
	b.quote = QuotePlain
	b.escape = false
}

// Cursor returns the cursor position in graphemes.
func (b *Buffer) Cursor() int { return b.cursor }

// End returns the end position in graphemes (== len(runes)).
func (b *Buffer) End() int { return len(b.runes) }

// ByteCursor returns the cursor position in bytes.
func (b *Buffer) ByteCursor() int {
	return len(string(b.runes[:b.cursor]))
}

// ByteEnd returns the end position in bytes.
func (b *Buffer) ByteEnd() int {
	return len(string(b.runes))
}

// QuoteState reports the buffer's current quote mode.
func (b *Buffer) QuoteState() QuoteMode { return b.quote }

// DisplayWidth returns the terminal column width of rune r.
func DisplayWidth(r rune) int {
	if isCombining(r) || isVariationSelector(r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	return 1
}

func isCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

func isVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

// Insert splices a grapheme at the cursor and moves the cursor right by one.
// No operation in this package ever fails; an out-of-range cursor is
// clamped first.
func (b *Buffer) Insert(r rune) {
	b.clampCursor()
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.updateQuoteState(r)
	b.cursor++
}

// InsertString inserts each rune of s at the cursor in order.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

func (b *Buffer) updateQuoteState(r rune) {
	if b.escape {
		b.escape = false
		return
	}
	switch r {
	case '\\':
		if b.quote == QuotePlain {
			b.escape = true
		}
	case '\'':
		switch b.quote {
		case QuotePlain:
			b.quote = QuoteSingle
		case QuoteSingle:
			b.quote = QuotePlain
		}
	case '"':
		switch b.quote {
		case QuotePlain:
			b.quote = QuoteDouble
		case QuoteDouble:
			b.quote = QuotePlain
		}
	}
}

// Backspace removes the grapheme cluster before the cursor: a base rune
// plus any trailing combining marks, variation selectors, paired regional
// indicators, or ZWJ-joined runes, so one Backspace deletes one visual
// character regardless of how many code points it's made of. Grounded on
// internal/interactive/input.go's findGraphemeStart.
func (b *Buffer) Backspace() {
	b.clampCursor()
	if b.cursor == 0 {
		return
	}
	start := b.graphemeStart(b.cursor - 1)
	b.removeRange(start, b.cursor)
	b.cursor = start
	b.recomputeQuoteState()
}

func (b *Buffer) graphemeStart(pos int) int {
	start := pos
	for start >= 0 && (isCombining(b.runes[start]) || isVariationSelector(b.runes[start])) {
		start--
	}
	if start >= 0 && isRegionalIndicator(b.runes[start]) && start > 0 && isRegionalIndicator(b.runes[start-1]) {
		start--
	}
	for start > 0 && isZWJ(b.runes[start-1]) {
		start -= 2
		for start >= 0 && (isCombining(b.runes[start]) || isVariationSelector(b.runes[start])) {
			start--
		}
	}
	if start < 0 {
		start = 0
	}
	return start
}

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }
func isZWJ(r rune) bool               { return r == 0x200D }

// Delete removes the grapheme at the cursor.
func (b *Buffer) Delete() {
	b.clampCursor()
	if b.cursor >= len(b.runes) {
		return
	}
	b.removeRange(b.cursor, b.cursor+1)
	b.recomputeQuoteState()
}

func (b *Buffer) removeRange(from, to int) {
	b.runes = append(b.runes[:from], b.runes[to:]...)
}

// recomputeQuoteState replays the buffer up to the cursor; deletions can
// change quote state retroactively (e.g. deleting an opening quote), so we
// recompute from scratch rather than try to undo incrementally.
func (b *Buffer) recomputeQuoteState() {
	b.quote = QuotePlain
	b.escape = false
	for i := 0; i < b.cursor; i++ {
		r := b.runes[i]
		if b.escape {
			b.escape = false
			continue
		}
		switch r {
		case '\\':
			if b.quote == QuotePlain {
				b.escape = true
			}
		case '\'':
			if b.quote == QuotePlain {
				b.quote = QuoteSingle
			} else if b.quote == QuoteSingle {
				b.quote = QuotePlain
			}
		case '"':
			if b.quote == QuotePlain {
				b.quote = QuoteDouble
			} else if b.quote == QuoteDouble {
				b.quote = QuotePlain
			}
		}
	}
}

// MoveLeft moves the cursor one grapheme left.
func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight moves the cursor one grapheme right.
func (b *Buffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

// Home moves the cursor to the beginning of the buffer.
func (b *Buffer) Home() { b.cursor = 0 }

// MoveToEnd moves the cursor to the end of the buffer.
func (b *Buffer) MoveToEnd() { b.cursor = len(b.runes) }

// WordLeft moves the cursor to the start of the previous word.
func (b *Buffer) WordLeft() {
	b.cursor = wordLeftIndex(b.runes, b.cursor)
}

// WordRight moves the cursor to the start of the next word.
func (b *Buffer) WordRight() {
	b.cursor = wordRightIndex(b.runes, b.cursor)
}

func wordLeftIndex(runes []rune, cursor int) int {
	if cursor == 0 {
		return 0
	}
	i := cursor - 1
	for i >= 0 && unicode.IsSpace(runes[i]) {
		i--
	}
	for i >= 0 && !unicode.IsSpace(runes[i]) {
		i--
	}
	return i + 1
}

func wordRightIndex(runes []rune, cursor int) int {
	n := len(runes)
	i := cursor
	for i < n && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < n && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// KillToEnd removes from the cursor to the end of the buffer, saving the
// removed text to the yank register.
func (b *Buffer) KillToEnd() {
	b.clampCursor()
	b.yank = append([]rune{}, b.runes[b.cursor:]...)
	b.runes = b.runes[:b.cursor]
}

// KillToStart removes from the beginning of the buffer to the cursor,
// saving the removed text to the yank register.
func (b *Buffer) KillToStart() {
	b.clampCursor()
	b.yank = append([]rune{}, b.runes[:b.cursor]...)
	b.runes = b.runes[b.cursor:]
	b.cursor = 0
	b.recomputeQuoteState()
}

// KillWord removes the word before the cursor, saving it to the yank register.
func (b *Buffer) KillWord() {
	start := wordLeftIndex(b.runes, b.cursor)
	b.yank = append([]rune{}, b.runes[start:b.cursor]...)
	b.runes = append(b.runes[:start], b.runes[b.cursor:]...)
	b.cursor = start
	b.recomputeQuoteState()
}

// Yank inserts the yank register's contents at the cursor.
func (b *Buffer) Yank() {
	if len(b.yank) == 0 {
		return
	}
	b.clampCursor()
	b.runes = append(b.runes[:b.cursor], append(append([]rune{}, b.yank...), b.runes[b.cursor:]...)...)
	b.cursor += len(b.yank)
	b.recomputeQuoteState()
}

func (b *Buffer) clampCursor() {
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(b.runes) {
		b.cursor = len(b.runes)
	}
}

// LastWordStart returns the grapheme index where the word under the cursor
// begins — the anchor point inline suggestions render from.
func (b *Buffer) LastWordStart() int {
	return wordLeftIndex(b.runes, b.cursor)
}

// AcceptTail appends tail at the cursor (used for inline acceptance, where
// tail is whatever the suggestion engine determined is left to type) and
// moves the cursor to the new end.
func (b *Buffer) AcceptTail(tail string) {
	b.InsertString(tail)
}

// ReplaceLastWord replaces the word under the cursor with replacement (used
// for BAEJ acceptance) and moves the cursor to the new end.
func (b *Buffer) ReplaceLastWord(replacement string) {
	start := wordLeftIndex(b.runes, b.cursor)
	b.runes = append(b.runes[:start], []rune(replacement)...)
	b.cursor = len(b.runes)
	b.recomputeQuoteState()
}

// Valid reports whether the buffer's invariants hold: 0 <= cursor <= end,
// and the text is valid UTF-8 (always true for a []rune-backed buffer, but
// checked for defense when constructed from raw bytes elsewhere).
func (b *Buffer) Valid() bool {
	if b.cursor < 0 || b.cursor > len(b.runes) {
		return false
	}
	return utf8.ValidString(string(b.runes))
}
