package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferInsertAndCursorInvariant(t *testing.T) {
	b := New()
	b.InsertString("cd /tmp")
	assert.Equal(t, "cd /tmp", b.Text())
	assert.Equal(t, b.End(), b.Cursor())
	assert.True(t, b.Cursor() <= b.End())
	assert.True(t, b.Valid())
}

func TestBufferBackspaceRoundTrip(t *testing.T) {
	b := New()
	b.InsertString("hello")
	for range "hello" {
		b.Backspace()
	}
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.Cursor())
}

func TestBufferBackspaceClustersCombiningMarks(t *testing.T) {
	b := New()
	// 'e' + combining acute accent (U+0301) is one visual grapheme.
	b.InsertString("café")
	b.Backspace()
	assert.Equal(t, "caf", b.Text())
}

func TestBufferWordMotion(t *testing.T) {
	b := New()
	b.InsertString("cd one two three")
	b.Home()
	b.WordRight()
	assert.Equal(t, len("cd "), b.Cursor())
	b.MoveToEnd()
	b.WordLeft()
	assert.Equal(t, len("cd one two "), b.Cursor())
}

func TestBufferKillAndYank(t *testing.T) {
	b := New()
	b.InsertString("cd /tmp/foo")
	b.Home()
	b.WordRight()
	b.KillToEnd()
	assert.Equal(t, "cd ", b.Text())
	b.MoveToEnd()
	b.Yank()
	assert.Equal(t, "cd /tmp/foo", b.Text())
}

func TestBufferKillWord(t *testing.T) {
	b := New()
	b.InsertString("cd /tmp/foo")
	b.KillWord()
	assert.Equal(t, "cd ", b.Text())
}

func TestBufferQuoteModeStateMachine(t *testing.T) {
	b := New()
	require.Equal(t, QuotePlain, b.QuoteState())
	b.InsertString("echo '")
	assert.Equal(t, QuoteSingle, b.QuoteState())
	b.InsertString("hi there")
	assert.Equal(t, QuoteSingle, b.QuoteState())
	b.InsertString("'")
	assert.Equal(t, QuotePlain, b.QuoteState())
}

func TestBufferQuoteModeEscape(t *testing.T) {
	b := New()
	b.InsertString(`echo \"`)
	assert.Equal(t, QuotePlain, b.QuoteState(), "escaped quote must not open quote mode")
}

func TestBufferReplaceLastWordForBAEJAcceptance(t *testing.T) {
	b := New()
	b.InsertString("bm w")
	b.ReplaceLastWord("work")
	assert.Equal(t, "bm work", b.Text())
	assert.Equal(t, b.End(), b.Cursor())
}

func TestBufferAcceptTailInline(t *testing.T) {
	b := New()
	b.InsertString("cd /tm")
	b.AcceptTail("p")
	assert.Equal(t, "cd /tmp", b.Text())
}

func TestDisplayWidthWideAndCombining(t *testing.T) {
	assert.Equal(t, 1, DisplayWidth('a'))
	assert.Equal(t, 0, DisplayWidth('́')) // combining acute
	assert.Equal(t, 2, DisplayWidth('漢'))
}
