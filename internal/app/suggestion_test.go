package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tern-fm/tern/internal/classify"
	"github.com/tern-fm/tern/internal/suggest"
)

func TestBuildContextExtractsCommandAndLastWord(t *testing.T) {
	ctx := buildContext("cd src", classify.Result{})
	assert.Equal(t, "cd", ctx.Command)
	assert.Equal(t, "src", ctx.LastWord)
	assert.Equal(t, 3, ctx.LastWordOffset)
	assert.True(t, ctx.CursorAtWordEnd)
	assert.False(t, ctx.IsComment)
}

func TestBuildContextDetectsComment(t *testing.T) {
	ctx := buildContext("  # a note", classify.Result{})
	assert.True(t, ctx.IsComment)
}

func TestSuggestionTailInlineReturnsUntypedPortion(t *testing.T) {
	sug := &suggest.Suggestion{Text: "src", Kind: suggest.KindInline}
	tail, ok := suggestionTail("s", sug)
	assert.True(t, ok)
	assert.Equal(t, "rc", tail)
}

func TestSuggestionTailInlineSuppressedWhenNotPrefix(t *testing.T) {
	sug := &suggest.Suggestion{Text: "tests", Kind: suggest.KindInline}
	_, ok := suggestionTail("src", sug)
	assert.False(t, ok)
}

func TestSuggestionTailBAEJAddsSeparator(t *testing.T) {
	sug := &suggest.Suggestion{Text: "/home/u/foo", Kind: suggest.KindBAEJ}
	tail, ok := suggestionTail("j fo", sug)
	assert.True(t, ok)
	assert.Equal(t, " > /home/u/foo", tail)
}

func TestSuggestionTailNilSuggestionReturnsFalse(t *testing.T) {
	_, ok := suggestionTail("anything", nil)
	assert.False(t, ok)
}

func TestWordBoundaryStopsAtFirstSpace(t *testing.T) {
	assert.Equal(t, 6, wordBoundary("rc/foo"))
	assert.Equal(t, 3, wordBoundary("foo bar"))
}
