// Package suggest implements the ghost-suggestion engine of spec.md §4.4:
// given the buffer, cursor, and classifier state, it dispatches the
// configured strategy string (a/b/c/e/f/h/j/-) against a set of injected
// sources and returns at most one Suggestion. Grounded directly on
// suggestions.c's strategy-character switch and on
// internal/interactive/fuzzy.go's subsequence matcher (source f).
package suggest

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind distinguishes the two rendering styles spec.md §3/§4.4 define.
type Kind int

// Kinds.
const (
	KindNone Kind = iota
	KindInline
	KindBAEJ
)

// Category is the suggestion's source category, per spec.md §3.
type Category int

// Categories.
const (
	CategoryHistory Category = iota
	CategoryPath
	CategoryFileInCWD
	CategoryCommandName
	CategoryAlias
	CategoryBookmark
	CategoryBackdir
	CategoryJumpTarget
	CategoryELN
	CategoryWorkspace
	CategoryTag
	CategorySortMethod
	CategoryPromptTheme
	CategoryEnvVar
	CategoryHomeUser
	CategoryInternalParam
	CategoryHelpFlag
)

// Suggestion is the suggestion engine's output (spec.md §3).
type Suggestion struct {
	Text     string // owned copy of the suggestion text
	Category Category
	Offset   int  // byte offset within the last word already typed
	Kind     Kind
	Rows     int
}

// Entry is one candidate the source-specific lookups return: its full text.
type Entry struct {
	Text string
}

// Sources bundles every external lookup the strategy dispatch may need.
// Each field is optional; a nil field means that source never matches.
type Sources struct {
	Aliases     func(word string) (expansion string, ok bool)
	Bookmarks   func(word string) (path string, isDir bool, ok bool)
	PathComplete func(prefix string, dirOnly bool) (tail string, ok bool)
	ELN         func(word string) (name string, isDir bool, ok bool)
	FilesInCWD  func(prefix string, caseSensitive, fuzzy bool) (name string, isDir bool, ok bool)
	History     func(prefix string) (line string, ok bool)
	Jump        JumpSource

	CaseSensitiveSearch bool
	FuzzyMatch          bool
}

// JumpSource resolves the `j` strategy source and its context-sensitive
// command form, ranked by frecency (spec.md §4.4).
type JumpSource func(fragment string) (path string, ok bool)

// Context carries the command-word-derived dispatch hints spec.md §4.4
// lists as "context-sensitive sources", evaluated before strategy
// iteration because they are unambiguous from the command word.
type Context struct {
	Command   string // the first word, lowercased
	IsComment bool
	WrongCmd  bool
	CursorAtWordEnd bool
	LastWord  string
	LastWordOffset int // byte offset of LastWord within the line
}

// Suggest implements spec.md §4.4: it applies the suppression rules first,
// then context-sensitive sources, then the configured strategy string in
// order, returning the first match.
func Suggest(ctx Context, strategy string, src Sources) *Suggestion {
	if ctx.IsComment {
		return nil
	}
	if !ctx.CursorAtWordEnd {
		return nil
	}
	if ctx.LastWord == "--help" || strings.HasSuffix(ctx.LastWord, " --help") {
		return &Suggestion{Text: "--help", Category: CategoryHelpFlag, Offset: ctx.LastWordOffset, Kind: KindInline}
	}
	if ctx.WrongCmd {
		return nil
	}
	if ctx.LastWord == "" {
		return nil
	}

	if s := contextSensitive(ctx, src); s != nil {
		return s
	}

	seen := make(map[rune]bool)
	for _, code := range strategy {
		if seen[code] {
			continue // a repeated strategy code is a no-op on its second occurrence
		}
		seen[code] = true
		if s := dispatch(code, ctx, src); s != nil {
			return s
		}
	}
	return nil
}

func contextSensitive(ctx Context, src Sources) *Suggestion {
	switch ctx.Command {
	case "cd":
		if src.PathComplete != nil {
			if tail, ok := src.PathComplete(ctx.LastWord, true); ok {
				return &Suggestion{Text: ctx.LastWord + tail, Category: CategoryPath, Offset: ctx.LastWordOffset + len(ctx.LastWord), Kind: KindInline}
			}
		}
	case "bm":
		if src.Bookmarks != nil {
			if path, isDir, ok := src.Bookmarks(ctx.LastWord); ok {
				return baej(withTrailingSlash(path, isDir), CategoryBookmark, ctx)
			}
		}
	case "j":
		if src.Jump != nil {
			if path, ok := src.Jump(ctx.LastWord); ok {
				return baej(path, CategoryJumpTarget, ctx)
			}
		}
	}
	return nil
}

func dispatch(code rune, ctx Context, src Sources) *Suggestion {
	switch code {
	case 'a':
		if src.Aliases != nil {
			if exp, ok := src.Aliases(ctx.LastWord); ok {
				return baej(exp, CategoryAlias, ctx)
			}
		}
	case 'b':
		if src.Bookmarks != nil {
			if path, isDir, ok := src.Bookmarks(ctx.LastWord); ok {
				return baej(withTrailingSlash(path, isDir), CategoryBookmark, ctx)
			}
		}
	case 'c':
		if src.PathComplete != nil {
			if tail, ok := src.PathComplete(ctx.LastWord, false); ok {
				return &Suggestion{Text: ctx.LastWord + tail, Category: CategoryPath, Offset: ctx.LastWordOffset + len(ctx.LastWord), Kind: KindInline}
			}
		}
	case 'e':
		if src.ELN != nil {
			if _, err := strconv.Atoi(ctx.LastWord); err == nil {
				if name, isDir, ok := src.ELN(ctx.LastWord); ok {
					return baej(withTrailingSlash(name, isDir), CategoryELN, ctx)
				}
			}
		}
	case 'f':
		if src.FilesInCWD != nil {
			if name, isDir, ok := src.FilesInCWD(ctx.LastWord, src.CaseSensitiveSearch, src.FuzzyMatch); ok {
				full := withTrailingSlash(name, isDir)
				tail := tailAfterPrefix(full, ctx.LastWord, src.CaseSensitiveSearch)
				return &Suggestion{Text: ctx.LastWord + tail, Category: CategoryFileInCWD, Offset: ctx.LastWordOffset + len(ctx.LastWord), Kind: KindInline}
			}
		}
	case 'h':
		if src.History != nil {
			if line, ok := src.History(ctx.LastWord); ok {
				return &Suggestion{Text: line, Category: CategoryHistory, Offset: 0, Kind: KindInline}
			}
		}
	case 'j':
		if src.Jump != nil {
			if path, ok := src.Jump(ctx.LastWord); ok {
				return baej(path, CategoryJumpTarget, ctx)
			}
		}
	case '-':
		return nil
	}
	return nil
}

func baej(text string, cat Category, ctx Context) *Suggestion {
	if text == "" {
		return nil
	}
	return &Suggestion{Text: text, Category: cat, Offset: ctx.LastWordOffset, Kind: KindBAEJ}
}

func withTrailingSlash(path string, isDir bool) string {
	if isDir && !strings.HasSuffix(path, "/") {
		return path + "/"
	}
	return path
}

func tailAfterPrefix(full, typed string, caseSensitive bool) string {
	if caseSensitive {
		if strings.HasPrefix(full, typed) {
			return full[len(typed):]
		}
		return ""
	}
	if len(full) >= len(typed) && strings.EqualFold(full[:len(typed)], typed) {
		return full[len(typed):]
	}
	return ""
}

// FuzzyMatch reports whether every rune of pattern appears in text, in
// order, not necessarily consecutively. Grounded on
// internal/interactive/fuzzy.go's fuzzyMatch/fuzzyMatchScore.
func FuzzyMatch(text, pattern string) bool {
	matched, _ := FuzzyScore(text, pattern)
	return matched
}

// Score is the relevance score fuzzy candidates are ranked by; lower is a
// tighter, earlier match.
type Score struct {
	First        int
	Gap          int
	Trailing     int
	Continuation int
	Length       int
}

// Less reports whether m ranks ahead of other.
func (m Score) Less(other Score) bool {
	if m.First != other.First {
		return m.First < other.First
	}
	if m.Gap != other.Gap {
		return m.Gap < other.Gap
	}
	if m.Continuation != other.Continuation {
		return m.Continuation < other.Continuation
	}
	if m.Trailing != other.Trailing {
		return m.Trailing < other.Trailing
	}
	return m.Length < other.Length
}

// FuzzyScore returns whether pattern fuzzy-matches text and its Score.
func FuzzyScore(text, pattern string) (bool, Score) {
	if pattern == "" {
		return true, Score{Length: len([]rune(text))}
	}
	textRunes := []rune(text)
	patternRunes := []rune(pattern)

	firstIndex, lastIndex, gap := -1, -1, 0
	ti, pi := 0, 0
	for ti < len(textRunes) && pi < len(patternRunes) {
		if textRunes[ti] == patternRunes[pi] {
			if firstIndex == -1 {
				firstIndex = ti
			}
			if lastIndex != -1 {
				gap += ti - lastIndex - 1
			}
			lastIndex = ti
			pi++
		}
		ti++
	}
	if pi != len(patternRunes) {
		return false, Score{}
	}

	trailing := len(textRunes) - lastIndex - 1
	return true, Score{First: firstIndex, Gap: gap, Trailing: trailing, Length: len(textRunes)}
}

// BestFuzzyMatch returns the best-scoring candidate among candidates that
// fuzzy-match pattern, or "", false if none match.
func BestFuzzyMatch(candidates []string, pattern string) (string, bool) {
	type scored struct {
		text  string
		score Score
	}
	var matches []scored
	for _, c := range candidates {
		if ok, sc := FuzzyScore(c, pattern); ok {
			matches = append(matches, scored{c, sc})
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].score.Less(matches[j].score) })
	return matches[0].text, true
}

// JumpCandidate is one row of the jump database consulted for frecency
// ranking (spec.md §4.4).
type JumpCandidate struct {
	Path       string
	Visits     int
	LastVisit  time.Time
}

// RankJump scores candidates by frecency = visits * recencyWeight(age),
// where recencyWeight halves every halfLife, and returns the path of the
// best match (ties broken by most recently visited). A candidate matches
// when its last path component starts with fragment; an empty fragment
// matches every candidate.
func RankJump(candidates []JumpCandidate, fragment string, caseSensitive bool, halfLife time.Duration, now time.Time) (string, bool) {
	match := func(p string) bool {
		base := lastComponent(p)
		if caseSensitive {
			return strings.HasPrefix(base, fragment)
		}
		return strings.HasPrefix(strings.ToLower(base), strings.ToLower(fragment))
	}

	var best JumpCandidate
	var bestScore float64
	found := false
	for _, c := range candidates {
		if fragment != "" && !match(c.Path) {
			continue
		}
		age := now.Sub(c.LastVisit)
		weight := recencyWeight(age, halfLife)
		score := float64(c.Visits) * weight
		if !found || score > bestScore || (score == bestScore && c.LastVisit.After(best.LastVisit)) {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return "", false
	}
	return best.Path, true
}

func recencyWeight(age, halfLife time.Duration) float64 {
	if halfLife <= 0 {
		return 1
	}
	halvings := age.Seconds() / halfLife.Seconds()
	weight := 1.0
	for halvings > 0 {
		if halvings >= 1 {
			weight /= 2
			halvings--
		} else {
			weight *= 1 - halvings*0.5
			halvings = 0
		}
	}
	return weight
}

func lastComponent(p string) string {
	p = strings.TrimSuffix(p, "/")
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
