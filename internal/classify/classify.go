// Package classify categorizes the current input line so the highlighter
// and suggestion engine can act on it, per spec.md §4.3. It has no
// dependency on internal/store or internal/listing directly: the lookups
// it needs (internal commands, aliases, builtins, PATH executables, the
// binary-command index, the listing-cache size) are injected as small
// interfaces so the packages can be wired together at the session level
// without import cycles.
package classify

import (
	"os"
	"strconv"
	"strings"
)

// Role is the syntactic role assigned to a word by its position.
type Role int

// Roles.
const (
	RoleCommand Role = iota
	RoleArgument
	RoleString
	RoleComment
)

// Quote is the quote character a word was opened with, if any.
type Quote int

// Quote kinds.
const (
	QuoteNone Quote = iota
	QuoteSingleChar
	QuoteDoubleChar
	QuoteHeredoc
)

// Word is one entry of the word decomposition defined in spec.md §3.
type Word struct {
	ByteStart int
	ByteEnd   int
	Role      Role
	Quote     Quote
}

// Text returns the word's substring of line.
func (w Word) Text(line string) string {
	return line[w.ByteStart:w.ByteEnd]
}

// Category is the resolved category of the command word, per the
// resolution order in spec.md §4.3 step 3.
type Category int

// Categories, in resolution order.
const (
	CategoryNone Category = iota
	CategoryInternalCommand
	CategoryAlias
	CategoryBuiltin
	CategoryPathExecutable
	CategoryBinaryIndex
	CategoryELN
)

// Color is the semantic color assigned to a buffer position.
type Color int

// Colors.
const (
	ColorNone Color = iota
	ColorCommand
	ColorCommandWrong
	ColorArgument
	ColorString
	ColorComment
	ColorVariable
	ColorOperator
)

// Lookups bundles the external lookup predicates the classifier consults to
// resolve the command word's category (spec.md §4.3 step 3, (a)-(e)), plus
// the listing-cache size and auto-cd/auto-open flags needed for (f), the
// ELN check.
type Lookups struct {
	IsInternalCommand func(name string) bool
	IsAlias           func(name string) bool
	IsShellBuiltin    func(name string) bool
	IsBinaryIndexed   func(name string) bool
	ListingCount      func() int
	ListingIsDir      func(eln int) bool
	AutoCD            bool
	AutoOpen          bool
}

// lookPathExecutable reports whether name is an absolute or relative path
// (it contains a '/') to an existing executable file. A bare name is not
// looked up in PATH and yields false.
func lookPathExecutable(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, '/') {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			return false
		}
		return info.Mode()&0111 != 0
	}
	return false
}

// Result is the classifier's output for the current line: the command
// word's category, whether it is unrecognized, and a per-byte color map
// (keyed by byte offset into the line, one entry for every byte inside a
// word, comment, variable or operator).
type Result struct {
	WrongCmd        bool
	CommandCategory Category
	Words           []Word
	Colors          map[int]Color
}

const heredocOpen = "<<"

// Classify scans line left-to-right producing the word decomposition and
// per-grapheme color array described in spec.md §4.3. It is pure and
// idempotent: calling it twice on the same (line, lookups) pair produces
// an identical Result.
func Classify(line string, lookups Lookups) Result {
	words := scanWords(line)
	res := Result{Words: words, Colors: make(map[int]Color, len(line))}

	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		start := strings.IndexByte(line, '#')
		for i := start; i < len(line); i++ {
			res.Colors[i] = ColorComment
		}
		return res
	}

	heredocActive, heredocIdent := heredocState(line)
	heredocPos := strings.Index(line, heredocOpen)

	for i, w := range words {
		role := w.Role
		color := ColorArgument
		switch {
		case w.Quote == QuoteSingleChar || w.Quote == QuoteDoubleChar:
			color = ColorString
		case role == RoleCommand:
			text := w.Text(line)
			cmdName := strings.TrimPrefix(text, `\`)
			cat := resolveCategory(cmdName, lookups)
			if i == 0 {
				res.CommandCategory = cat
				res.WrongCmd = cat == CategoryNone
			}
			if cat == CategoryNone {
				color = ColorCommandWrong
			} else {
				color = ColorCommand
			}
		}
		if heredocActive && w.ByteStart >= heredocPos && !(w.Role == RoleCommand && w.Text(line) == heredocIdent) {
			color = ColorString
		}
		for b := w.ByteStart; b < w.ByteEnd; b++ {
			res.Colors[b] = color
		}
	}

	markVariablesAndOperators(line, res.Colors)
	return res
}

// resolveCategory implements spec.md §4.3 step 3's resolution order: a
// positive integer is treated as an ELN only per the tie-break in the
// "Tie-breaks and edge cases" list (requires auto-cd/auto-open and a
// matching listing-cache entry of the right kind).
func resolveCategory(name string, l Lookups) Category {
	switch {
	case l.IsInternalCommand != nil && l.IsInternalCommand(name):
		return CategoryInternalCommand
	case l.IsAlias != nil && l.IsAlias(name):
		return CategoryAlias
	case l.IsShellBuiltin != nil && l.IsShellBuiltin(name):
		return CategoryBuiltin
	case lookPathExecutable(name):
		return CategoryPathExecutable
	case l.IsBinaryIndexed != nil && l.IsBinaryIndexed(name):
		return CategoryBinaryIndex
	}
	if n, err := strconv.Atoi(name); err == nil && n > 0 {
		if l.ListingCount != nil && n <= l.ListingCount() {
			isDir := l.ListingIsDir != nil && l.ListingIsDir(n)
			if (l.AutoCD && isDir) || (l.AutoOpen && !isDir) {
				return CategoryELN
			}
		}
	}
	return CategoryNone
}

// scanWords performs the word decomposition of spec.md §3: runs of
// unescaped whitespace separate words; a backslash before a space keeps
// the space inside the word; an unclosed quote extends the word to
// end-of-buffer; pipeline separators outside quotes reset word counting.
func scanWords(line string) []Word {
	var words []Word
	quote := QuoteNone
	escape := false
	atSeparatorBoundary := true // true means the next word is "first word"
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		role := RoleArgument
		if atSeparatorBoundary {
			role = RoleCommand
		}
		words = append(words, Word{ByteStart: start, ByteEnd: end, Role: role, Quote: wordQuote(line[start:end])})
		atSeparatorBoundary = false
		start = -1
	}

	i := 0
	for i < len(line) {
		c := line[i]
		if escape {
			escape = false
			if start < 0 {
				start = i
			}
			i++
			continue
		}

		switch quote {
		case QuoteNone:
			switch c {
			case '\\':
				escape = true
				if start < 0 {
					start = i
				}
				i++
				continue
			case '\'':
				quote = QuoteSingleChar
				if start < 0 {
					start = i
				}
				i++
				continue
			case '"':
				quote = QuoteDoubleChar
				if start < 0 {
					start = i
				}
				i++
				continue
			case ' ', '\t':
				flush(i)
				i++
				continue
			case '|', ';':
				flush(i)
				words = append(words, Word{ByteStart: i, ByteEnd: i + 1, Role: RoleArgument})
				atSeparatorBoundary = true
				i++
				continue
			case '&':
				if i+1 < len(line) && line[i+1] == '&' {
					flush(i)
					words = append(words, Word{ByteStart: i, ByteEnd: i + 2, Role: RoleArgument})
					atSeparatorBoundary = true
					i += 2
					continue
				}
			}
			if start < 0 {
				start = i
			}
			i++
		case QuoteSingleChar:
			if c == '\'' {
				quote = QuoteNone
			}
			i++
		case QuoteDoubleChar:
			if c == '\\' && i+1 < len(line) {
				i += 2
				continue
			}
			if c == '"' {
				quote = QuoteNone
			}
			i++
		}
	}
	flush(len(line))
	return words
}

func wordQuote(s string) Quote {
	if len(s) == 0 {
		return QuoteNone
	}
	switch s[0] {
	case '\'':
		return QuoteSingleChar
	case '"':
		return QuoteDoubleChar
	}
	return QuoteNone
}

// heredocState reports whether line contains a "<<" followed by an
// identifier and, if so, that identifier. Classify colors every word from
// the first "<<" onward as a string. The first "<<" counts even when it
// sits inside quotes. The classifier sees one line at a time and no heredoc
// state is carried from one line to the next, so a closing IDENT line is
// not recognized; this function only detects the opening token.
func heredocState(line string) (active bool, ident string) {
	idx := strings.Index(line, heredocOpen)
	if idx < 0 {
		return false, ""
	}
	rest := strings.TrimLeft(line[idx+len(heredocOpen):], " \t")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false, ""
	}
	return true, strings.Trim(fields[0], `"'`)
}

// markVariablesAndOperators recolors $IDENT runs as ColorVariable and bare
// pipeline/redirection characters as ColorOperator, overriding the
// word-level color assigned above (variables and operators are finer
// grained than whole words).
func markVariablesAndOperators(line string, colors map[int]Color) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '$':
			j := i + 1
			for j < len(line) && isIdentRune(line[j]) {
				j++
			}
			if j > i+1 {
				for k := i; k < j; k++ {
					colors[k] = ColorVariable
				}
				i = j - 1
			}
		case '|', ';', '&', '<', '>':
			colors[i] = ColorOperator
		}
	}
}

func isIdentRune(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
