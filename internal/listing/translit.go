package listing

import (
	"strings"

	"golang.org/x/text/width"
)

// translitTable maps common non-ASCII Latin letters to an ASCII
// approximation, per spec.md §1's "Unicode-to-ASCII transliteration
// table" ambient data structure — used when rendering entry names on a
// terminal whose locale can't display them, or for width-stable sorting.
var translitTable = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ä': "a", 'ã': "a", 'å': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'ñ': "n", 'ç': "c", 'ß': "ss",
	'Á': "A", 'À': "A", 'Â': "A", 'Ä': "A", 'Ã': "A", 'Å': "A",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Ö': "O", 'Õ': "O",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ü': "U",
	'Ñ': "N", 'Ç': "C",
}

// Transliterate replaces every rune in s that has an ASCII approximation
// in translitTable with that approximation, and every other non-ASCII
// rune with "?", leaving plain ASCII untouched.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if ascii, ok := translitTable[r]; ok {
			b.WriteString(ascii)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

// DisplayName returns the name column text for an entry: name
// transliterated to ASCII when asciiOnly is set, and name unchanged
// otherwise. The runes' display widths are not inspected.
func DisplayName(name string, asciiOnly bool) string {
	if asciiOnly {
		return Transliterate(name)
	}
	return name
}

// NameWidth returns the terminal column width of name, honoring
// East-Asian wide characters the way the icon column alignment needs to.
func NameWidth(name string) int {
	w := 0
	for _, r := range name {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}
