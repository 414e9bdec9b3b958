package listing

import (
	"io/fs"
	"strings"
)

// iconByExtension maps a lowercased file extension (without the leading
// dot) to the glyph shown in its listing column, per spec.md §1's "icon
// table" ambient data structure. Grounded on internal/ui/formatter.go's
// use of short glyph prefixes ahead of formatted text, generalized from
// message-kind glyphs (success/warning) to file-kind glyphs.
var iconByExtension = map[string]string{
	"go":   "🐹",
	"rs":   "🦀",
	"py":   "🐍",
	"js":   "📜",
	"ts":   "📘",
	"md":   "📝",
	"json": "🧩",
	"yaml": "🧾",
	"yml":  "🧾",
	"zip":  "📦",
	"tar":  "📦",
	"gz":   "📦",
}

const (
	iconDir        = "📁"
	iconExecutable = "⚙"
	iconSymlink    = "🔗"
	iconDefault    = "📄"
)

// IconFor returns the glyph assigned to e, resolved in the order: kind
// (directory/executable/symlink) before extension, since a directory
// named "archive.zip" is still a directory.
func IconFor(e Entry) string {
	switch {
	case e.IsDir:
		return iconDir
	case e.Mode&fs.ModeSymlink != 0:
		return iconSymlink
	case e.Mode&0111 != 0:
		return iconExecutable
	}
	ext := extensionOf(e.Name)
	if icon, ok := iconByExtension[ext]; ok {
		return icon
	}
	return iconDefault
}

func extensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
