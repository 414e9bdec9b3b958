package store

import (
	"fmt"
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// BookmarkHandle indexes into a Bookmarks table.
type BookmarkHandle int

// Bookmark is one entry: a unique short name, optional hotkey letter,
// and a path, per spec.md §3/§6.
type Bookmark struct {
	Name   string
	Hotkey byte // 0 means none
	Path   string
	IsDir  bool
}

// Bookmarks is the bookmarks table (`bookmarks.cfm`), grounded on
// git/stash.go's named-slot-over-list model — a stash entry is a named
// reference to a commit the way a bookmark is a named reference to a
// path.
type Bookmarks struct {
	entries []Bookmark
}

// NewBookmarks returns an empty bookmarks table.
func NewBookmarks() *Bookmarks { return &Bookmarks{} }

// Len returns the number of bookmarks.
func (b *Bookmarks) Len() int { return len(b.entries) }

// At returns the bookmark at handle.
func (b *Bookmarks) At(handle BookmarkHandle) (Bookmark, bool) {
	if int(handle) < 0 || int(handle) >= len(b.entries) {
		return Bookmark{}, false
	}
	return b.entries[handle], true
}

// ByName resolves a bookmark's path by exact short-name match, the
// suggestion engine's source `b` (spec.md §4.4).
func (b *Bookmarks) ByName(name string) (path string, isDir bool, ok bool) {
	for _, e := range b.entries {
		if e.Name == name {
			return e.Path, e.IsDir, true
		}
	}
	return "", false, false
}

// Add appends a bookmark, replacing any existing entry with the same name.
func (b *Bookmarks) Add(bm Bookmark) {
	for i, e := range b.entries {
		if e.Name == bm.Name {
			b.entries[i] = bm
			return
		}
	}
	b.entries = append(b.entries, bm)
}

// Load parses bookmarks.cfm's three accepted line forms (spec.md §6):
// a bare absolute path, "[hotkey]name:path", or "name:path".
func (b *Bookmarks) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	b.entries = nil
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bm, ok := parseBookmarkLine(line); ok {
			b.entries = append(b.entries, bm)
		}
	}
	return nil
}

func parseBookmarkLine(line string) (Bookmark, bool) {
	if strings.HasPrefix(line, "/") && !strings.Contains(line, ":") {
		name := line[strings.LastIndexByte(line, '/')+1:]
		if name == "" {
			name = line
		}
		return Bookmark{Name: name, Path: line}, true
	}

	rest := line
	var hotkey byte
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Bookmark{}, false
		}
		key := rest[1:end]
		if len(key) == 1 {
			hotkey = key[0]
		}
		rest = rest[end+1:]
	}

	idx := strings.IndexByte(rest, ':')
	if idx < 0 {
		return Bookmark{}, false
	}
	name := rest[:idx]
	p := rest[idx+1:]
	if name == "" || p == "" {
		return Bookmark{}, false
	}
	return Bookmark{Name: name, Hotkey: hotkey, Path: p}, true
}

// Save persists the bookmarks table in "[hotkey]name:path" form (or
// "name:path" when there is no hotkey).
func (b *Bookmarks) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for _, e := range b.entries {
		if e.Hotkey != 0 {
			fmt.Fprintf(&sb, "[%c]%s:%s\n", e.Hotkey, e.Name, e.Path)
		} else {
			fmt.Fprintf(&sb, "%s:%s\n", e.Name, e.Path)
		}
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
