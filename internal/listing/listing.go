// Package listing implements the directory-listing cache spec.md §1/§4.6
// describes: one scan per working-directory change, producing entries
// that carry their own display color and icon so the classifier's ELN
// resolution and the renderer's listing view never have to re-derive
// them. Grounded on git/status.go's per-entry scanning style (one struct
// per entry with precomputed display fields) and on
// pkg/ui/colors.go/internal/ui/formatter.go for color assignment, adapted
// from ANSI-palette message formatting to ls-style per-kind entry color.
package listing

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tern-fm/tern/pkg/ui"
)

// Color is the semantic color an entry is rendered in, grounded on
// pkg/ui/colors.go's ANSIColors palette (one field reused per kind).
type Color int

// Colors.
const (
	ColorDefault Color = iota
	ColorDirectory
	ColorExecutable
	ColorSymlink
	ColorArchive
)

// Entry is one directory-listing row, per spec.md §1's "directory listing
// cache" ambient data structure.
type Entry struct {
	Name    string
	IsDir   bool
	Mode    fs.FileMode
	ModTime time.Time
	Color   Color
	Icon    string
}

// Cache scans a directory once per working-directory change and serves
// the result from memory until the directory changes again.
type Cache struct {
	dir     string
	entries []Entry
	palette *ui.ANSIColors
}

// NewCache returns an empty cache; the first Entries call for any
// directory populates it.
func NewCache() *Cache {
	return &Cache{palette: ui.NewANSIColors()}
}

// Entries returns the cached listing for dir, scanning it first if dir
// differs from the last scanned directory or the cache has never been
// populated.
func (c *Cache) Entries(dir string) ([]Entry, error) {
	if dir == c.dir && c.entries != nil {
		return c.entries, nil
	}
	entries, err := scan(dir)
	if err != nil {
		return nil, err
	}
	c.dir = dir
	c.entries = entries
	return entries, nil
}

// Invalidate forces the next Entries call to rescan, regardless of
// whether dir matches the last-scanned directory.
func (c *Cache) Invalidate() {
	c.dir = ""
	c.entries = nil
}

// Count returns the number of entries in the current cache, or 0 if
// nothing has been scanned yet. Used by classify.Lookups.ListingCount.
func (c *Cache) Count() int { return len(c.entries) }

// IsDir reports whether the entry at 1-based listing index eln is a
// directory. Used by classify.Lookups.ListingIsDir for ELN resolution.
func (c *Cache) IsDir(eln int) bool {
	if eln < 1 || eln > len(c.entries) {
		return false
	}
	return c.entries[eln-1].IsDir
}

// At returns the entry at 1-based listing index eln.
func (c *Cache) At(eln int) (Entry, bool) {
	if eln < 1 || eln > len(c.entries) {
		return Entry{}, false
	}
	return c.entries[eln-1], true
}

func scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name() < dirEntries[j].Name() })

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		e := Entry{
			Name:    de.Name(),
			IsDir:   de.IsDir(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}
		e.Color = colorFor(e)
		e.Icon = IconFor(e)
		entries = append(entries, e)
	}
	return entries, nil
}

func colorFor(e Entry) Color {
	switch {
	case e.IsDir:
		return ColorDirectory
	case e.Mode&fs.ModeSymlink != 0:
		return ColorSymlink
	case e.Mode&0111 != 0:
		return ColorExecutable
	case isArchiveName(e.Name):
		return ColorArchive
	}
	return ColorDefault
}

func isArchiveName(name string) bool {
	switch filepath.Ext(name) {
	case ".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".7z", ".rar":
		return true
	}
	return false
}

// ANSI applies the palette's escape code for an entry's color, returning
// "" for ColorDefault (no styling).
func (c *Cache) ANSI(color Color) string {
	switch color {
	case ColorDirectory:
		return c.palette.BrightBlue
	case ColorExecutable:
		return c.palette.BrightGreen
	case ColorSymlink:
		return c.palette.BrightCyan
	case ColorArchive:
		return c.palette.BrightRed
	}
	return ""
}

// Reset is the palette's reset code, appended after any ANSI color.
func (c *Cache) Reset() string { return c.palette.Reset }
