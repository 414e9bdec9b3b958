package store

import (
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// TagHandle indexes into a Tags table.
type TagHandle int

// Tags is the tag-name store, grounded on git/tag.go's sorted-name-list
// model — a tag is a bare name the way these tags are, without git's
// commit/annotation payload.
type Tags struct {
	entries []string
	byName  map[string]TagHandle
}

// NewTags returns an empty tag store.
func NewTags() *Tags {
	return &Tags{byName: make(map[string]TagHandle)}
}

// Len returns the number of tags.
func (t *Tags) Len() int { return len(t.entries) }

// At returns the tag name at handle.
func (t *Tags) At(handle TagHandle) (string, bool) {
	if int(handle) < 0 || int(handle) >= len(t.entries) {
		return "", false
	}
	return t.entries[handle], true
}

// Has resolves the suggestion engine's tag-command source (spec.md
// §4.4): names come from the tag store when the command starts with
// `t:`, `ta `, `tu `, `tl `.
func (t *Tags) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Add registers a tag name, a no-op if it already exists.
func (t *Tags) Add(name string) {
	if _, ok := t.byName[name]; ok {
		return
	}
	t.byName[name] = TagHandle(len(t.entries))
	t.entries = append(t.entries, name)
}

// Remove deletes a tag name, re-indexing remaining handles.
func (t *Tags) Remove(name string) {
	h, ok := t.byName[name]
	if !ok {
		return
	}
	t.entries = append(t.entries[:h], t.entries[h+1:]...)
	delete(t.byName, name)
	for i := int(h); i < len(t.entries); i++ {
		t.byName[t.entries[i]] = TagHandle(i)
	}
}

// Load replaces the tag store's entries from one name per line.
func (t *Tags) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	t.entries = nil
	t.byName = make(map[string]TagHandle)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		t.Add(line)
	}
	return nil
}

// Save persists the tag store, one name per line.
func (t *Tags) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for _, name := range t.entries {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
