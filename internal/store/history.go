package store

import (
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// HistoryHandle indexes into a History's entries (spec.md §9's
// handle-indexed table note).
type HistoryHandle int

// History is the ordered, most-recent-last command history, per
// spec.md §3/§6 (`history.cfm`: one command per line, oldest first).
// Grounded on git/log.go's ordered-entry-list model.
type History struct {
	entries []string
	maxLen  int
}

// NewHistory returns an empty history capped at maxLen entries; 0 means
// unbounded.
func NewHistory(maxLen int) *History {
	return &History{maxLen: maxLen}
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// At returns the entry at handle, or "" if out of range.
func (h *History) At(handle HistoryHandle) (string, bool) {
	if int(handle) < 0 || int(handle) >= len(h.entries) {
		return "", false
	}
	return h.entries[handle], true
}

// Append adds line as the newest entry, evicting the oldest if the
// history is at its configured cap.
func (h *History) Append(line string) {
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
	if h.maxLen > 0 && len(h.entries) > h.maxLen {
		h.entries = h.entries[len(h.entries)-h.maxLen:]
	}
}

// SuggestPrefix returns the most recent entry that starts with prefix,
// the suggestion engine's source `h` (spec.md §4.4).
func (h *History) SuggestPrefix(prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	for i := len(h.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i], prefix) {
			return h.entries[i], true
		}
	}
	return "", false
}

// Load replaces the history's entries from the oldest-first newline-
// separated contents of path.
func (h *History) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	h.entries = nil
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		h.entries = append(h.entries, line)
	}
	if h.maxLen > 0 && len(h.entries) > h.maxLen {
		h.entries = h.entries[len(h.entries)-h.maxLen:]
	}
	return nil
}

// Save persists the history, oldest first, one line per entry.
func (h *History) Save(fileOps config.FileOps, path string) error {
	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(b.String()))
}
