package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// WorkspaceHandle indexes into a Workspaces table. Workspace indices are
// 1-based in the persisted format and in user-facing commands (spec.md
// §4.4's `ws` context-sensitive source); handle 0 is the first slot.
type WorkspaceHandle int

// Workspace is one numbered slot: an optional name and the path it was
// last pointed at, per spec.md §3/§6.
type Workspace struct {
	Index int
	Name  string // "" if unnamed
	Path  string
}

// Workspaces is the workspace table (`.last`), grounded on git/branch.go's
// named-slot-over-ordered-list model — ggc's branch listing is an ordered
// set of named refs the way a workspace table is an ordered set of named
// directory slots, plus a "current" marker the way a checked-out branch
// is marked with `*`.
type Workspaces struct {
	entries []Workspace
	byName  map[string]WorkspaceHandle
	current WorkspaceHandle
	max     int
}

// NewWorkspaces returns an empty table capped at max slots.
func NewWorkspaces(max int) *Workspaces {
	return &Workspaces{byName: make(map[string]WorkspaceHandle), max: max}
}

// Len returns the number of populated slots.
func (w *Workspaces) Len() int { return len(w.entries) }

// At returns the workspace at handle.
func (w *Workspaces) At(handle WorkspaceHandle) (Workspace, bool) {
	if int(handle) < 0 || int(handle) >= len(w.entries) {
		return Workspace{}, false
	}
	return w.entries[handle], true
}

// Current returns the workspace currently marked active.
func (w *Workspaces) Current() (Workspace, bool) {
	return w.At(w.current)
}

// ByIndex resolves the suggestion engine's `ws`-context numeric match
// (spec.md §4.4): word matched against workspace indices 1..MAX.
func (w *Workspaces) ByIndex(index int) (Workspace, bool) {
	for _, e := range w.entries {
		if e.Index == index {
			return e, true
		}
	}
	return Workspace{}, false
}

// ByName resolves the suggestion engine's `ws`-context name match.
func (w *Workspaces) ByName(name string) (Workspace, bool) {
	h, ok := w.byName[name]
	if !ok {
		return Workspace{}, false
	}
	return w.entries[h], true
}

// Switch sets path and optionally name for index, creating the slot if
// it does not exist yet (bounded by max, 0 meaning unbounded), and marks
// it current.
func (w *Workspaces) Switch(index int, name, path string) error {
	if w.max > 0 && index > w.max {
		return fmt.Errorf("workspace index %d exceeds max %d", index, w.max)
	}
	for i, e := range w.entries {
		if e.Index == index {
			if name != "" {
				delete(w.byName, e.Name)
				w.entries[i].Name = name
				w.byName[name] = WorkspaceHandle(i)
			}
			w.entries[i].Path = path
			w.current = WorkspaceHandle(i)
			return nil
		}
	}
	h := WorkspaceHandle(len(w.entries))
	w.entries = append(w.entries, Workspace{Index: index, Name: name, Path: path})
	if name != "" {
		w.byName[name] = h
	}
	w.current = h
	return nil
}

// Load parses `.last`: lines of the form "[*]N:/path" or
// "[*]N:name:/path", where a leading "*" marks the current workspace.
func (w *Workspaces) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	w.entries = nil
	w.byName = make(map[string]WorkspaceHandle)
	w.current = 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		isCurrent := strings.HasPrefix(line, "*")
		line = strings.TrimPrefix(line, "*")

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(line[:idx])
		if err != nil {
			continue
		}
		rest := line[idx+1:]

		name, dir := "", rest
		if j := strings.IndexByte(rest, ':'); j >= 0 {
			name = rest[:j]
			dir = rest[j+1:]
		}

		h := WorkspaceHandle(len(w.entries))
		w.entries = append(w.entries, Workspace{Index: n, Name: name, Path: dir})
		if name != "" {
			w.byName[name] = h
		}
		if isCurrent {
			w.current = h
		}
	}
	return nil
}

// Save persists the table in Load's "[*]N[:name]:/path" form.
func (w *Workspaces) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for i, e := range w.entries {
		if WorkspaceHandle(i) == w.current {
			sb.WriteByte('*')
		}
		if e.Name != "" {
			fmt.Fprintf(&sb, "%d:%s:%s\n", e.Index, e.Name, e.Path)
		} else {
			fmt.Fprintf(&sb, "%d:%s\n", e.Index, e.Path)
		}
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}

// Pin is the `.pin` file: a single pinned path, independent of any
// workspace slot.
type Pin struct {
	Path string
	set  bool
}

// Load reads the pinned path, if one has been set.
func (p *Pin) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	p.Path = strings.TrimSpace(string(data))
	p.set = p.Path != ""
	return nil
}

// Set updates the pinned path.
func (p *Pin) Set(path string) {
	p.Path = path
	p.set = path != ""
}

// Get returns the pinned path, if any.
func (p *Pin) Get() (string, bool) {
	return p.Path, p.set
}

// Save persists the pinned path.
func (p *Pin) Save(fileOps config.FileOps, path string) error {
	return writeFileAtomic(fileOps, path, []byte(p.Path))
}

// DirHistory is `dirhist.cfm`: a simple ordered list of visited
// directories, one per line, distinct from the frecency-ranked Jump
// database — this is the raw chronological trail `bd`'s ancestor search
// (spec.md §4.4) walks.
type DirHistory struct {
	entries []string
	maxLen  int
}

// NewDirHistory returns an empty directory history capped at maxLen
// entries; 0 means unbounded.
func NewDirHistory(maxLen int) *DirHistory {
	return &DirHistory{maxLen: maxLen}
}

// Len returns the number of entries.
func (d *DirHistory) Len() int { return len(d.entries) }

// At returns the entry at index.
func (d *DirHistory) At(index int) (string, bool) {
	if index < 0 || index >= len(d.entries) {
		return "", false
	}
	return d.entries[index], true
}

// Append records a visited directory.
func (d *DirHistory) Append(path string) {
	if path == "" {
		return
	}
	d.entries = append(d.entries, path)
	if d.maxLen > 0 && len(d.entries) > d.maxLen {
		d.entries = d.entries[len(d.entries)-d.maxLen:]
	}
}

// Load replaces the history's entries from dirhist.cfm.
func (d *DirHistory) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	d.entries = nil
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		d.entries = append(d.entries, line)
	}
	if d.maxLen > 0 && len(d.entries) > d.maxLen {
		d.entries = d.entries[len(d.entries)-d.maxLen:]
	}
	return nil
}

// Save persists the directory history, one path per line.
func (d *DirHistory) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for _, e := range d.entries {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
