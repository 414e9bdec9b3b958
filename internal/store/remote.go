package store

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// RemoteHandle indexes into a Remotes table.
type RemoteHandle int

// Remote is one `nets.cfm` section: a named mount target and the
// commands used to bring it up or down, per spec.md §3/§6. Field shape
// mirrors pkg/git/remote.go's (name, url) pair, generalized from a git
// remote to an arbitrary mount target with its own command strings
// instead of a fixed git subcommand.
type Remote struct {
	Name        string
	Comment     string
	Mountpoint  string
	MountCmd    string
	UnmountCmd  string
	AutoMount   bool
	AutoUnmount bool
}

// Remotes is the remote table (`nets.cfm`), an INI-like file with one
// `[name]` section per remote.
type Remotes struct {
	entries []Remote
	byName  map[string]RemoteHandle
}

// NewRemotes returns an empty remote table.
func NewRemotes() *Remotes {
	return &Remotes{byName: make(map[string]RemoteHandle)}
}

// Len returns the number of remotes.
func (r *Remotes) Len() int { return len(r.entries) }

// At returns the remote at handle.
func (r *Remotes) At(handle RemoteHandle) (Remote, bool) {
	if int(handle) < 0 || int(handle) >= len(r.entries) {
		return Remote{}, false
	}
	return r.entries[handle], true
}

// ByName resolves the suggestion engine's `net`-context source
// (spec.md §4.4): names come from the remote table.
func (r *Remotes) ByName(name string) (Remote, bool) {
	h, ok := r.byName[name]
	if !ok {
		return Remote{}, false
	}
	return r.entries[h], true
}

// Add appends a remote, replacing any existing entry with the same name.
func (r *Remotes) Add(rm Remote) {
	if h, ok := r.byName[rm.Name]; ok {
		r.entries[h] = rm
		return
	}
	r.byName[rm.Name] = RemoteHandle(len(r.entries))
	r.entries = append(r.entries, rm)
}

// Load parses nets.cfm: `[name]` section headers followed by
// `Key=value` lines (Comment, Mountpoint, MountCmd, UnmountCmd,
// AutoMount, AutoUnmount), per spec.md §6.
func (r *Remotes) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	r.entries = nil
	r.byName = make(map[string]RemoteHandle)

	var cur *Remote
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if cur != nil {
				r.Add(*cur)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			cur = &Remote{Name: name}
			continue
		}
		if cur == nil {
			continue
		}
		key, value, ok := splitIniKV(line)
		if !ok {
			continue
		}
		switch key {
		case "Comment":
			cur.Comment = value
		case "Mountpoint":
			cur.Mountpoint = value
		case "MountCmd":
			cur.MountCmd = value
		case "UnmountCmd":
			cur.UnmountCmd = value
		case "AutoMount":
			cur.AutoMount, _ = strconv.ParseBool(value)
		case "AutoUnmount":
			cur.AutoUnmount, _ = strconv.ParseBool(value)
		}
	}
	if cur != nil {
		r.Add(*cur)
	}
	return nil
}

func splitIniKV(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// Save persists the remote table in Load's `[name]`/`Key=value` form.
func (r *Remotes) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for _, e := range r.entries {
		fmt.Fprintf(&sb, "[%s]\n", e.Name)
		if e.Comment != "" {
			fmt.Fprintf(&sb, "Comment=%s\n", e.Comment)
		}
		fmt.Fprintf(&sb, "Mountpoint=%s\n", e.Mountpoint)
		fmt.Fprintf(&sb, "MountCmd=%s\n", e.MountCmd)
		fmt.Fprintf(&sb, "UnmountCmd=%s\n", e.UnmountCmd)
		fmt.Fprintf(&sb, "AutoMount=%t\n", e.AutoMount)
		fmt.Fprintf(&sb, "AutoUnmount=%t\n", e.AutoUnmount)
		sb.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
