package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// BinaryIndex is the merged binary-command index (spec.md §3/§6):
// internal command names, alias names, user action names (`actions.cfm`),
// and every regular executable found by scanning PATH entries at
// startup. Grounded on cmd/command/registry.go's flat, validated name
// set — a registry entry's Name is one contributor to this index the
// way a PATH executable or an alias name is another — merged via
// exec.LookPath's directory-scan idiom (config/validation.go,
// internal/config/validation.go) generalized from "does this one binary
// exist" to "enumerate every binary that exists".
type BinaryIndex struct {
	names map[string]struct{}
	// actions maps a user action name to the shell command it expands
	// to, parsed from actions.cfm's "name=shell command" lines.
	actions map[string]string
}

// NewBinaryIndex returns an empty index.
func NewBinaryIndex() *BinaryIndex {
	return &BinaryIndex{names: make(map[string]struct{}), actions: make(map[string]string)}
}

// Has reports whether name is in the merged index, the classifier's
// Lookups.IsBinaryIndexed hook and the suggestion engine's command-name
// source.
func (b *BinaryIndex) Has(name string) bool {
	_, ok := b.names[name]
	return ok
}

// Names returns every indexed name, sorted, for suggestion-prefix scans.
func (b *BinaryIndex) Names() []string {
	names := make([]string, 0, len(b.names))
	for n := range b.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AddNames merges an arbitrary set of names into the index (internal
// command names, alias names, action names).
func (b *BinaryIndex) AddNames(names []string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		b.names[n] = struct{}{}
	}
}

// ScanPath walks every directory in pathEnv (the colon-or-semicolon
// separated form os.Getenv("PATH") returns) and merges the name of every
// regular, executable file it finds. Best-effort: unreadable directories
// are skipped rather than failing the whole scan, matching spec.md §7's
// "StoreLoadError is best-effort, never propagated through the keystroke
// path" policy.
func (b *BinaryIndex) ScanPath(pathEnv string) {
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.Mode()&0111 == 0 {
				continue
			}
			b.names[e.Name()] = struct{}{}
		}
	}
}

// ActionCommand returns the shell command a user action name expands to.
func (b *BinaryIndex) ActionCommand(name string) (string, bool) {
	cmd, ok := b.actions[name]
	return cmd, ok
}

// LoadActions parses actions.cfm ("name=shell command" per line),
// merging each name into the index and recording its expansion.
func (b *BinaryIndex) LoadActions(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		cmd := strings.TrimSpace(line[idx+1:])
		if name == "" || cmd == "" {
			continue
		}
		b.actions[name] = cmd
		b.names[name] = struct{}{}
	}
	return nil
}

// SaveActions persists the action table in LoadActions' "name=cmd" form.
func (b *BinaryIndex) SaveActions(fileOps config.FileOps, path string) error {
	names := make([]string, 0, len(b.actions))
	for n := range b.actions {
		names = append(names, n)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(n)
		sb.WriteByte('=')
		sb.WriteString(b.actions[n])
		sb.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
