package store

import "github.com/tern-fm/tern/internal/config"

// AliasHandle indexes into an Aliases table.
type AliasHandle int

// Alias is the generic (name, expansion) pair the classifier and
// suggestion engine need — config.ParsedAlias carries git-specific
// placeholder/positional-arg bookkeeping that neither consumer cares
// about, so Load flattens it down to Commands only.
type Alias struct {
	Name     string
	Commands []string
}

// Aliases adapts the teacher's own alias machinery
// (internal/config/alias_parse.go) into a flat, handle-indexed table.
// The config package remains the source of truth for parsing and
// validating alias definitions; this type just reshapes its output the
// way the classifier's Lookups.IsAlias and suggest.Sources.Aliases
// expect it. Equally grounded on router.go's executeAlias, which walks
// the same Commands slice one expansion at a time.
type Aliases struct {
	entries []Alias
	byName  map[string]AliasHandle
}

// NewAliases returns an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{byName: make(map[string]AliasHandle)}
}

// Len returns the number of aliases.
func (a *Aliases) Len() int { return len(a.entries) }

// At returns the alias at handle.
func (a *Aliases) At(handle AliasHandle) (Alias, bool) {
	if int(handle) < 0 || int(handle) >= len(a.entries) {
		return Alias{}, false
	}
	return a.entries[handle], true
}

// IsAlias reports whether name is a known alias, the classifier's
// Lookups.IsAlias hook.
func (a *Aliases) IsAlias(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// Expansion returns the first command of name's expansion, the
// suggestion engine's source `a` (spec.md §4.4) — suggestions show the
// alias's effect, not its full sequence.
func (a *Aliases) Expansion(name string) (string, bool) {
	h, ok := a.byName[name]
	if !ok {
		return "", false
	}
	commands := a.entries[h].Commands
	if len(commands) == 0 {
		return "", false
	}
	return commands[0], true
}

// Commands returns the full expansion sequence for name.
func (a *Aliases) Commands(name string) ([]string, bool) {
	h, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return a.entries[h].Commands, true
}

// LoadFromConfig rebuilds the table from cfg's alias definitions,
// reusing ParseAlias/GetAllAliases rather than re-parsing the raw
// config values itself.
func (a *Aliases) LoadFromConfig(cfg *config.Config) error {
	a.entries = nil
	a.byName = make(map[string]AliasHandle)
	for name, parsed := range cfg.GetAllAliases() {
		a.byName[name] = AliasHandle(len(a.entries))
		a.entries = append(a.entries, Alias{Name: name, Commands: parsed.Commands})
	}
	return nil
}
