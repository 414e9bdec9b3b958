package store

import (
	"strings"

	"github.com/tern-fm/tern/internal/config"
)

// ThemeHandle indexes into a Themes table.
type ThemeHandle int

// Theme is a named pair of prompt strings: the normal prompt and the
// warning prompt swapped in while `wrong_cmd` is set (spec.md §4.5),
// mirroring `internal/highlight.Prompt`'s (Normal, Warning) shape but
// keyed by name so a user can switch between configured themes.
type Theme struct {
	Name    string
	Normal  string
	Warning string
}

// Themes is the prompt-theme table, seeded from the active config's
// own `prompt_str`/`warning_prompt_str` as the "default" entry and
// grown by `Add` for additional named themes a profile directory
// defines (config_types.go's PromptStr/WarningPromptStr fields).
type Themes struct {
	entries []Theme
	byName  map[string]ThemeHandle
}

// NewThemes returns a table seeded with a "default" theme taken from
// cfg's configured prompt strings.
func NewThemes(cfg *config.Config) *Themes {
	t := &Themes{byName: make(map[string]ThemeHandle)}
	t.Add(Theme{Name: "default", Normal: cfg.PromptStr, Warning: cfg.WarningPromptStr})
	return t
}

// Len returns the number of themes.
func (t *Themes) Len() int { return len(t.entries) }

// At returns the theme at handle.
func (t *Themes) At(handle ThemeHandle) (Theme, bool) {
	if int(handle) < 0 || int(handle) >= len(t.entries) {
		return Theme{}, false
	}
	return t.entries[handle], true
}

// ByName resolves the suggestion engine's `prompt`-context source
// (spec.md §4.4): names come from the prompt-theme table.
func (t *Themes) ByName(name string) (Theme, bool) {
	h, ok := t.byName[name]
	if !ok {
		return Theme{}, false
	}
	return t.entries[h], true
}

// Add registers a theme, replacing any existing entry with the same name.
func (t *Themes) Add(theme Theme) {
	if h, ok := t.byName[theme.Name]; ok {
		t.entries[h] = theme
		return
	}
	t.byName[theme.Name] = ThemeHandle(len(t.entries))
	t.entries = append(t.entries, theme)
}

// Names returns every registered theme name, in registration order —
// the suggestion prefix-match candidate list for `prompt`.
func (t *Themes) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Load parses a themes file: "name:normal:warning" rows, one per line.
func (t *Themes) Load(fileOps config.FileOps, path string) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		t.Add(Theme{Name: parts[0], Normal: parts[1], Warning: parts[2]})
	}
	return nil
}

// Save persists every theme except "default" (which always comes from
// the active config, not the themes file) in Load's form.
func (t *Themes) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	for _, e := range t.entries {
		if e.Name == "default" {
			continue
		}
		sb.WriteString(e.Name)
		sb.WriteByte(':')
		sb.WriteString(e.Normal)
		sb.WriteByte(':')
		sb.WriteString(e.Warning)
		sb.WriteByte('\n')
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
