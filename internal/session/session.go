package session

import (
	"path/filepath"
	"time"

	"github.com/tern-fm/tern/internal/buffer"
	"github.com/tern-fm/tern/internal/classify"
	"github.com/tern-fm/tern/internal/config"
	"github.com/tern-fm/tern/internal/highlight"
	"github.com/tern-fm/tern/internal/listing"
	"github.com/tern-fm/tern/internal/store"
	"github.com/tern-fm/tern/internal/suggest"
)

// jumpHalfLife is the frecency decay half-life handed to store.NewJump.
// spec.md §6 doesn't name a config key for it, so it follows clifm's
// stock one-week constant (original_source/src/init.c's DEF_RANK_HL).
const jumpHalfLife = 7 * 24 * time.Hour

// Session is the single value the event loop owns and mutates once per
// tick, replacing internal/interactive's package-level singletons
// (spec.md §9). Every subsystem — editor, classifier inputs, suggestion
// sources, highlighter, external tables — hangs off this struct instead
// of a process-wide variable.
type Session struct {
	Config *config.Config

	Buffer      *buffer.Buffer
	Listing     *listing.Cache
	Highlighter *highlight.Driver
	Executor    Executor

	History    *store.History
	Bookmarks  *store.Bookmarks
	Jump       *store.Jump
	Aliases    *store.Aliases
	Workspaces *store.Workspaces
	Pin        *store.Pin
	DirHistory *store.DirHistory
	Remotes    *store.Remotes
	Tags       *store.Tags
	Themes     *store.Themes
	BinIndex   *store.BinaryIndex

	CWD      string
	WrongCmd bool

	profileDir string
	fileOps    config.FileOps
}

// New constructs a Session from cfg, with every external table empty —
// call Load to populate them from profileDir. profileDir is the
// per-profile directory persisted files live under (e.g.
// ~/.config/tern/<profile>/).
func New(cfg *config.Config, profileDir string, cwd string) *Session {
	s := &Session{
		Config:     cfg,
		Buffer:     buffer.New(),
		Listing:    listing.NewCache(),
		History:    store.NewHistory(int(cfg.Limits.MaxHist)),
		Bookmarks:  store.NewBookmarks(),
		Jump:       store.NewJump(jumpHalfLife, int(cfg.Limits.MinJumpRank), int(cfg.Limits.MaxJumpTotalRank)),
		Aliases:    store.NewAliases(),
		Workspaces: store.NewWorkspaces(0),
		Pin:        &store.Pin{},
		DirHistory: store.NewDirHistory(int(cfg.Limits.MaxDirhist)),
		Remotes:    store.NewRemotes(),
		Tags:       store.NewTags(),
		Themes:     store.NewThemes(cfg),
		BinIndex:   store.NewBinaryIndex(),
		Executor:   NewShellExecutor(string(cfg.Shell)),
		CWD:        cwd,
		profileDir: profileDir,
		fileOps:    config.OSFileOps{},
	}
	s.Highlighter = highlight.NewDriver(nil, highlight.Prompt{Normal: cfg.PromptStr, Warning: cfg.WarningPromptStr})
	return s
}

func (s *Session) path(name string) string {
	return filepath.Join(s.profileDir, name)
}

// Load populates every external table from its persisted file and scans
// PATH for the binary index. Per spec.md §7's StoreLoadError policy,
// failures are best-effort: a table that fails to load is left empty
// and its error is returned for diagnostic reporting, but Load never
// aborts partway through — every other table still gets its chance.
func (s *Session) Load(pathEnv string) []error {
	var errs []error
	record := func(source string, err error) {
		if err != nil {
			errs = append(errs, NewError(KindStoreLoad, source, err))
		}
	}

	record("history", s.History.Load(s.fileOps, s.path("history.cfm")))
	record("bookmarks", s.Bookmarks.Load(s.fileOps, s.path("bookmarks.cfm")))
	record("jump", s.Jump.Load(s.fileOps, s.path("jump.cfm"), nil))
	record("aliases", s.Aliases.LoadFromConfig(s.Config))
	record("workspaces", s.Workspaces.Load(s.fileOps, s.path(".last")))
	record("pin", s.Pin.Load(s.fileOps, s.path(".pin")))
	record("dirhistory", s.DirHistory.Load(s.fileOps, s.path("dirhist.cfm")))
	record("remotes", s.Remotes.Load(s.fileOps, s.path("nets.cfm")))
	record("tags", s.Tags.Load(s.fileOps, s.path("tags.cfm")))
	record("themes", s.Themes.Load(s.fileOps, s.path("themes.cfm")))
	record("actions", s.BinIndex.LoadActions(s.fileOps, s.path("actions.cfm")))

	s.BinIndex.ScanPath(pathEnv)
	s.BinIndex.AddNames(s.internalCommandNames())
	for _, name := range s.allAliasNames() {
		s.BinIndex.AddNames([]string{name})
	}
	config.RegisterValidCommands(s.BinIndex.Names())

	return errs
}

// internalCommandNames lists the names the classifier and binary index
// must always recognize regardless of PATH contents — the fixed set of
// internal commands spec.md's context-sensitive sources name (cd, bm,
// j, ws, st/sort, prompt, net, pf, bd, t/ta/tu/tl).
func (s *Session) internalCommandNames() []string {
	return []string{"cd", "bm", "j", "ws", "st", "sort", "prompt", "net", "pf", "bd", "t", "ta", "tu", "tl", "quit"}
}

func (s *Session) allAliasNames() []string {
	names := make([]string, 0, s.Aliases.Len())
	for i := 0; i < s.Aliases.Len(); i++ {
		a, _ := s.Aliases.At(store.AliasHandle(i))
		names = append(names, a.Name)
	}
	return names
}

// Save persists every external table whose content may have changed
// since Load (history, jump, bookmarks, workspaces, pin, dirhistory).
// Remotes, tags, themes, and actions are user-edited configuration
// rather than session-accumulated state, so callers that mutate them
// persist directly through their own Save method instead.
func (s *Session) Save() []error {
	var errs []error
	record := func(source string, err error) {
		if err != nil {
			errs = append(errs, NewError(KindStoreLoad, source, err))
		}
	}

	record("history", s.History.Save(s.fileOps, s.path("history.cfm")))
	record("jump", s.Jump.Save(s.fileOps, s.path("jump.cfm")))
	record("bookmarks", s.Bookmarks.Save(s.fileOps, s.path("bookmarks.cfm")))
	record("workspaces", s.Workspaces.Save(s.fileOps, s.path(".last")))
	record("pin", s.Pin.Save(s.fileOps, s.path(".pin")))
	record("dirhistory", s.DirHistory.Save(s.fileOps, s.path("dirhist.cfm")))
	return errs
}

// Lookups builds the classifier's external predicates from the current
// table contents (spec.md §4.3).
func (s *Session) Lookups() classify.Lookups {
	return classify.Lookups{
		IsInternalCommand: s.isInternalCommand,
		IsAlias:           s.Aliases.IsAlias,
		IsShellBuiltin:    isShellBuiltin,
		IsBinaryIndexed:   s.BinIndex.Has,
		ListingCount:      s.Listing.Count,
		ListingIsDir:      s.Listing.IsDir,
		AutoCD:            s.Config.AutoCD,
		AutoOpen:          s.Config.AutoOpen,
	}
}

func (s *Session) isInternalCommand(name string) bool {
	for _, n := range s.internalCommandNames() {
		if n == name {
			return true
		}
	}
	return false
}

// shellBuiltins are the handful of names every POSIX shell recognizes
// that never appear on PATH or in the binary index.
var shellBuiltins = map[string]struct{}{
	"cd": {}, "exit": {}, "export": {}, "alias": {}, "unalias": {},
	"source": {}, "echo": {}, "eval": {}, "exec": {}, "wait": {},
}

func isShellBuiltin(name string) bool {
	_, ok := shellBuiltins[name]
	return ok
}

// Sources builds the suggestion engine's source set from the current
// table contents and config flags (spec.md §4.4).
func (s *Session) Sources() suggest.Sources {
	now := func() time.Time { return time.Now().UTC() }
	return suggest.Sources{
		Aliases:   s.Aliases.Expansion,
		Bookmarks: s.Bookmarks.ByName,
		PathComplete: func(prefix string, dirOnly bool) (string, bool) {
			return s.pathComplete(prefix, dirOnly)
		},
		ELN: func(word string) (string, bool, bool) {
			return s.elnLookup(word)
		},
		FilesInCWD: func(prefix string, caseSensitive, fuzzy bool) (string, bool, bool) {
			return s.filesInCWD(prefix, caseSensitive, fuzzy)
		},
		History: s.History.SuggestPrefix,
		Jump: func(fragment string) (string, bool) {
			return s.Jump.Suggest(fragment, s.Config.CaseSensitive.DirJump, now())
		},
		CaseSensitiveSearch: s.Config.CaseSensitive.Search,
		FuzzyMatch:          s.Config.FuzzyMatch,
	}
}

func (s *Session) pathComplete(prefix string, dirOnly bool) (string, bool) {
	entries, err := s.Listing.Entries(s.CWD)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if dirOnly && !e.IsDir {
			continue
		}
		if len(e.Name) >= len(prefix) && e.Name[:len(prefix)] == prefix {
			tail := e.Name[len(prefix):]
			if e.IsDir {
				tail += "/"
			}
			return tail, true
		}
	}
	return "", false
}

func (s *Session) elnLookup(word string) (string, bool, bool) {
	n, ok := parseELN(word)
	if !ok {
		return "", false, false
	}
	e, ok := s.Listing.At(n)
	if !ok {
		return "", false, false
	}
	return e.Name, e.IsDir, true
}

func parseELN(word string) (int, bool) {
	if word == "" {
		return 0, false
	}
	n := 0
	for _, r := range word {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// filesInCWD implements suggestion source f: a strict (case-aware) prefix
// scan first, falling back to BestFuzzyMatch only when no entry's name
// starts with prefix at all — spec.md §4.4's "fuzzy only if no strict
// prefix match exists". Fuzzy-first would both violate that ordering and,
// since FuzzyScore compares runes case-sensitively, silently hide a valid
// prefix match ("Src" vs typed "s") whenever case_sensitive.search is off.
func (s *Session) filesInCWD(prefix string, caseSensitive, fuzzy bool) (string, bool, bool) {
	entries, err := s.Listing.Entries(s.CWD)
	if err != nil {
		return "", false, false
	}
	for _, e := range entries {
		if matchesPrefix(e.Name, prefix, caseSensitive) {
			return e.Name, e.IsDir, true
		}
	}
	if !fuzzy {
		return "", false, false
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	best, ok := suggest.BestFuzzyMatch(names, prefix)
	if !ok {
		return "", false, false
	}
	for _, e := range entries {
		if e.Name == best {
			return e.Name, e.IsDir, true
		}
	}
	return "", false, false
}

func matchesPrefix(name, prefix string, caseSensitive bool) bool {
	if len(name) < len(prefix) {
		return false
	}
	if caseSensitive {
		return name[:len(prefix)] == prefix
	}
	return equalFoldASCII(name[:len(prefix)], prefix)
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// RecordExecution updates history, the jump database, and the directory
// history after accept_line hands a line to the executor (spec.md §5).
func (s *Session) RecordExecution(line string) {
	s.History.Append(line)
	s.Jump.Visit(s.CWD, time.Now().UTC())
	s.DirHistory.Append(s.CWD)
}

// SetWorkingDirectory updates CWD and invalidates the listing cache, the
// single per-tick filesystem re-scan point spec.md §5 requires.
func (s *Session) SetWorkingDirectory(path string) {
	s.CWD = path
	s.Listing.Invalidate()
}
