package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tern-fm/tern/internal/config"
	"github.com/tern-fm/tern/internal/suggest"
)

// JumpHandle indexes into a Jump database.
type JumpHandle int

// JumpEntry is one row: path, visit count, first/last visit time, and a
// rank score, per spec.md §3/§6. Grounded on git/branch.go's
// ranked-list-with-metadata model — a branch carries a last-commit time
// the way a jump entry carries a last-visit time.
type JumpEntry struct {
	Path       string
	Visits     int
	FirstVisit time.Time
	LastVisit  time.Time
	Rank       float64
}

// Jump is the jump database (`jump.cfm`), keyed by path, ranked by
// frecency for suggestion source `j` (spec.md §4.4).
type Jump struct {
	entries  []JumpEntry
	byPath   map[string]JumpHandle
	halfLife time.Duration
	minRank  int
	maxTotal int
}

// NewJump returns an empty jump database. halfLife is the frecency decay
// half-life (config's implicit recency weighting); minRank/maxTotal hold
// the `min_jump_rank`/`max_jump_total_rank` config limits. No rank-based
// pruning reads them: Load drops only the entries statFn rejects.
func NewJump(halfLife time.Duration, minRank, maxTotal int) *Jump {
	return &Jump{byPath: make(map[string]JumpHandle), halfLife: halfLife, minRank: minRank, maxTotal: maxTotal}
}

// Len returns the number of entries.
func (j *Jump) Len() int { return len(j.entries) }

// At returns the entry at handle.
func (j *Jump) At(handle JumpHandle) (JumpEntry, bool) {
	if int(handle) < 0 || int(handle) >= len(j.entries) {
		return JumpEntry{}, false
	}
	return j.entries[handle], true
}

// Visit records a visit to path, creating a new entry if one doesn't
// exist yet, bumping visits and last-visit time otherwise.
func (j *Jump) Visit(path string, at time.Time) {
	if h, ok := j.byPath[path]; ok {
		e := &j.entries[h]
		e.Visits++
		e.LastVisit = at
		return
	}
	j.byPath[path] = JumpHandle(len(j.entries))
	j.entries = append(j.entries, JumpEntry{Path: path, Visits: 1, FirstVisit: at, LastVisit: at})
}

// Suggest resolves the suggestion engine's `j` source: the best
// frecency-ranked entry whose last path component starts with fragment.
func (j *Jump) Suggest(fragment string, caseSensitive bool, now time.Time) (string, bool) {
	candidates := make([]suggest.JumpCandidate, len(j.entries))
	for i, e := range j.entries {
		candidates[i] = suggest.JumpCandidate{Path: e.Path, Visits: e.Visits, LastVisit: e.LastVisit}
	}
	return suggest.RankJump(candidates, fragment, caseSensitive, j.halfLife, now)
}

// Load parses jump.cfm (spec.md §6): a leading "@RANK_SUM" header line,
// "#"-prefixed comment lines, and "visits:first_visit:last_visit:path"
// rows. Entries whose path no longer exists under statFn are pruned.
func (j *Jump) Load(fileOps config.FileOps, path string, statFn func(string) bool) error {
	data, err := readFileIfExists(fileOps, path)
	if err != nil {
		return err
	}
	j.entries = nil
	j.byPath = make(map[string]JumpHandle)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@RANK_SUM") || strings.HasPrefix(line, "#") {
			continue
		}
		e, ok := parseJumpLine(line)
		if !ok {
			continue
		}
		if statFn != nil && !statFn(e.Path) {
			continue
		}
		j.byPath[e.Path] = JumpHandle(len(j.entries))
		j.entries = append(j.entries, e)
	}
	return nil
}

func parseJumpLine(line string) (JumpEntry, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) != 4 {
		return JumpEntry{}, false
	}
	visits, err := strconv.Atoi(parts[0])
	if err != nil {
		return JumpEntry{}, false
	}
	first, err := parseUnix(parts[1])
	if err != nil {
		return JumpEntry{}, false
	}
	last, err := parseUnix(parts[2])
	if err != nil {
		return JumpEntry{}, false
	}
	return JumpEntry{Path: parts[3], Visits: visits, FirstVisit: first, LastVisit: last}, true
}

func parseUnix(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(n, 0).UTC(), nil
}

// Save persists the jump database with its "@RANK_SUM" header followed
// by one "visits:first:last:path" row per entry, in the form Load parses.
func (j *Jump) Save(fileOps config.FileOps, path string) error {
	var sb strings.Builder
	total := 0
	for _, e := range j.entries {
		total += e.Visits
	}
	fmt.Fprintf(&sb, "@RANK_SUM:%d\n", total)
	for _, e := range j.entries {
		fmt.Fprintf(&sb, "%d:%d:%d:%s\n", e.Visits, e.FirstVisit.Unix(), e.LastVisit.Unix(), e.Path)
	}
	return writeFileAtomic(fileOps, path, []byte(sb.String()))
}
