// Package diag is the core's diagnostic sink (spec.md §7): a leveled
// writer for the handful of messages the event loop must surface without
// disturbing the TTY — StoreLoadError at startup, DisplayError mid-session.
// No pack library offers structured logging, so the message format follows
// git/errors.go's plain fmt.Errorf-wrapped-message style; coloring and
// truncation reuse internal/ui.Formatter and internal/ui.Ellipsis rather
// than reimplementing them here.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tern-fm/tern/internal/ui"
)

// maxMessageLen bounds a single diagnostic line so a runaway error message
// (a giant stack trace embedded in an *os.PathError, say) can't blow out
// the terminal the core shares with the line editor.
const maxMessageLen = 200

// Level orders diagnostic severity.
type Level int

// Levels.
const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one recorded diagnostic message.
type Entry struct {
	Time    time.Time
	Level   Level
	Source  string
	Message string
}

// Sink collects diagnostics for the session's lifetime and writes each
// one to an underlying writer (typically os.Stderr) as it arrives. It's
// safe for concurrent use, though the core itself is single-threaded —
// a background SIGWINCH/SIGCONT handler is the one caller that might
// not be on the main goroutine.
type Sink struct {
	mu      sync.Mutex
	w       io.Writer
	fmt     *ui.Formatter
	entries []Entry
	now     func() time.Time
}

// NewSink returns a Sink writing to w. A nil w discards output but still
// records entries for later inspection (e.g. a `diag` command).
func NewSink(w io.Writer) *Sink {
	s := &Sink{w: w, now: time.Now}
	if w != nil {
		s.fmt = ui.NewFormatter(w)
	}
	return s
}

// NewStderrSink returns a Sink writing to os.Stderr, the default the
// event loop starts with.
func NewStderrSink() *Sink {
	return NewSink(os.Stderr)
}

// Record appends and writes one diagnostic entry. Warn and Error lines are
// colored (yellow/red) the way internal/ui.Formatter renders CLI
// diagnostics elsewhere in the pack; Info stays plain so it doesn't
// compete with the line editor's own highlighting for attention.
func (s *Sink) Record(level Level, source, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(message) > maxMessageLen {
		// Ellipsis appends a 3-byte "…", so cut short enough to stay within
		// maxMessageLen bytes.
		message = ui.Ellipsis(message, maxMessageLen-len("…")+1)
	}
	e := Entry{Time: s.now(), Level: level, Source: source, Message: message}
	s.entries = append(s.entries, e)
	if s.fmt == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s", e.Level, e.Source, e.Message)
	switch level {
	case LevelError:
		s.fmt.ErrorHighlight(line)
	case LevelWarn:
		s.fmt.Warning(line)
	default:
		s.fmt.Println(line)
	}
}

// Info records an informational diagnostic.
func (s *Sink) Info(source, format string, args ...interface{}) {
	s.Record(LevelInfo, source, fmt.Sprintf(format, args...))
}

// Warn records a warning diagnostic. Like Error, it only records and
// writes the line; it changes no other session state.
func (s *Sink) Warn(source, format string, args ...interface{}) {
	s.Record(LevelWarn, source, fmt.Sprintf(format, args...))
}

// Error records an error diagnostic. It only records and writes the line;
// it changes no other session state.
func (s *Sink) Error(source, format string, args ...interface{}) {
	s.Record(LevelError, source, fmt.Sprintf(format, args...))
}

// Entries returns a copy of every diagnostic recorded so far, oldest
// first.
func (s *Sink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of diagnostics recorded so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
