// Package session bundles the single owned value the event loop mutates
// each tick — buffer, config, external tables, listing cache, and
// highlighter — replacing internal/interactive's package-level
// singletons (spec.md §9's design note on pervasive global state).
package session

import "fmt"

// Kind classifies the error kinds spec.md §7 assigns to the core.
type Kind int

// Error kinds.
const (
	// KindInput covers TTY read failures; the event loop terminates.
	KindInput Kind = iota
	// KindDisplay covers TTY write failures; the loop logs and continues,
	// suppressing suggestions for the remainder of the tick.
	KindDisplay
	// KindStoreLoad covers history/bookmarks/jump/alias load failures;
	// reported once at startup, the affected source is disabled for the
	// session but the core continues.
	KindStoreLoad
	// KindExecutor is opaque: the core displays the exit code on the next
	// prompt iteration and does not retry.
	KindExecutor
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindDisplay:
		return "display"
	case KindStoreLoad:
		return "store-load"
	case KindExecutor:
		return "executor"
	default:
		return "unknown"
	}
}

// Error wraps a session-level failure with the kind the event loop
// dispatches on, modeled on git/errors.go's Op/Err error struct.
type Error struct {
	Kind   Kind
	Source string // which subsystem raised it, e.g. "history", "jump"
	Err    error
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("session: %s (%s): %s", e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("session: %s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with its kind and source subsystem.
func NewError(kind Kind, source string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Source: source, Err: err}
}

// ClassifierMiss and SuggestionEmpty are not errors (spec.md §7 marks
// them explicitly "not an error"); they're represented by zero values
// (classify.Result.WrongCmd == true, *suggest.Suggestion == nil) rather
// than sentinel errors, so there is nothing to define for them here.
