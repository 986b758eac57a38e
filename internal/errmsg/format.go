// Package errmsg provides the error kinds of the library and consistent
// formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
	"strings"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Configuration
	OpConfigLoad   Op = "load configuration"
	OpParseMatcher Op = "parse matcher"
	OpParseSorter  Op = "parse sorter"

	// Media operations
	OpMediaImport Op = "import media"
	OpMediaDelete Op = "delete media"
	OpMediaEdit   Op = "edit media"
	OpMediaScan   Op = "scan media"

	// Playlist operations
	OpPlaylistCreate Op = "create playlist"
	OpPlaylistDelete Op = "delete playlist"
	OpPlaylistList   Op = "list playlist"
	OpPlaylistInsert Op = "insert into playlist"
	OpPlaylistRemove Op = "remove from playlist"

	// Queue operations
	OpQueueSeek Op = "seek in queue"
	OpQueuePlay Op = "control playback"
)

// Kind classifies an error.
type Kind int

const (
	// KindConfiguration covers invalid environment, fields, matchers and literals.
	KindConfiguration Kind = iota + 1
	// KindConflict covers reserved, duplicate, existing or missing names.
	KindConflict
	// KindParse covers paths that do not follow the canonical grammar.
	KindParse
	// KindPartialMutation covers a filesystem mutation failing mid-sequence.
	KindPartialMutation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindConflict:
		return "conflict"
	case KindParse:
		return "parse error"
	case KindPartialMutation:
		return "partial mutation"
	}
	return "error"
}

// ErrDeclined is returned when the user answers no to a confirmation.
// It is a normal abort path, not a failure.
var ErrDeclined = errors.New("aborted, no action taken")

// Error is a classified error. Details lists every individual problem found,
// so batch operations can report all conflicts at once.
type Error struct {
	Kind    Kind
	Op      Op
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(Format(e.Op, errors.New(e.Kind.String())))
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	for _, d := range e.Details {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration returns a configuration error.
func Configuration(op Op, format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: fmt.Errorf(format, args...)}
}

// Conflict returns a conflict error listing every conflict.
func Conflict(op Op, details []string) error {
	return &Error{Kind: KindConflict, Op: op, Details: details}
}

// Parse returns a parse error for the given path.
func Parse(path string, err error) error {
	return &Error{Kind: KindParse, Op: OpMediaScan, Err: fmt.Errorf("%q: %w", path, err)}
}

// PartialMutation returns an error describing the step that failed while
// a playlist was being renumbered. The playlist is left as-is.
func PartialMutation(op Op, step string, err error, paths ...string) error {
	details := make([]string, 0, len(paths)+1)
	details = append(details, "failed step: "+step)
	for _, p := range paths {
		details = append(details, "path: "+p)
	}
	details = append(details, "the playlist may be partially renumbered and needs manual repair")
	return &Error{Kind: KindPartialMutation, Op: op, Details: details, Err: err}
}

// Is reports whether err is a classified error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}
