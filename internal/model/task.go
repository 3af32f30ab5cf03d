// Package model defines core data structures for ganttflow.
package model

import (
	"strings"
	"time"
	"unicode"
)

// FormatKind classifies an input file as forensics (instant-based,
// second or sub-second precision) or legacy (date plus day-duration).
// It is decided once per file and shared by every Task from that file.
type FormatKind uint8

const (
	KindLegacy FormatKind = iota
	KindForensics
)

// String returns the kind name.
func (k FormatKind) String() string {
	switch k {
	case KindForensics:
		return "forensics"
	default:
		return "legacy"
	}
}

// DateFormat returns the Mermaid dateFormat string for this kind.
func (k FormatKind) DateFormat() string {
	if k == KindForensics {
		return "YYYY-MM-DD HH:mm:ss"
	}
	return "YYYY-MM-DD"
}

// Layout returns the Go time layout used to render instants of this kind.
func (k FormatKind) Layout() string {
	if k == KindForensics {
		return "2006-01-02 15:04:05"
	}
	return "2006-01-02"
}

// Status is an optional Mermaid task status.
type Status uint8

const (
	StatusNone Status = iota
	StatusActive
	StatusDone
	StatusCrit
)

// ParseStatus maps a raw status value to a Status.
// Unrecognized values are treated as absent, never an error.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "done":
		return StatusDone
	case "crit":
		return StatusCrit
	default:
		return StatusNone
	}
}

// String returns the Mermaid status token, empty for StatusNone.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDone:
		return "done"
	case StatusCrit:
		return "crit"
	default:
		return ""
	}
}

// Task is the canonical event/interval record flowing through the
// pipeline. Instants are naive UTC; the zero time.Time means absent.
// Tasks are immutable once built: the combiner replaces tasks instead
// of mutating them.
type Task struct {
	// Name is the raw display string, pre-slugification.
	Name string

	// Slug is the diagram node id derived from Name.
	// Uniqueness is not enforced; combining keys on Name, not Slug.
	Slug string

	// Start and End are optional instants. Start <= End holds
	// whenever both are present.
	Start time.Time
	End   time.Time

	// Days is an explicit day-duration from an "Nd" token.
	// HasDays distinguishes an explicit 0d from absence.
	Days    int
	HasDays bool

	Status Status
	Kind   FormatKind

	// SourceFile labels the originating input when multiple files
	// are combined for HTML output.
	SourceFile string
}

// HasStart reports whether the task carries a start instant.
func (t Task) HasStart() bool { return !t.Start.IsZero() }

// HasEnd reports whether the task carries an end instant.
func (t Task) HasEnd() bool { return !t.End.IsZero() }

// Span returns the elapsed time between Start and End.
// A task missing either instant has a zero span.
func (t Task) Span() time.Duration {
	if !t.HasStart() || !t.HasEnd() {
		return 0
	}
	return t.End.Sub(t.Start)
}

// EffectiveEnd returns End, falling back to Start for point events.
func (t Task) EffectiveEnd() time.Time {
	if t.HasEnd() {
		return t.End
	}
	return t.Start
}

// Slugify derives a diagram node id from a task name: lowercase with
// runs of non-alphanumeric characters collapsed to a single underscore.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			inSep = false
			b.WriteRune(r)
		} else if !inSep {
			inSep = true
			b.WriteByte('_')
		}
	}
	return b.String()
}
