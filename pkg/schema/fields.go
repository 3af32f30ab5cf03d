// Package schema maps the header spellings found in the wild onto the
// canonical field set the rest of the pipeline works with.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies a canonical column.
type Field uint8

const (
	FieldTaskName Field = iota
	FieldStart
	FieldEnd
	FieldDuration
	FieldStatus
	numFields
)

// String returns the canonical field name.
func (f Field) String() string {
	switch f {
	case FieldTaskName:
		return "task_name"
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	case FieldDuration:
		return "duration"
	case FieldStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ErrMissingTaskName is returned when no header maps to task_name.
var ErrMissingTaskName = errors.New("schema: no task name column found")

// synonyms lists the accepted header spellings per canonical field.
// Matching is case-insensitive and whitespace-trimmed; adding a
// spelling is a data change, not a code change.
var synonyms = map[Field][]string{
	FieldTaskName: {"name", "task_name", "task", "event"},
	FieldStart:    {"start_timestamp", "start_date", "start", "start_time"},
	FieldEnd:      {"end_timestamp", "end_date", "end", "end_time"},
	FieldDuration: {"duration"},
	FieldStatus:   {"status"},
}

// Mapping resolves one file's header row to canonical column indices.
type Mapping struct {
	// index holds the column index per field, -1 when unmatched.
	index [numFields]int

	// matched holds the raw header that won per field, for the
	// verbose trace and for format classification.
	matched [numFields]string
}

// NewMapping builds a Mapping from a header row. Extra synonym groups
// (canonical name -> additional spellings, typically from a profile)
// are consulted after the built-in table. Unknown headers are ignored.
// When two columns map to the same field, the first wins.
func NewMapping(header []string, extra map[string][]string) (*Mapping, error) {
	m := &Mapping{}
	for f := Field(0); f < numFields; f++ {
		m.index[f] = -1
	}

	lookup := buildLookup(extra)
	for i, raw := range header {
		key := strings.ToLower(strings.TrimSpace(raw))
		f, ok := lookup[key]
		if !ok {
			continue
		}
		if m.index[f] >= 0 {
			continue // first match wins
		}
		m.index[f] = i
		m.matched[f] = strings.TrimSpace(raw)
	}

	if m.index[FieldTaskName] < 0 {
		return nil, fmt.Errorf("%w (headers: %s)", ErrMissingTaskName,
			strings.Join(header, ", "))
	}
	return m, nil
}

// Fields holds the raw string values of one row, keyed canonically.
type Fields struct {
	Name     string
	Start    string
	End      string
	Duration string
	Status   string
}

// Extract pulls the canonical values out of one data row.
// Columns beyond the row's arity read as empty.
func (m *Mapping) Extract(row []string) Fields {
	get := func(f Field) string {
		i := m.index[f]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Fields{
		Name:     get(FieldTaskName),
		Start:    get(FieldStart),
		End:      get(FieldEnd),
		Duration: get(FieldDuration),
		Status:   get(FieldStatus),
	}
}

// HasTimestampHeaders reports whether a matched time column was
// declared with a timestamp-style name. Files that name their columns
// this way are forensics logs regardless of the values inside.
func (m *Mapping) HasTimestampHeaders() bool {
	for _, f := range []Field{FieldStart, FieldEnd} {
		if strings.Contains(strings.ToLower(m.matched[f]), "timestamp") {
			return true
		}
	}
	return false
}

// Trace renders the header-to-canonical mapping for verbose output,
// emitted once per file.
func (m *Mapping) Trace() string {
	var parts []string
	for f := Field(0); f < numFields; f++ {
		if m.index[f] >= 0 {
			parts = append(parts, fmt.Sprintf("%s<-%q", f, m.matched[f]))
		}
	}
	return strings.Join(parts, " ")
}

func buildLookup(extra map[string][]string) map[string]Field {
	lookup := make(map[string]Field, 16)
	add := func(f Field, names []string) {
		for _, n := range names {
			key := strings.ToLower(strings.TrimSpace(n))
			if _, dup := lookup[key]; !dup {
				lookup[key] = f
			}
		}
	}
	// Built-in table first so profiles cannot shadow it.
	for f := Field(0); f < numFields; f++ {
		add(f, synonyms[f])
	}
	for name, spellings := range extra {
		for f := Field(0); f < numFields; f++ {
			if f.String() == name {
				add(f, spellings)
			}
		}
	}
	return lookup
}
