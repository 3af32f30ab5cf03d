// Package timeparse converts the textual time encodings found in
// event-log and task-list CSVs into instants and day durations.
//
// Instant parsing tries a fixed, ordered list of encodings so that
// ambiguous strings resolve deterministically: a pure number is always
// Unix epoch seconds, never a compact date.
package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Precision records which trial form an instant parsed with. The
// file-level format classification needs to know whether any value
// carried sub-day precision.
type Precision uint8

const (
	PrecisionDay Precision = iota
	PrecisionSecond
	PrecisionSubSecond
)

// Instant layouts tried in order after the epoch fast path.
// Offsets are normalized away: all instants are naive UTC.
// The ".999999999" fraction element is optional in Go layouts, so each
// entry covers both the fractional and whole-second spellings.
var instantLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00", // ISO 8601 with zone (Z or offset)
	"2006-01-02T15:04:05.999999999",       // ISO 8601, no zone
	"2006-01-02 15:04:05.999999999",       // space separator
	"2006-01-02",                          // bare date, midnight
}

// ParseError reports a value that matched none of the recognized
// time or duration patterns. It keeps the raw input and the patterns
// tried for row-level diagnostics.
type ParseError struct {
	Raw   string
	Tried []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timeparse: %q matched no pattern (tried %s)",
		e.Raw, strings.Join(e.Tried, ", "))
}

// Instant parses a timestamp string into a naive UTC instant.
// Trial order: Unix epoch seconds (integer or decimal), ISO 8601 with
// T separator, space-separated date-time, bare date as midnight.
func Instant(raw string) (time.Time, Precision, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, PrecisionDay, &ParseError{Raw: raw, Tried: []string{"empty"}}
	}

	if isNumeric(s) {
		if t, prec, ok := parseEpoch(s); ok {
			return t, prec, nil
		}
	}

	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.UTC(), layoutPrecision(layout, t), nil
	}

	tried := append([]string{"epoch"}, instantLayouts...)
	return time.Time{}, PrecisionDay, &ParseError{Raw: raw, Tried: tried}
}

// Days parses a day-duration token of the form "<integer>d".
// No other units are supported.
func Days(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[len(s)-1] != 'd' {
		return 0, &ParseError{Raw: raw, Tried: []string{"<integer>d"}}
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return 0, &ParseError{Raw: raw, Tried: []string{"<integer>d"}}
	}
	return n, nil
}

// parseEpoch interprets a numeric string as Unix epoch seconds,
// with any fractional part as sub-second precision.
func parseEpoch(s string) (time.Time, Precision, bool) {
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, PrecisionDay, false
		}
		sec, frac := math.Modf(f)
		t := time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
		return t, PrecisionSubSecond, true
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, PrecisionDay, false
	}
	return time.Unix(sec, 0).UTC(), PrecisionSecond, true
}

func layoutPrecision(layout string, t time.Time) Precision {
	if layout == "2006-01-02" {
		return PrecisionDay
	}
	if t.Nanosecond() != 0 {
		return PrecisionSubSecond
	}
	return PrecisionSecond
}

// isNumeric reports whether s looks like a plain number:
// optional leading minus, digits, at most one decimal point.
func isNumeric(s string) bool {
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && dots == 0 && i > 0 && i < len(s)-1:
			dots++
		case c == '-' && i == 0 && len(s) > 1:
		default:
			return false
		}
	}
	return true
}
