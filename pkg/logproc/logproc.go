// Package logproc converts network connection logs with Added/Removed
// events into the standard Name,start_timestamp,end_timestamp shape the
// rest of the pipeline consumes.
//
// Expected columns (header order free, header row optional):
// Date,Time,Action,Process,Protocol,LocalAddr,RemoteAddr. Headerless
// files are handled by content-based column detection.
package logproc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/ganttflow/ganttflow/pkg/tui"
)

var (
	// ErrEmptyInput is returned for inputs with no rows.
	ErrEmptyInput = errors.New("logproc: input is empty")

	// ErrAmbiguousColumns is returned when auto-detection cannot
	// identify the required columns.
	ErrAmbiguousColumns = errors.New("logproc: unable to detect required columns")
)

// Entry is one standardized log row.
type Entry struct {
	Date       string
	Time       string
	Action     string
	Process    string
	Protocol   string
	LocalAddr  string
	RemoteAddr string
}

// columnNames are the standard header spellings, also used to decide
// whether the first row is a header.
var columnNames = []string{"Date", "Time", "Action", "Process", "Protocol", "LocalAddr", "RemoteAddr"}

// requiredColumns must be resolvable for matching to work.
var requiredColumns = []string{"Action", "Protocol", "LocalAddr", "RemoteAddr"}

// Parse reads log CSV content into standardized entries, detecting
// columns from headers when present and from content otherwise.
func Parse(content string, log *tui.Logger) ([]Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyInput
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("logproc: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	header, rows := splitHeader(records)
	if header != nil {
		log.Debugf("detected headers: %s", strings.Join(header, ", "))
	} else {
		log.Debugf("no headers detected, auto-detecting columns")
	}

	mapping, err := resolveColumns(header, rows, log)
	if err != nil {
		return nil, err
	}
	log.Debugf("column mapping: %v", mapping)

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		entries = append(entries, entryFromRow(row, mapping))
	}
	log.Debugf("parsed %d log entries", len(entries))
	return entries, nil
}

// Convert runs the full log-to-tasks path and emits standard CSV.
func Convert(content string, log *tui.Logger) (string, error) {
	entries, err := Parse(content, log)
	if err != nil {
		return "", err
	}
	conns := MatchConnections(entries, log)
	return ToCSV(conns), nil
}

// ToCSV renders matched connections as Name,start,end rows.
func ToCSV(conns []Connection) string {
	var b strings.Builder
	b.WriteString("Name,start_timestamp,end_timestamp")
	for _, c := range conns {
		fmt.Fprintf(&b, "\n%q,%s,%s", c.Name,
			c.Start.Format("2006-01-02 15:04:05"),
			c.End.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

// splitHeader decides whether the first record is a header row.
func splitHeader(records [][]string) (header []string, rows [][]string) {
	first := records[0]
	for _, v := range first {
		for _, name := range columnNames {
			if strings.TrimSpace(v) == name {
				h := make([]string, len(first))
				for i, cell := range first {
					h[i] = strings.TrimSpace(cell)
				}
				return h, records[1:]
			}
		}
	}
	return nil, records
}

// resolveColumns maps standard names to column indices, preferring
// complete headers, then content detection, then partial headers.
func resolveColumns(header []string, rows [][]string, log *tui.Logger) (map[string]int, error) {
	if m := mappingFromHeader(header); hasRequired(m) {
		log.Debugf("standard headers present, using them directly")
		return m, nil
	}

	m, err := detectColumns(rows, log)
	if err == nil && hasRequired(m) {
		return m, nil
	}

	// Detection failed: fall back to whatever headers name.
	if header != nil {
		log.Debugf("auto-detection incomplete, falling back to header names")
		fallback := mappingFromHeader(header)
		for name, idx := range fallback {
			if _, ok := m[name]; !ok {
				if m == nil {
					m = map[string]int{}
				}
				m[name] = idx
			}
		}
		if hasRequired(m) {
			return m, nil
		}
	}

	return nil, fmt.Errorf("%w (missing: %s)", ErrAmbiguousColumns,
		strings.Join(missingRequired(m), ", "))
}

func mappingFromHeader(header []string) map[string]int {
	if header == nil {
		return nil
	}
	m := map[string]int{}
	for i, h := range header {
		for _, name := range columnNames {
			if h == name {
				if _, dup := m[name]; !dup {
					m[name] = i
				}
			}
		}
	}
	return m
}

func hasRequired(m map[string]int) bool {
	return len(missingRequired(m)) == 0
}

func missingRequired(m map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := m[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func entryFromRow(row []string, mapping map[string]int) Entry {
	get := func(name string) string {
		i, ok := mapping[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return Entry{
		Date:       get("Date"),
		Time:       get("Time"),
		Action:     get("Action"),
		Process:    get("Process"),
		Protocol:   get("Protocol"),
		LocalAddr:  get("LocalAddr"),
		RemoteAddr: get("RemoteAddr"),
	}
}

func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
