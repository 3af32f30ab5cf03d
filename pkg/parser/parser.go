// Package parser turns tabular event/task inputs (CSV, XLSX) into the
// canonical Task list. Row-level problems are skipped and diagnosed;
// only unreadable input or a fully unusable file is fatal.
package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ganttflow/ganttflow/internal/model"
	"github.com/ganttflow/ganttflow/pkg/schema"
	"github.com/ganttflow/ganttflow/pkg/timeparse"
	"github.com/ganttflow/ganttflow/pkg/tui"
	"github.com/ganttflow/ganttflow/pkg/util"
)

// Format represents a supported input format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

// DetectFormat infers the input format from a file path, looking
// through a .gz suffix.
func DetectFormat(path string) Format {
	switch util.BaseFormat(path) {
	case ".csv", ".txt", "":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// Options configures one parse pass.
type Options struct {
	// SourceFile labels produced tasks when multiple inputs are
	// combined; empty for single-input conversions.
	SourceFile string

	// Synonyms adds profile-supplied header spellings to the
	// built-in table, keyed by canonical field name.
	Synonyms map[string][]string

	// Log receives verbose diagnostics; nil is silent.
	Log *tui.Logger
}

// Tasks parses CSV content from r.
func Tasks(r io.Reader, opts Options) ([]model.Task, model.FormatKind, error) {
	return parseCSV(r, opts)
}

// File opens and parses a named input file, dispatching on its
// extension and transparently decompressing .gz inputs.
func File(path string, opts Options) ([]model.Task, model.FormatKind, error) {
	r, cleanup, err := util.OpenFile(path)
	if err != nil {
		return nil, model.KindLegacy, err
	}
	defer cleanup()

	switch DetectFormat(path) {
	case FormatXLSX:
		return parseXLSX(r, opts)
	case FormatCSV:
		return parseCSV(r, opts)
	default:
		return nil, model.KindLegacy, ErrUnsupportedFormat
	}
}

// buildAll runs the shared normalize/classify/build path over an
// in-memory header plus data rows.
func buildAll(header []string, rows [][]string, opts Options) ([]model.Task, model.FormatKind, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	mapping, err := schema.NewMapping(header, opts.Synonyms)
	if err != nil {
		return nil, model.KindLegacy, err
	}
	opts.Log.Debugf("header mapping: %s", mapping.Trace())

	kind := classifyKind(mapping, rows)
	opts.Log.Debugf("format kind: %s", kind)

	tasks := make([]model.Task, 0, len(rows))
	for i, row := range rows {
		if emptyRow(row) {
			opts.Log.Debugf("skipping empty row %d", i+1)
			continue
		}
		task, rerr := buildTask(mapping.Extract(row), i+1, kind, opts.SourceFile)
		if rerr != nil {
			opts.Log.Warnf("dropping %s", rerr)
			continue
		}
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		return nil, kind, ErrNoTasks
	}
	opts.Log.Debugf("built %d task(s) from %d row(s)", len(tasks), len(rows))
	return tasks, kind, nil
}

// classifyKind decides the file-level format once, before any task is
// built: timestamp-named columns or any time value with sub-day
// precision make the file a forensics log, otherwise it is a legacy
// task list.
func classifyKind(m *schema.Mapping, rows [][]string) model.FormatKind {
	if m.HasTimestampHeaders() {
		return model.KindForensics
	}
	for _, row := range rows {
		f := m.Extract(row)
		for _, raw := range []string{f.Start, f.End} {
			if raw == "" {
				continue
			}
			if _, prec, err := timeparse.Instant(raw); err == nil && prec != timeparse.PrecisionDay {
				return model.KindForensics
			}
		}
	}
	return model.KindLegacy
}

func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// DisplayName returns a short label for a source path, used for the
// source_file tag on tasks from combined inputs.
func DisplayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}
