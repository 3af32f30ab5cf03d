package parser

import (
	"time"

	"github.com/ganttflow/ganttflow/internal/model"
	"github.com/ganttflow/ganttflow/pkg/schema"
	"github.com/ganttflow/ganttflow/pkg/timeparse"
)

// buildTask derives one canonical Task from a row's canonical fields.
// A nil RowError means the task is usable. Derivation precedence:
// start+end, start+duration, end+duration, single instant (point
// event), bare duration. Anything less is malformed.
func buildTask(f schema.Fields, row int, kind model.FormatKind, source string) (model.Task, *RowError) {
	if f.Name == "" {
		return model.Task{}, &RowError{Row: row, Field: "task_name", Reason: "missing task name"}
	}

	start, ok, rerr := parseInstantField(f.Start, "start", row)
	if rerr != nil {
		return model.Task{}, rerr
	}
	hasStart := ok

	end, ok, rerr := parseInstantField(f.End, "end", row)
	if rerr != nil {
		return model.Task{}, rerr
	}
	hasEnd := ok

	days, hasDays, rerr := parseDurationField(f.Duration, row)
	if rerr != nil {
		return model.Task{}, rerr
	}

	t := model.Task{
		Name:       f.Name,
		Slug:       model.Slugify(f.Name),
		Status:     model.ParseStatus(f.Status),
		Kind:       kind,
		SourceFile: source,
	}

	switch {
	case hasStart && hasEnd:
		if start.After(end) {
			return model.Task{}, &RowError{Row: row, Reason: "start is after end"}
		}
		t.Start, t.End = start, end

	case hasStart && hasDays:
		t.Start = start
		t.End = start.AddDate(0, 0, days)
		t.Days, t.HasDays = days, true

	case hasEnd && hasDays:
		t.End = end
		t.Start = end.AddDate(0, 0, -days)
		t.Days, t.HasDays = days, true

	case hasStart:
		t.Start = start // point event

	case hasEnd:
		t.End = end // point event

	case hasDays:
		// Duration with no date context: the renderer chains the
		// task after its predecessor.
		t.Days, t.HasDays = days, true

	default:
		return model.Task{}, &RowError{Row: row, Reason: "no start, end, or duration"}
	}

	return t, nil
}

func parseInstantField(raw, field string, row int) (time.Time, bool, *RowError) {
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, _, err := timeparse.Instant(raw)
	if err != nil {
		return time.Time{}, false, &RowError{
			Row: row, Field: field, Reason: "unparseable timestamp", Cause: err,
		}
	}
	return t, true, nil
}

func parseDurationField(raw string, row int) (int, bool, *RowError) {
	if raw == "" {
		return 0, false, nil
	}
	days, err := timeparse.Days(raw)
	if err != nil {
		return 0, false, &RowError{
			Row: row, Field: "duration", Reason: "unparseable duration", Cause: err,
		}
	}
	return days, true, nil
}
