// Package combine merges adjacent same-name tasks separated by small
// time gaps into single intervals.
package combine

import (
	"sort"
	"time"

	"github.com/ganttflow/ganttflow/internal/model"
)

// Tasks merges same-name tasks whose gap is at most threshold and
// returns the result sorted chronologically by start. Tasks without a
// start sort last and never merge. A threshold <= 0 disables merging;
// the input is only sorted. The input slice is not modified.
func Tasks(in []model.Task, threshold time.Duration) []model.Task {
	if len(in) == 0 {
		return nil
	}
	if threshold <= 0 {
		out := append([]model.Task(nil), in...)
		sortByStart(out)
		return out
	}

	// Group by exact name, preserving first-appearance order.
	order := make([]string, 0, len(in))
	groups := make(map[string][]model.Task, len(in))
	for _, t := range in {
		if _, seen := groups[t.Name]; !seen {
			order = append(order, t.Name)
		}
		groups[t.Name] = append(groups[t.Name], t)
	}

	out := make([]model.Task, 0, len(in))
	for _, name := range order {
		out = append(out, mergeGroup(groups[name], threshold)...)
	}

	sortByStart(out)
	return out
}

// mergeGroup folds one name-group, sorted by start, into merged
// intervals. Each merge produces a replacement task rather than
// mutating the accumulator in place.
func mergeGroup(group []model.Task, threshold time.Duration) []model.Task {
	if len(group) == 1 {
		return group
	}
	sorted := append([]model.Task(nil), group...)
	sortByStart(sorted)

	out := make([]model.Task, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if !mergeable(cur, next, threshold) {
			out = append(out, cur)
			cur = next
			continue
		}
		cur = merged(cur, next)
	}
	return append(out, cur)
}

// mergeable reports whether next continues cur within the threshold.
// A task lacking an end counts as ending at its start, except that two
// end-less tasks sharing a start have no evaluable gap and stay apart.
func mergeable(cur, next model.Task, threshold time.Duration) bool {
	if !cur.HasStart() || !next.HasStart() {
		return false
	}
	if !cur.HasEnd() && !next.HasEnd() && cur.Start.Equal(next.Start) {
		return false
	}
	return next.Start.Sub(cur.EffectiveEnd()) <= threshold
}

// merged returns the union interval of cur and next, keeping cur's
// identity fields.
func merged(cur, next model.Task) model.Task {
	t := cur
	end := cur.EffectiveEnd()
	if nextEnd := next.EffectiveEnd(); nextEnd.After(end) {
		end = nextEnd
	}
	t.End = end
	if t.HasDays || next.HasDays {
		t.Days = int(t.End.Sub(t.Start) / (24 * time.Hour))
		t.HasDays = true
	}
	return t
}

// sortByStart orders tasks chronologically by start. Tasks without a
// start sort last; ties keep their relative input order.
func sortByStart(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case !a.HasStart():
			return false
		case !b.HasStart():
			return true
		default:
			return a.Start.Before(b.Start)
		}
	})
}
