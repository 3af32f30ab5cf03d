// Package render emits the output surfaces: Mermaid Gantt text and the
// self-contained HTML visualization.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ganttflow/ganttflow/internal/model"
)

// ErrNoTasks is returned when rendering is asked for an empty list.
var ErrNoTasks = errors.New("render: no tasks provided")

// ErrInvalidWidth is returned for widths outside 100..10000 pixels.
var ErrInvalidWidth = errors.New("render: width must be between 100 and 10000 pixels")

// MermaidOptions configures the Mermaid renderer.
type MermaidOptions struct {
	Title string

	// Width in pixels for the useWidth init directive; 0 leaves the
	// directive out.
	Width int
}

// Mermaid renders an ordered task list as a Mermaid gantt block.
// The dateFormat line follows the file-level format kind. Point events
// (a single instant) render as zero-width intervals with the instant
// repeated as the end.
func Mermaid(tasks []model.Task, kind model.FormatKind, opts MermaidOptions) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNoTasks
	}
	if opts.Width != 0 && (opts.Width < 100 || opts.Width > 10000) {
		return "", ErrInvalidWidth
	}

	title := opts.Title
	if title == "" {
		title = "Gantt Chart"
	}

	var b strings.Builder
	if opts.Width != 0 {
		// Width and font size help layout when exporting to PNG/SVG.
		fmt.Fprintf(&b, "%%%%{init: {'theme':'default', 'themeVariables': {'fontSize': '16px'}, 'gantt': {'useWidth': %d}}}%%%%\n", opts.Width)
	}
	b.WriteString("gantt\n")
	fmt.Fprintf(&b, "    title %s\n", title)
	fmt.Fprintf(&b, "    dateFormat %s\n", kind.DateFormat())

	layout := kind.Layout()
	for _, t := range tasks {
		b.WriteString("    ")
		b.WriteString(t.Name)
		b.WriteString(" :")
		b.WriteString(t.Slug)
		if s := t.Status.String(); s != "" {
			b.WriteString(", ")
			b.WriteString(s)
		}
		writeInterval(&b, t, layout)
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// writeInterval appends the time fields of one task line.
func writeInterval(b *strings.Builder, t model.Task, layout string) {
	switch {
	case t.HasStart() && t.HasDays:
		fmt.Fprintf(b, ", %s, %dd", t.Start.Format(layout), t.Days)
	case t.HasStart() && t.HasEnd():
		fmt.Fprintf(b, ", %s, %s", t.Start.Format(layout), t.End.Format(layout))
	case t.HasStart():
		// Point event: zero-width interval.
		s := t.Start.Format(layout)
		fmt.Fprintf(b, ", %s, %s", s, s)
	case t.HasEnd():
		e := t.End.Format(layout)
		fmt.Fprintf(b, ", %s, %s", e, e)
	case t.HasDays:
		// No date context: Mermaid chains the task after its
		// predecessor.
		fmt.Fprintf(b, ", %dd", t.Days)
	}
}
