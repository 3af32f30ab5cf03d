package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ganttflow/ganttflow/internal/model"
)

//go:embed html.tmpl
var htmlTemplate string

// Source is one named input's combined task list.
type Source struct {
	Name  string
	Tasks []model.Task
}

// HTMLOptions configures the HTML renderer.
type HTMLOptions struct {
	Title     string
	Timeline  bool
	Histogram bool
	LineGraph bool
}

// histogramBin is the bin width for the event histogram.
const histogramBin = time.Hour

// timelineItem is one interval on the timeline chart.
type timelineItem struct {
	Task    string  `json:"task"`
	Start   string  `json:"start"`
	End     string  `json:"end"`
	StartTS float64 `json:"start_ts"`
	EndTS   float64 `json:"end_ts"`
}

// series wraps one source's payload for a chart.
type series[T any] struct {
	Name string `json:"name"`
	Data T      `json:"data"`
}

type histogramData struct {
	Bins   []string `json:"bins"`
	Counts []int    `json:"counts"`
}

type lineGraphData struct {
	Timestamps []string  `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// HTML renders a self-contained document embedding the combined task
// data and the client-side chart and zoom-sync logic.
func HTML(sources []Source, opts HTMLOptions) (string, error) {
	if opts.Title == "" {
		opts.Title = "Time-Synced Visualizations"
	}

	timeline := make([]series[[]timelineItem], 0, len(sources))
	histogram := make([]series[histogramData], 0, len(sources))
	lineGraph := make([]series[lineGraphData], 0, len(sources))

	for _, src := range sources {
		if opts.Timeline {
			timeline = append(timeline, series[[]timelineItem]{src.Name, timelineItems(src.Tasks)})
		}
		if opts.Histogram {
			histogram = append(histogram, series[histogramData]{src.Name, histogramBins(src.Tasks)})
		}
		if opts.LineGraph {
			lineGraph = append(lineGraph, series[lineGraphData]{src.Name, lineGraphPoints(src.Tasks)})
		}
	}

	tmpl, err := template.New("html").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("render: parsing template: %w", err)
	}

	data := struct {
		Title         string
		Sources       []Source
		ShowTimeline  bool
		ShowHistogram bool
		ShowLineGraph bool
		TimelineJSON  template.JS
		HistogramJSON template.JS
		LineGraphJSON template.JS
	}{
		Title:         opts.Title,
		Sources:       sources,
		ShowTimeline:  opts.Timeline,
		ShowHistogram: opts.Histogram,
		ShowLineGraph: opts.LineGraph,
		TimelineJSON:  mustJSON(timeline),
		HistogramJSON: mustJSON(histogram),
		LineGraphJSON: mustJSON(lineGraph),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render: executing template: %w", err)
	}
	return b.String(), nil
}

// timelineItems converts start-bearing tasks to timeline intervals.
// Point events get their start repeated as the end.
func timelineItems(tasks []model.Task) []timelineItem {
	items := make([]timelineItem, 0, len(tasks))
	for _, t := range tasks {
		if !t.HasStart() {
			continue
		}
		end := t.EffectiveEnd()
		items = append(items, timelineItem{
			Task:    t.Name,
			Start:   t.Start.Format(time.RFC3339),
			End:     end.Format(time.RFC3339),
			StartTS: float64(t.Start.UnixNano()) / 1e9,
			EndTS:   float64(end.UnixNano()) / 1e9,
		})
	}
	return items
}

// histogramBins counts task starts per hour. Empty bins are kept only
// directly after a populated bin, so long quiet stretches collapse.
func histogramBins(tasks []model.Task) histogramData {
	var starts []time.Time
	for _, t := range tasks {
		if t.HasStart() {
			starts = append(starts, t.Start)
		}
	}
	out := histogramData{Bins: []string{}, Counts: []int{}}
	if len(starts) == 0 {
		return out
	}

	min, max := starts[0], starts[0]
	for _, s := range starts[1:] {
		if s.Before(min) {
			min = s
		}
		if s.After(max) {
			max = s
		}
	}

	for bin := min; !bin.After(max); bin = bin.Add(histogramBin) {
		count := 0
		for _, s := range starts {
			if !s.Before(bin) && s.Before(bin.Add(histogramBin)) {
				count++
			}
		}
		prevPopulated := len(out.Counts) > 0 && out.Counts[len(out.Counts)-1] > 0
		if count > 0 || prevPopulated {
			out.Bins = append(out.Bins, bin.Format(time.RFC3339))
			out.Counts = append(out.Counts, count)
		}
	}
	return out
}

// lineGraphPoints plots explicit day durations (as hours) over time.
func lineGraphPoints(tasks []model.Task) lineGraphData {
	out := lineGraphData{Timestamps: []string{}, Values: []float64{}}
	for _, t := range tasks {
		if !t.HasStart() || !t.HasDays {
			continue
		}
		out.Timestamps = append(out.Timestamps, t.Start.Format(time.RFC3339))
		out.Values = append(out.Values, float64(t.Days)*24)
	}
	return out
}

func mustJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		// All payload types marshal cleanly; this is unreachable.
		return template.JS("[]")
	}
	return template.JS(b)
}
