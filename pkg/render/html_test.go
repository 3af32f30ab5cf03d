package render

import (
	"strings"
	"testing"

	"github.com/ganttflow/ganttflow/internal/model"
)

func sampleSources() []Source {
	return []Source{
		{
			Name: "connections.csv",
			Tasks: []model.Task{
				{Name: "chrome.exe (TCP)", Slug: "chrome_exe_tcp_",
					Start: ts("2024-01-01 10:00:00"), End: ts("2024-01-01 10:02:00"),
					Kind: model.KindForensics},
				{Name: "Spike", Slug: "spike",
					Start: ts("2024-01-01 10:30:00"), Kind: model.KindForensics},
			},
		},
		{
			Name: "plan.csv",
			Tasks: []model.Task{
				{Name: "Design", Slug: "design",
					Start: ts("2024-03-01 00:00:00"), Days: 5, HasDays: true},
			},
		},
	}
}

func TestHTML_AllSections(t *testing.T) {
	out, err := HTML(sampleSources(), HTMLOptions{Timeline: true, Histogram: true, LineGraph: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<title>Time-Synced Visualizations</title>") {
		t.Error("default title missing")
	}
	for _, want := range []string{
		`"task":"chrome.exe (TCP)"`,
		`"start":"2024-01-01T10:00:00Z"`,
		`"end":"2024-01-01T10:02:00Z"`,
		`"name":"connections.csv"`,
		`"name":"plan.csv"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("payload missing %s", want)
		}
	}
	// 5 days as hours on the line graph.
	if !strings.Contains(out, `"values":[120]`) {
		t.Error("line graph values missing")
	}
	for _, id := range []string{`id="timeline-chart"`, `id="histogram-chart"`, `id="line-graph-chart"`} {
		if !strings.Contains(out, id) {
			t.Errorf("chart container %s missing", id)
		}
	}
}

func TestHTML_SectionsDisabled(t *testing.T) {
	out, err := HTML(sampleSources(), HTMLOptions{Timeline: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `id="timeline-chart"`) {
		t.Error("timeline section should be present")
	}
	for _, id := range []string{`id="histogram-chart"`, `id="line-graph-chart"`} {
		if strings.Contains(out, id) {
			t.Errorf("disabled section %s still present", id)
		}
	}
}

func TestHTML_CustomTitle(t *testing.T) {
	out, err := HTML(sampleSources(), HTMLOptions{Title: "Case 42", Timeline: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<title>Case 42</title>") {
		t.Error("custom title not applied")
	}
}

func TestHTML_PointEventZeroWidth(t *testing.T) {
	out, err := HTML(sampleSources(), HTMLOptions{Timeline: true})
	if err != nil {
		t.Fatal(err)
	}
	// Point event repeats its instant as the end.
	if !strings.Contains(out, `"start":"2024-01-01T10:30:00Z","end":"2024-01-01T10:30:00Z"`) {
		t.Error("point event should carry a zero-width interval")
	}
}

func TestHTML_SelfContained(t *testing.T) {
	out, err := HTML(sampleSources(), HTMLOptions{Timeline: true, Histogram: true, LineGraph: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plotly") {
		t.Error("plotly script reference missing")
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>") {
		t.Error("output should be a complete document")
	}
}

func TestHistogramBins_CollapsesQuietStretches(t *testing.T) {
	tasks := []model.Task{
		{Name: "A", Start: ts("2024-01-01 10:00:00")},
		{Name: "B", Start: ts("2024-01-01 10:30:00")},
		{Name: "C", Start: ts("2024-01-05 08:00:00")},
	}
	h := histogramBins(tasks)
	if len(h.Bins) != len(h.Counts) {
		t.Fatalf("bins/counts length mismatch: %d vs %d", len(h.Bins), len(h.Counts))
	}
	// One populated bin, one trailing empty marker, then the gap
	// collapses until the next populated bin.
	if len(h.Counts) > 4 {
		t.Errorf("quiet days should collapse, got %d bins", len(h.Counts))
	}
	if h.Counts[0] != 2 {
		t.Errorf("first bin count = %d, want 2", h.Counts[0])
	}
}

func TestHistogramBins_NoStarts(t *testing.T) {
	h := histogramBins([]model.Task{{Name: "A", Days: 3, HasDays: true}})
	if len(h.Bins) != 0 || len(h.Counts) != 0 {
		t.Errorf("expected empty histogram, got %+v", h)
	}
}

func TestTimelineItems_SkipsStartless(t *testing.T) {
	items := timelineItems([]model.Task{
		{Name: "A", Start: ts("2024-01-01 10:00:00")},
		{Name: "B", Days: 3, HasDays: true},
	})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Task != "A" {
		t.Errorf("unexpected item %+v", items[0])
	}
}
