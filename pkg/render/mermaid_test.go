package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ganttflow/ganttflow/internal/model"
)

func ts(s string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}

func TestMermaid_ForensicsOutput(t *testing.T) {
	tasks := []model.Task{
		{
			Name:  "chrome.exe (TCP)",
			Slug:  "chrome_exe_tcp_",
			Start: ts("2024-01-01 10:00:00"),
			End:   ts("2024-01-01 10:02:00"),
			Kind:  model.KindForensics,
		},
	}
	out, err := Mermaid(tasks, model.KindForensics, MermaidOptions{Title: "Connections"})
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"gantt",
		"    title Connections",
		"    dateFormat YYYY-MM-DD HH:mm:ss",
		"    chrome.exe (TCP) :chrome_exe_tcp_, 2024-01-01 10:00:00, 2024-01-01 10:02:00",
	}, "\n")
	if out != want {
		t.Errorf("output mismatch:\n got: %q\nwant: %q", out, want)
	}
}

func TestMermaid_LegacyDateFormat(t *testing.T) {
	tasks := []model.Task{
		{Name: "Design", Slug: "design", Start: ts("2024-03-01 00:00:00"), Days: 5, HasDays: true, Kind: model.KindLegacy},
	}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dateFormat YYYY-MM-DD\n") {
		t.Errorf("missing legacy dateFormat line:\n%s", out)
	}
	if !strings.Contains(out, "Design :design, 2024-03-01, 5d") {
		t.Errorf("duration interval not rendered:\n%s", out)
	}
}

func TestMermaid_DefaultTitle(t *testing.T) {
	tasks := []model.Task{{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00")}}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "    title Gantt Chart\n") {
		t.Errorf("default title missing:\n%s", out)
	}
}

func TestMermaid_WidthDirective(t *testing.T) {
	tasks := []model.Task{{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00")}}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{Width: 1800})
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	want := "%%{init: {'theme':'default', 'themeVariables': {'fontSize': '16px'}, 'gantt': {'useWidth': 1800}}}%%"
	if first != want {
		t.Errorf("init directive:\n got: %s\nwant: %s", first, want)
	}
}

func TestMermaid_WidthValidation(t *testing.T) {
	tasks := []model.Task{{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00")}}
	for _, w := range []int{99, 10001, -5} {
		if _, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{Width: w}); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("width %d: err = %v, want ErrInvalidWidth", w, err)
		}
	}
	for _, w := range []int{0, 100, 10000} {
		if _, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{Width: w}); err != nil {
			t.Errorf("width %d: unexpected error %v", w, err)
		}
	}
}

func TestMermaid_StatusTag(t *testing.T) {
	tasks := []model.Task{
		{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00"), Status: model.StatusDone},
	}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "A :a, done, 2024-01-01, 2024-01-01") {
		t.Errorf("status tag not emitted:\n%s", out)
	}
}

func TestMermaid_PointEvent(t *testing.T) {
	tasks := []model.Task{
		{Name: "Spike", Slug: "spike", Start: ts("2024-01-01 10:30:00"), Kind: model.KindForensics},
	}
	out, err := Mermaid(tasks, model.KindForensics, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Spike :spike, 2024-01-01 10:30:00, 2024-01-01 10:30:00") {
		t.Errorf("point event should repeat its instant:\n%s", out)
	}
}

func TestMermaid_DurationOnlyTask(t *testing.T) {
	tasks := []model.Task{
		{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00"), End: ts("2024-01-03 00:00:00")},
		{Name: "B", Slug: "b", Days: 3, HasDays: true},
	}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "B :b, 3d") {
		t.Errorf("duration-only task should chain with a bare length:\n%s", out)
	}
}

func TestMermaid_NoTrailingNewline(t *testing.T) {
	tasks := []model.Task{{Name: "A", Slug: "a", Start: ts("2024-01-01 00:00:00")}}
	out, err := Mermaid(tasks, model.KindLegacy, MermaidOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output should not end with a newline")
	}
}

func TestMermaid_Empty(t *testing.T) {
	if _, err := Mermaid(nil, model.KindLegacy, MermaidOptions{}); !errors.Is(err, ErrNoTasks) {
		t.Errorf("err = %v, want ErrNoTasks", err)
	}
}
