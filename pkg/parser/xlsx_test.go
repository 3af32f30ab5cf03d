package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ganttflow/ganttflow/internal/model"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile_XLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Task", "start_date", "Duration"},
		{"Design", "2024-03-01", "5d"},
		{"Build", "2024-03-06", "10d"},
	})

	tasks, kind, err := File(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if kind != model.KindLegacy {
		t.Errorf("kind = %v, want legacy", kind)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Name != "Design" || tasks[0].Days != 5 || !tasks[0].HasDays {
		t.Errorf("first task = %+v", tasks[0])
	}
}

func TestFile_XLSXDropsBadRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Name", "start_timestamp", "end_timestamp"},
		{"Good", "2024-01-01 10:00:00", "2024-01-01 10:05:00"},
		{"Bad", "not a time", ""},
	})

	tasks, kind, err := File(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if kind != model.KindForensics {
		t.Errorf("kind = %v, want forensics", kind)
	}
	if len(tasks) != 1 || tasks[0].Name != "Good" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestFile_XLSXHeaderOnly(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Task", "Start", "End"},
	})
	if _, _, err := File(path, Options{}); !errors.Is(err, ErrNoTasks) {
		t.Errorf("err = %v, want ErrNoTasks", err)
	}
}

func TestFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := File(path, Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, _, err := File(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
