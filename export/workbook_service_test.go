package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	gospreadsheet "github.com/VantageDataChat/GoExcel"

	"hrslides/i18n"
	"hrslides/pptx"
)

func readZipEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("workbook is not a zip package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("%s missing from workbook", name)
	return ""
}

func TestWorkbookService_Generate(t *testing.T) {
	var logged []string
	s := NewWorkbookService(i18n.New(i18n.English), func(msg string) { logged = append(logged, msg) })

	out, err := s.Generate(sampleDocument(), "Bilan social")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	workbook := readZipEntry(t, out, "xl/workbook.xml")
	for _, name := range []string{"Slides", "Slide 2"} {
		if !strings.Contains(workbook, `"`+name+`"`) {
			t.Errorf("sheet %q not found in %s", name, workbook)
		}
	}
	if len(logged) != 1 || !strings.Contains(logged[0], "3 slides, 1 charts") {
		t.Errorf("log = %q", logged)
	}
}

func TestWorkbookService_EmptyDocument(t *testing.T) {
	s := NewWorkbookService(nil, nil)
	if _, err := s.Generate(&pptx.Document{Title: "Empty"}, "Empty"); err == nil {
		t.Fatal("expected an error for a deck without slides")
	}
	if _, err := s.Generate(nil, ""); err == nil {
		t.Fatal("expected an error for a nil document")
	}
}

func TestCellName_Bounds(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
		wantErr  bool
	}{
		{0, 0, "A1", false},
		{9, 27, "AB10", false},
		{maxSheetRows - 1, maxSheetCols - 1, "XFD1048576", false},
		{-1, 0, "", true},
		{0, -1, "", true},
		{maxSheetRows, 0, "", true},
		{0, maxSheetCols, "", true},
	}
	for _, tt := range tests {
		got, err := cellName(tt.row, tt.col)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("cellName(%d, %d) = %q, %v", tt.row, tt.col, got, err)
		}
	}
}

func TestWriteRow_StopsOutsideSheet(t *testing.T) {
	ws := gospreadsheet.New().GetActiveSheet()
	if err := writeRow(ws, maxSheetRows, []interface{}{"x"}, nil); err == nil {
		t.Fatal("expected an error past the last row")
	}
	if err := writeRow(ws, 2, []interface{}{"Effectif", 134.5}, nil); err != nil {
		t.Fatalf("writeRow: %v", err)
	}
	if c := ws.GetCellIfExists(2, 1); c == nil || c.Value != 134.5 {
		t.Errorf("B3 = %+v", c)
	}
}

func TestChartSheetName(t *testing.T) {
	tests := []struct {
		slide, chart int
		want         string
	}{
		{1, 0, "Slide 1"},
		{12, 1, "Slide 12 (2)"},
	}
	for _, tt := range tests {
		if got := chartSheetName(tt.slide, tt.chart); got != tt.want {
			t.Errorf("chartSheetName(%d, %d) = %q, want %q", tt.slide, tt.chart, got, tt.want)
		}
	}
}
