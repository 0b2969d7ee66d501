package excel

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "A1"},
		{4, 26, "Z4"},
		{2, 27, "AA2"},
		{10, 30, "AD10"},
		{0, 1, ""},
	}
	for _, tt := range tests {
		if got := CellName(tt.row, tt.col); got != tt.want {
			t.Errorf("CellName(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestColumnName(t *testing.T) {
	for col, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 30: "AD", 0: ""} {
		if got := ColumnName(col); got != want {
			t.Errorf("ColumnName(%d) = %q, want %q", col, got, want)
		}
	}
}

func buildWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	if err := f.SetCellValue(sheet, "B2", time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set date: %v", err)
	}
	if err := f.SetCellStr(sheet, "F2", "04/11"); err != nil {
		t.Fatalf("set text date: %v", err)
	}
	if err := f.SetCellStr(sheet, "A4", "ΓΙΑΝΝΗΣ (8ΩΡΟΣ)"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := f.SetCellFloat(sheet, "B4", 45, 0, 64); err != nil {
		t.Fatalf("set number: %v", err)
	}
	if err := f.SetCellStr(sheet, "Z4", "10:00-18:00"); err != nil {
		t.Fatalf("set code: %v", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2EFDA"}},
	})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := f.SetCellStyle(sheet, "Z4", "Z4", style); err != nil {
		t.Fatalf("set style: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write to buffer: %v", err)
	}
	return buf.Bytes()
}

func TestSheetText(t *testing.T) {
	s, err := Open(buildWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if got := s.Text(4, 1); got != "ΓΙΑΝΝΗΣ (8ΩΡΟΣ)" {
		t.Errorf("Text(4,1) = %q", got)
	}
	if got := s.Text(4, 26); got != "10:00-18:00" {
		t.Errorf("Text(4,26) = %q", got)
	}
	if got := s.Text(99, 1); got != "" {
		t.Errorf("Text past last row = %q, want empty", got)
	}
	if got := s.Text(4, 200); got != "" {
		t.Errorf("Text past last col = %q, want empty", got)
	}
}

func TestSheetDate(t *testing.T) {
	s, err := Open(buildWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	d, ok := s.Date(2, 2)
	if !ok {
		t.Fatal("Date(2,2) should be a native date")
	}
	if d.Month() != time.November || d.Day() != 3 {
		t.Errorf("Date(2,2) = %v, want 3 Nov", d)
	}

	if _, ok := s.Date(2, 6); ok {
		t.Error("text 04/11 must not be a native date")
	}
	if _, ok := s.Date(4, 2); ok {
		t.Error("plain number must not be a native date")
	}
	if _, ok := s.Date(30, 30); ok {
		t.Error("empty cell must not be a native date")
	}
}

func TestSheetDateMonthOnlyFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	layout := "[$-408]mmmm"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &layout})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellFloat("Sheet1", "B2", 45964, 0, 64); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "B2", "B2", style); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	s, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	d, ok := s.Date(2, 2)
	if !ok {
		t.Fatal("month-only formatted serial should be a native date")
	}
	if d.Month() != time.November || d.Day() != 3 {
		t.Errorf("Date(2,2) = %v, want 3 Nov", d)
	}
}

func TestSheetFill(t *testing.T) {
	s, err := Open(buildWorkbook(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if got := s.Fill(4, 26); got != "E2EFDA" {
		t.Errorf("Fill(4,26) = %q, want E2EFDA", got)
	}
	if got := s.Fill(4, 1); got != "" {
		t.Errorf("Fill(4,1) = %q, want empty", got)
	}
}

func TestSheetNameIsActiveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	idx, err := f.NewSheet("ΕΒΔΟΜΑΔΑ")
	if err != nil {
		t.Fatal(err)
	}
	f.SetActiveSheet(idx)
	if err := f.SetCellValue("ΕΒΔΟΜΑΔΑ", "A4", "ΓΙΑΝΝΗΣ"); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	s, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Name() != "ΕΒΔΟΜΑΔΑ" {
		t.Errorf("Name() = %q, want ΕΒΔΟΜΑΔΑ", s.Name())
	}
	if got := s.Text(4, 1); got != "ΓΙΑΝΝΗΣ" {
		t.Errorf("Text(4,1) = %q", got)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte("not a workbook")); err == nil {
		t.Fatal("expected error for non-xlsx bytes")
	}
}

func TestNormalizeColor(t *testing.T) {
	for in, want := range map[string]string{
		"#e2efda":  "E2EFDA",
		"FFE2EFDA": "E2EFDA",
		"00F4B084": "F4B084",
		"":         "",
	} {
		if got := NormalizeColor(in); got != want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDateLayout(t *testing.T) {
	tests := map[string]bool{
		"dd/mm/yyyy":    true,
		"[$-408]d mmmm": true,
		`"day"0`:        false,
		"0.00":          false,
		"[Red]#,##0.00": false,
		"hh:mm":         false,
		"mmmm":          true,
		"[$-408]mmm":    true,
		`mmm "΄25"`:     true,
		"h:mm":          false,
		"mm:ss":         false,
		"[h]:mm":        false,
	}
	for layout, want := range tests {
		if got := isDateLayout(layout); got != want {
			t.Errorf("isDateLayout(%q) = %v, want %v", layout, got, want)
		}
	}
}
