package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet is the active worksheet of a schedule workbook, held in memory.
// It satisfies schedule.Grid.
type Sheet struct {
	file     *excelize.File
	name     string
	rows     [][]string
	date1904 bool
}

// Open reads a workbook from raw bytes and loads its active sheet.
func Open(data []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	return load(f)
}

func load(f *excelize.File) (*Sheet, error) {
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			f.Close()
			return nil, fmt.Errorf("workbook has no sheets")
		}
		name = list[0]
	}

	rows, err := f.GetRows(name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sheet %q: get rows: %w", name, err)
	}

	s := &Sheet{file: f, name: name, rows: rows}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		s.date1904 = *props.Date1904
	}
	return s, nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Close releases the underlying workbook.
func (s *Sheet) Close() error {
	return s.file.Close()
}

// Rows is the number of rows that hold any value.
func (s *Sheet) Rows() int {
	return len(s.rows)
}

// Text returns the formatted value of a 1-based cell, or "" when absent.
func (s *Sheet) Text(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	cells := s.rows[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

var isoLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Date reports whether the cell holds a native date value and returns it.
// Text that merely looks like a date is not a native date.
func (s *Sheet) Date(row, col int) (time.Time, bool) {
	cell := CellName(row, col)

	typ, err := s.file.GetCellType(s.name, cell)
	if err != nil {
		return time.Time{}, false
	}
	raw, err := s.file.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil || strings.TrimSpace(raw) == "" {
		return time.Time{}, false
	}

	switch typ {
	case excelize.CellTypeDate:
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if !s.dateFormatted(cell) {
			return time.Time{}, false
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, s.date1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// Fill returns the solid background colour of a cell as uppercase hex
// without alpha (e.g. "E2EFDA"), or "" when the cell has no fill.
func (s *Sheet) Fill(row, col int) string {
	style := s.style(CellName(row, col))
	if style == nil || len(style.Fill.Color) == 0 {
		return ""
	}
	return NormalizeColor(style.Fill.Color[0])
}

func (s *Sheet) style(cell string) *excelize.Style {
	id, err := s.file.GetCellStyle(s.name, cell)
	if err != nil || id == 0 {
		return nil
	}
	style, err := s.file.GetStyle(id)
	if err != nil {
		return nil
	}
	return style
}

func (s *Sheet) dateFormatted(cell string) bool {
	style := s.style(cell)
	if style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateLayout(*style.CustomNumFmt)
	}
	return isBuiltinDateFormat(style.NumFmt)
}

func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateLayout inspects a custom number format for date tokens, ignoring
// quoted literals and bracketed sections such as colours and locales.
// A lone m is a month unless hours or seconds make it minutes.
func isDateLayout(layout string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range layout {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	stripped := strings.ToLower(b.String())
	if strings.ContainsAny(stripped, "dy") {
		return true
	}
	return strings.Contains(stripped, "m") && !strings.ContainsAny(stripped, "hs")
}

// NormalizeColor turns "#e2efda", "FFE2EFDA" or "e2efda" into "E2EFDA".
func NormalizeColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(c) > 6 {
		c = c[len(c)-6:]
	}
	return c
}
