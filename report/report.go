// Package report renders payroll and cost results into xlsx workbooks.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/excel"
	"github.com/andpap18/thikishop-payroll/schedule"
)

var monthNames = []string{
	"ΙΑΝΟΥΑΡΙΟΣ", "ΦΕΒΡΟΥΑΡΙΟΣ", "ΜΑΡΤΙΟΣ", "ΑΠΡΙΛΙΟΣ",
	"ΜΑΙΟΣ", "ΙΟΥΝΙΟΣ", "ΙΟΥΛΙΟΣ", "ΑΥΓΟΥΣΤΟΣ",
	"ΣΕΠΤΕΜΒΡΙΟΣ", "ΟΚΤΩΒΡΙΟΣ", "ΝΟΕΜΒΡΙΟΣ", "ΔΕΚΕΜΒΡΙΟΣ",
}

// MonthName returns the nominative Greek name of month, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// PayrollFilename is the download name of a payroll workbook.
func PayrollFilename(month int) string {
	return filename("ΣΥΓΚΕΝΤΡΩΤΙΚΟ_ΜΙΣΘΟΔΟΣΙΑΣ", month)
}

// CostFilename is the download name of a cost workbook.
func CostFilename(month int) string {
	return filename("ΚΟΣΤΟΛΟΓΗΣΗ_ΚΑΤΑΣΤΗΜΑΤΑ", month)
}

func filename(prefix string, month int) string {
	if name := MonthName(month); name != "" {
		return prefix + "_" + name + ".xlsx"
	}
	return prefix + ".xlsx"
}

// Label is the week title shown above a file's block.
func Label(file string) string {
	file = strings.ReplaceAll(file, "(ΕΠΙΘ).xlsx", "")
	return strings.ReplaceAll(file, ".xlsx", "")
}

// writer wraps the output sheet with a cursor-free cell API.
type writer struct {
	f     *excelize.File
	sheet string
	sm    *StyleManager
}

func newWriter(sheet string) (*writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	return &writer{f: f, sheet: sheet, sm: NewStyleManager(f)}, nil
}

func (w *writer) set(row, col int, value any, cs cellStyle) error {
	cell := excel.CellName(row, col)
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}

	id, err := w.sm.Get(cs)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(w.sheet, cell, cell, id); err != nil {
		return fmt.Errorf("style %s: %w", cell, err)
	}

	return nil
}

func (w *writer) merge(row, fromCol, toCol int) error {
	if err := w.f.MergeCell(w.sheet, excel.CellName(row, fromCol), excel.CellName(row, toCol)); err != nil {
		return fmt.Errorf("merge row %d: %w", row, err)
	}
	return nil
}

func (w *writer) width(fromCol, toCol int, width float64) error {
	return w.f.SetColWidth(w.sheet, excel.ColumnName(fromCol), excel.ColumnName(toCol), width)
}

func (w *writer) bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// weekHeader writes the file title and copies the header rows of g to the
// rows following top, blanking excluded columns and merging day-group
// labels. It returns the first row after the header.
func (w *writer) weekHeader(top int, file string, g schedule.Grid, inc schedule.InclusionMap, schema domain.Schema) (int, error) {
	if err := w.set(top, 1, Label(file), cellStyle{Bold: true, Size: 12}); err != nil {
		return 0, err
	}

	base := top + 1
	for r := 1; r <= schema.HeaderRows; r++ {
		for c := 1; c <= schema.LastCol(); c++ {
			cs := cellStyle{Bold: true, Align: "center", Border: borderThin, Fill: g.Fill(r, c)}
			if !inc.Included(c) {
				cs.Fill = fillBlank
			}
			if err := w.set(base+r-1, c, g.Text(r, c), cs); err != nil {
				return 0, err
			}
		}
	}

	for _, group := range schema.Groups() {
		if group.Width < 2 {
			continue
		}
		end := group.Start + group.Width - 1
		if err := w.merge(base, group.Start, end); err != nil {
			return 0, err
		}
		if schema.DateRow != 1 {
			if err := w.merge(base+schema.DateRow-1, group.Start, end); err != nil {
				return 0, err
			}
		}
	}

	return base + schema.HeaderRows, nil
}

// dayCell writes one schedule cell. Excluded cells are emptied and greyed.
func (w *writer) dayCell(row int, c schedule.Cell, value any, numFmt int) error {
	cs := cellStyle{Bold: true, Align: "center", Border: borderThin, Fill: c.Fill, NumFmt: numFmt}
	if !c.Included {
		cs.Fill = fillBlank
		cs.NumFmt = 0
		value = ""
	}
	return w.set(row, c.Col, value, cs)
}

func (w *writer) name(row int, name string) error {
	return w.set(row, 1, name, cellStyle{Bold: true, Border: borderThin})
}
