// Package employee writes weekly schedule workbooks in the layout the
// payroll and cost runs read.
package employee

import (
	"fmt"
	"time"

	excelize "github.com/xuri/excelize/v2"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/excel"
)

const sheet = "Sheet1"

var dayNames = []string{"ΔΕΥΤΕΡΑ", "ΤΡΙΤΗ", "ΤΕΤΑΡΤΗ", "ΠΕΜΠΤΗ", "ΠΑΡΑΣΚΕΥΗ", "ΣΑΒΒΑΤΟ", "ΚΥΡΙΑΚΗ"}

// Layout is what a schedule is written with besides its rows.
type Layout struct {
	Schema    domain.Schema
	Locations []domain.Location
	// WeekStart is written into the date row, one day per group.
	// A zero time leaves the date row empty.
	WeekStart time.Time
}

// DefaultLayout is the default schema over the default shops.
func DefaultLayout(weekStart time.Time) Layout {
	return Layout{Schema: domain.DefaultSchema(), Locations: domain.DefaultLocations, WeekStart: weekStart}
}

// WriteToFile writes roster as a schedule workbook and saves it to path.
func WriteToFile(roster []domain.RosterRow, layout Layout, path string) error {
	f, err := build(roster, layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

// WriteToBytes writes roster as a schedule workbook and returns it as bytes.
func WriteToBytes(roster []domain.RosterRow, layout Layout) ([]byte, error) {
	f, err := build(roster, layout)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func build(roster []domain.RosterRow, layout Layout) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeHeaders(f, layout); err != nil {
		f.Close()
		return nil, fmt.Errorf("write headers: %w", err)
	}

	if err := writeRows(f, layout.Schema, roster); err != nil {
		f.Close()
		return nil, fmt.Errorf("write rows: %w", err)
	}

	if err := autoFitColumns(f, layout.Schema); err != nil {
		f.Close()
		return nil, fmt.Errorf("auto fit columns: %w", err)
	}

	return f, nil
}

func writeHeaders(f *excelize.File, layout Layout) error {
	schema := layout.Schema

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		NumFmt:    14,
	})
	if err != nil {
		return err
	}

	put := func(row, col int, value any, style int) error {
		cell := excel.CellName(row, col)
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(sheet, cell, cell, style)
	}

	if err := put(1, schema.NameCol, "ΟΝΟΜΑΤΕΠΩΝΥΜΟ", style); err != nil {
		return err
	}

	for _, g := range schema.Groups() {
		end := g.Start + g.Width - 1

		if err := put(1, g.Start, dayNames[g.Index%len(dayNames)], style); err != nil {
			return err
		}
		if !layout.WeekStart.IsZero() {
			if err := put(schema.DateRow, g.Start, layout.WeekStart.AddDate(0, 0, g.Index), dateStyle); err != nil {
				return err
			}
		}
		if g.Width > 1 {
			if err := f.MergeCell(sheet, excel.CellName(1, g.Start), excel.CellName(1, end)); err != nil {
				return err
			}
			if err := f.MergeCell(sheet, excel.CellName(schema.DateRow, g.Start), excel.CellName(schema.DateRow, end)); err != nil {
				return err
			}
			for k := range g.Width {
				if k >= len(layout.Locations) {
					break
				}
				if err := put(schema.HeaderRows, g.Start+k, string(layout.Locations[k]), style); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func writeRows(f *excelize.File, schema domain.Schema, roster []domain.RosterRow) error {
	groups := schema.Groups()

	for i, r := range roster {
		row := schema.FirstDataRow + i
		if err := f.SetCellStr(sheet, excel.CellName(row, schema.NameCol), r.Name); err != nil {
			return fmt.Errorf("employee %q: %w", r.Name, err)
		}

		for gi, codes := range r.Codes {
			if gi >= len(groups) {
				break
			}
			for k, code := range codes {
				if code == "" || k >= groups[gi].Width {
					continue
				}
				if err := f.SetCellStr(sheet, excel.CellName(row, groups[gi].Start+k), code); err != nil {
					return fmt.Errorf("employee %q, day %d: %w", r.Name, gi, err)
				}
			}
		}
	}

	return nil
}

func autoFitColumns(f *excelize.File, schema domain.Schema) error {
	name := excel.ColumnName(schema.NameCol)
	if err := f.SetColWidth(sheet, name, name, 30); err != nil {
		return err
	}
	first := excel.ColumnName(schema.FirstCol)
	last := excel.ColumnName(schema.LastCol())
	return f.SetColWidth(sheet, first, last, 14)
}
