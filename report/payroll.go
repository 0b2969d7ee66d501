package report

import (
	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/processor"
)

// SheetPayroll is the worksheet name of the payroll workbook.
const SheetPayroll = "ΜΙΣΘΟΔΟΣΙΑ"

var (
	weekColumns = []struct {
		title string
		fill  string
	}{
		{"ΗΜΕΡΕΣ ΕΡΓΑΣΙΑΣ", fillWhite},
		{"ΩΡΕΣ/ΕΒΔΟ", fillWhite},
		{"ΥΠΕΡΕΡΓΑΣΙΑ (h)", fillOrange},
		{"ΥΠΕΡΩΡΙΕΣ(h)", fillLightOrange},
	}
	summaryColumns = []string{"ΟΝΟΜΑΤΕΠΩΝΥΜΟ", "ΗΜΕΡΕΣ ΕΡΓΑΣΙΑΣ", "ΥΠΕΡΕΡΓΑΣΙΑ (h)", "ΥΠΕΡΩΡΙΕΣ(h)", "ΚΥΡΙΑΚΕΣ"}
)

// RenderPayroll writes one block per file (header copy, schedule cells and
// the weekly figures) followed by the monthly summary table.
func RenderPayroll(res *processor.PayrollResult) ([]byte, error) {
	w, err := newWriter(SheetPayroll)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	schema := res.Schema
	calc := schema.LastCol() + 1
	row := 1

	for _, file := range res.Files {
		next, err := w.weekHeader(row, file.Name, file.Grid, file.Inclusion, schema)
		if err != nil {
			return nil, err
		}
		for i, col := range weekColumns {
			cs := cellStyle{Bold: true, Size: 9, Align: "center", Wrap: true, Border: borderThin, Fill: col.fill}
			if err := w.set(next-1, calc+i, col.title, cs); err != nil {
				return nil, err
			}
		}
		row = next

		for i, r := range file.Rows {
			week := file.Weeks[i]
			if err := w.name(row, r.Name); err != nil {
				return nil, err
			}
			for _, day := range r.Days {
				for _, c := range day.Cells {
					if err := w.dayCell(row, c, c.Code, 0); err != nil {
						return nil, err
					}
				}
			}

			figures := []struct {
				value any
				fill  string
			}{
				{week.DaysWorked, ""},
				{week.TotalHours, highlight(week.Overwork > 0, fillOrange)},
				{week.Overwork, highlight(week.Overwork > 0, fillOrange)},
				{week.Overtime, highlight(week.Overtime > 0, fillLightOrange)},
			}
			for k, fig := range figures {
				cs := cellStyle{Bold: true, Align: "center", Border: borderThin, Fill: fig.fill}
				if err := w.set(row, calc+k, fig.value, cs); err != nil {
					return nil, err
				}
			}
			row++
		}
		row += 2
	}

	row, err = writeSummary(w, res, row)
	if err != nil {
		return nil, err
	}
	if err := writeLegend(w, row+2, domain.Marks); err != nil {
		return nil, err
	}

	if err := w.width(2, schema.LastCol(), 16); err != nil {
		return nil, err
	}
	if err := w.width(calc, calc+len(weekColumns)-1, 14); err != nil {
		return nil, err
	}
	if err := w.width(1, 1, 30); err != nil {
		return nil, err
	}

	return w.bytes()
}

// writeSummary writes the monthly table at row and returns the row after it.
func writeSummary(w *writer, res *processor.PayrollResult, row int) (int, error) {
	for i, title := range summaryColumns {
		cs := cellStyle{Bold: true, Align: "center", Border: borderThick}
		if i > 0 {
			cs.Fill = fillHeaderGrey
		}
		if err := w.set(row, 1+i, title, cs); err != nil {
			return 0, err
		}
	}
	row++

	for _, s := range res.Monthly.List() {
		cells := []struct {
			value any
			cs    cellStyle
		}{
			{s.Name, cellStyle{Bold: true, Border: borderThin, Fill: fillNameGrey}},
			{s.DaysWorked, cellStyle{Bold: true, Align: "center", Border: borderThin}},
			{s.Overwork, cellStyle{Bold: true, Align: "center", Border: borderThin, Fill: highlight(s.Overwork > 0, fillOrange)}},
			{s.Overtime, cellStyle{Bold: true, Align: "center", Border: borderThin, Fill: highlight(s.Overtime > 0, fillLightOrange)}},
			{s.SundayWeeks, cellStyle{Bold: true, Align: "center", Border: borderThin}},
		}
		for i, c := range cells {
			if err := w.set(row, 1+i, c.value, c.cs); err != nil {
				return 0, err
			}
		}
		row++
	}

	return row, nil
}

func highlight(on bool, fill string) string {
	if on {
		return fill
	}
	return ""
}
