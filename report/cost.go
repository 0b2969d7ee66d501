package report

import (
	"github.com/andpap18/thikishop-payroll/processor"
)

// SheetCost is the worksheet name of the cost workbook.
const SheetCost = "ΚΟΣΤΟΛΟΓΗΣΗ"

const costSummaryTitle = "ΚΟΣΤΟΣ ΑΝΑ ΚΑΤΑΣΤΗΜΑ"

// RenderCost writes every file with worked cells replaced by the daily cost,
// followed by the cost per location.
func RenderCost(res *processor.CostResult) ([]byte, error) {
	w, err := newWriter(SheetCost)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	schema := res.Schema
	row := 1

	for _, file := range res.Files {
		next, err := w.weekHeader(row, file.Name, file.Grid, file.Inclusion, schema)
		if err != nil {
			return nil, err
		}
		row = next

		for _, pr := range file.Plan.Rows {
			if err := w.name(row, pr.Name); err != nil {
				return nil, err
			}
			for _, c := range pr.Cells {
				var value any = c.Code
				numFmt := 0
				if c.Worked {
					value = c.Cost.InexactFloat64()
					numFmt = numFmtTwoDecimals
				}
				if err := w.dayCell(row, c.Cell, value, numFmt); err != nil {
					return nil, err
				}
			}
			row++
		}
		row += 2
	}

	if err := writeLocations(w, res, row+1); err != nil {
		return nil, err
	}

	if err := w.width(2, schema.LastCol(), 16); err != nil {
		return nil, err
	}
	if err := w.width(1, 1, 30); err != nil {
		return nil, err
	}

	return w.bytes()
}

func writeLocations(w *writer, res *processor.CostResult, row int) error {
	title := cellStyle{Bold: true, Size: 14, Border: borderThick}
	for c := 1; c <= 4; c++ {
		if err := w.set(row, c, "", title); err != nil {
			return err
		}
	}
	if err := w.merge(row, 1, 4); err != nil {
		return err
	}
	if err := w.set(row, 1, costSummaryTitle, title); err != nil {
		return err
	}
	row++

	for _, t := range res.Ledger.Totals() {
		if err := w.set(row, 1, string(t.Location), cellStyle{Bold: true, Border: borderThin, Fill: fillHeaderGrey}); err != nil {
			return err
		}
		amount := cellStyle{Bold: true, Align: "right", Border: borderThin, NumFmt: numFmtThousands}
		if err := w.set(row, 2, t.Cost.InexactFloat64(), amount); err != nil {
			return err
		}
		row++
	}

	return nil
}
