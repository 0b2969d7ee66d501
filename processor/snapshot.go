package processor

import (
	"time"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/excel"
	"github.com/andpap18/thikishop-payroll/schedule"
)

type cellKey struct{ row, col int }

// gridSnapshot is a detached copy of the part of a sheet the pipelines and
// the renderer read: header rows, then employee rows until end of data.
type gridSnapshot struct {
	text  map[cellKey]string
	dates map[cellKey]time.Time
	fills map[cellKey]string
}

func snapshot(sheet *excel.Sheet, schema domain.Schema) schedule.Grid {
	g := &gridSnapshot{
		text:  make(map[cellKey]string),
		dates: make(map[cellKey]time.Time),
		fills: make(map[cellKey]string),
	}

	lastRow := min(sheet.Rows(), schema.RowLimit())
	for r := 1; r <= lastRow; r++ {
		if r >= schema.FirstDataRow && schedule.EndOfData(sheet, schema, r) {
			break
		}
		for c := 1; c <= schema.LastCol(); c++ {
			k := cellKey{r, c}
			if v := sheet.Text(r, c); v != "" {
				g.text[k] = v
			}
			if f := sheet.Fill(r, c); f != "" {
				g.fills[k] = f
			}
			if r <= schema.HeaderRows || r == schema.DateRow {
				if d, ok := sheet.Date(r, c); ok {
					g.dates[k] = d
				}
			}
		}
	}

	return g
}

func (g *gridSnapshot) Text(row, col int) string {
	return g.text[cellKey{row, col}]
}

func (g *gridSnapshot) Date(row, col int) (time.Time, bool) {
	d, ok := g.dates[cellKey{row, col}]
	return d, ok
}

func (g *gridSnapshot) Fill(row, col int) string {
	return g.fills[cellKey{row, col}]
}
