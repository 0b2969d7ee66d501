package schedule

import (
	"strings"

	"github.com/andpap18/thikishop-payroll/domain"
)

// Cell is one sub-column of one employee row.
type Cell struct {
	Row      int
	Col      int
	Sub      int
	Code     string
	Fill     string
	Included bool
}

// Day is one day-group of an employee row.
type Day struct {
	Group    domain.DayGroup
	Included bool
	Cells    []Cell
}

// Row is one employee line of a schedule file.
type Row struct {
	Row     int
	RawName string
	Name    string
	Days    []Day
}

// EndOfData reports whether row marks the end of the employee block. A name
// cell holding only whitespace ends the block like an empty one.
func EndOfData(g Grid, schema domain.Schema, row int) bool {
	return strings.TrimSpace(g.Text(row, schema.NameCol)) == ""
}

// Walk reads employee rows from the first data row until EndOfData or the
// schema's row limit, whichever comes first.
func Walk(g Grid, schema domain.Schema, inc InclusionMap) []Row {
	groups := schema.Groups()
	var rows []Row

	for r := schema.FirstDataRow; r <= schema.RowLimit(); r++ {
		if EndOfData(g, schema, r) {
			break
		}

		raw := g.Text(r, schema.NameCol)
		row := Row{
			Row:     r,
			RawName: raw,
			Name:    domain.CleanName(raw),
			Days:    make([]Day, 0, len(groups)),
		}

		for _, group := range groups {
			included := inc.Included(group.Start)
			day := Day{Group: group, Included: included, Cells: make([]Cell, 0, group.Width)}
			for k := range group.Width {
				col := group.Start + k
				day.Cells = append(day.Cells, Cell{
					Row:      r,
					Col:      col,
					Sub:      k,
					Code:     strings.TrimSpace(g.Text(r, col)),
					Fill:     g.Fill(r, col),
					Included: included,
				})
			}
			row.Days = append(row.Days, day)
		}

		rows = append(rows, row)
	}

	return rows
}
