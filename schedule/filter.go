package schedule

import (
	"strconv"
	"strings"

	"github.com/andpap18/thikishop-payroll/domain"
)

type monthName struct {
	key   string
	month int
}

// genitiveMonths is scanned in order; the first contained key wins.
var genitiveMonths = []monthName{
	{"ΙΑΝΟΥΑΡΙΟΥ", 1},
	{"ΦΕΒΡΟΥΑΡΙΟΥ", 2},
	{"ΜΑΡΤΙΟΥ", 3},
	{"ΑΠΡΙΛΙΟΥ", 4},
	{"ΜΑΙΟΥ", 5},
	{"ΙΟΥΝΙΟΥ", 6},
	{"ΙΟΥΛΙΟΥ", 7},
	{"ΑΥΓΟΥΣΤΟΥ", 8},
	{"ΣΕΠΤΕΜΒΡΙΟΥ", 9},
	{"ΟΚΤΩΒΡΙΟΥ", 10},
	{"ΝΟΕΜΒΡΙΟΥ", 11},
	{"ΔΕΚΕΜΒΡΙΟΥ", 12},
}

// FilterDateGroups builds the inclusion map of one file for month (1-12).
// A month of 0 includes everything. When no header cell of the file carries a
// recognisable date, the whole file is trusted and included.
func FilterDateGroups(g Grid, schema domain.Schema, month int) InclusionMap {
	inc := make(InclusionMap, schema.LastCol())
	datesFound := false

	for _, group := range schema.Groups() {
		include := true
		if month != 0 {
			if m, ok := HeaderMonth(g, schema.DateRow, group.Start); ok {
				datesFound = true
				include = m == month
			}
		}
		for k := range group.Width {
			inc[group.Start+k] = include
		}
	}

	if month != 0 && !datesFound {
		for col := range inc {
			inc[col] = true
		}
	}

	return inc
}

// HeaderMonth reads the month of a day-group header cell: a native date,
// a "DD/MM" string or a Greek month name in the genitive.
func HeaderMonth(g Grid, row, col int) (int, bool) {
	if d, ok := g.Date(row, col); ok {
		return int(d.Month()), true
	}

	text := domain.Fold(g.Text(row, col))
	if text == "" {
		return 0, false
	}

	if strings.Contains(text, "/") {
		parts := strings.Split(text, "/")
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || m < 1 || m > 12 {
			return 0, false
		}
		return m, true
	}

	for _, mn := range genitiveMonths {
		if strings.Contains(text, mn.key) {
			return mn.month, true
		}
	}
	return 0, false
}
