package domain

import (
	"fmt"
	"math/rand/v2"

	"github.com/bxcodec/faker/v4"
)

// RosterRow is one employee line of a generated weekly schedule.
// Codes holds one slice per day-group, one code per sub-column.
type RosterRow struct {
	Name  string
	Codes [][]string
}

var shiftLengths = []string{"(8ΩΡΟΣ)", "(4ΩΡΟΣ)", ""}

var shifts = []string{"09:00-17:00", "08:00-16:00", "14:00-22:00", "10:00-14:00", "22:00-06:00", "09:00-18:30"}

var offCodes = []string{"ΡΕΠΟ", "RR", "Α", "ΑΝΑΡΡΩΤΙΚΗ"}

// GenerateRoster creates n employees with a random week laid out by schema.
// Each employee works at most one location per weekday.
func GenerateRoster(n int, schema Schema) []RosterRow {
	rows := make([]RosterRow, n)

	for i := range n {
		name := faker.Name()
		if suffix := shiftLengths[rand.IntN(len(shiftLengths))]; suffix != "" {
			name = fmt.Sprintf("%s %s", name, suffix)
		}
		rows[i] = RosterRow{
			Name:  name,
			Codes: GenerateWeek(schema),
		}
	}

	return rows
}

// GenerateWeek lays out one random week: a shift at one location, an absence or nothing per day.
func GenerateWeek(schema Schema) [][]string {
	groups := schema.Groups()
	week := make([][]string, len(groups))
	for i, g := range groups {
		cells := make([]string, g.Width)
		switch n := rand.IntN(10); {
		case n < 7:
			cells[rand.IntN(g.Width)] = shifts[rand.IntN(len(shifts))]
		case n < 9:
			cells[0] = offCodes[rand.IntN(len(offCodes))]
		}
		week[i] = cells
	}
	return week
}
