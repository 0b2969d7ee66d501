package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Location is one of the physical shops a weekday sub-column stands for.
type Location string

const (
	Rentis    Location = "ΡΕΝΤΗΣ"
	Aigaleo   Location = "ΑΙΓΑΛΕΩ"
	Peiraias  Location = "ΠΕΙΡΑΙΑΣ"
	Peristeri Location = "ΠΕΡΙΣΤΕΡΙ"
)

// DefaultLocations is the sub-column order of a weekday group.
var DefaultLocations = []Location{Rentis, Aigaleo, Peiraias, Peristeri}

// WeekRecord is one employee row of one schedule file after aggregation.
type WeekRecord struct {
	File         string
	Name         string
	DayHours     []float64
	TotalHours   float64
	DaysWorked   int
	SundayWorked bool
	Overwork     float64
	Overtime     float64
}

// Mark represents a single schedule legend entry.
// Name is the human description; Key is the code written in the cell
// (e.g. "ΡΕΠΟ", "Α").
type Mark struct {
	Name string
	Key  string
}

// Marks lists the non-time codes found in weekly schedules.
var Marks = []Mark{
	{Name: "Ρεπό", Key: "ΡΕΠΟ"},
	{Name: "Ρεπό (λατινικά)", Key: "RR"},
	{Name: "Άδεια", Key: "Α"},
	{Name: "Αναρρωτική άδεια", Key: "ΑΝΑΡΡΩΤΙΚΗ"},
	{Name: "Άδεια (ολογράφως)", Key: "ΑΔΕΙΑ"},
}

// CleanName strips a parenthetical suffix such as "(8ΩΡΟΣ)" and surrounding
// whitespace. The result is the employee identity key.
func CleanName(raw string) string {
	if i := strings.IndexByte(raw, '('); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold upper-cases s and removes diacritics so "Μαΐου" and "ΜΑΙΟΥ" compare equal.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}
