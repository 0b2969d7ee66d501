package domain

// Role tells whether a day-group is a weekday split by location or the
// single Sunday column.
type Role int

const (
	Weekday Role = iota
	Sunday
)

// DayGroup is one weekly slot of the grid.
type DayGroup struct {
	Index int
	Width int
	Role  Role
	// Start is the 1-based absolute column of the first sub-column.
	Start int
}

// Schema describes the fixed layout of a weekly schedule sheet.
// Rows and columns are 1-based like the sheet itself.
type Schema struct {
	HeaderRows   int
	DateRow      int
	FirstDataRow int
	NameCol      int
	FirstCol     int
	Widths       []int
	SundayGroup  int
	// MaxRows bounds the employee scan; zero means DefaultMaxRows.
	MaxRows int
}

const DefaultMaxRows = 500

// DefaultSchema is six 4-wide weekday groups followed by one Sunday column.
func DefaultSchema() Schema {
	return Schema{
		HeaderRows:   3,
		DateRow:      2,
		FirstDataRow: 4,
		NameCol:      1,
		FirstCol:     2,
		Widths:       []int{4, 4, 4, 4, 4, 4, 1},
		SundayGroup:  6,
		MaxRows:      DefaultMaxRows,
	}
}

// Groups resolves the absolute column span of every day-group.
func (s Schema) Groups() []DayGroup {
	groups := make([]DayGroup, 0, len(s.Widths))
	col := s.FirstCol
	for i, w := range s.Widths {
		role := Weekday
		if i == s.SundayGroup {
			role = Sunday
		}
		groups = append(groups, DayGroup{Index: i, Width: w, Role: role, Start: col})
		col += w
	}
	return groups
}

// LastCol is the last absolute column covered by a day-group.
func (s Schema) LastCol() int {
	last := s.FirstCol - 1
	for _, w := range s.Widths {
		last += w
	}
	return last
}

// RowLimit is the last sheet row the employee scan may visit.
func (s Schema) RowLimit() int {
	limit := s.MaxRows
	if limit <= 0 {
		limit = DefaultMaxRows
	}
	return s.FirstDataRow + limit - 1
}
