// Package schedule decodes the weekly schedule grid: which day-groups belong
// to the target month, which rows are employees, and in what order files are read.
package schedule

import "time"

// Grid is read-only access to one schedule sheet. Rows and columns are 1-based.
type Grid interface {
	Text(row, col int) string
	Date(row, col int) (time.Time, bool)
	Fill(row, col int) string
}

// InclusionMap tells per absolute column whether its data counts toward the
// target month. Columns outside any day-group are included.
type InclusionMap map[int]bool

// Included reports whether col counts.
func (m InclusionMap) Included(col int) bool {
	v, ok := m[col]
	return !ok || v
}
