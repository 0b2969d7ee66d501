package schedule

import (
	"fmt"
	"time"
)

// fakeGrid is an in-memory Grid keyed by "row:col".
type fakeGrid struct {
	text  map[string]string
	dates map[string]time.Time
	fills map[string]string
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{
		text:  make(map[string]string),
		dates: make(map[string]time.Time),
		fills: make(map[string]string),
	}
}

func key(row, col int) string {
	return fmt.Sprintf("%d:%d", row, col)
}

func (g *fakeGrid) set(row, col int, v string) *fakeGrid {
	g.text[key(row, col)] = v
	return g
}

func (g *fakeGrid) setDate(row, col int, d time.Time) *fakeGrid {
	g.dates[key(row, col)] = d
	g.text[key(row, col)] = d.Format("01-02-06")
	return g
}

func (g *fakeGrid) Text(row, col int) string { return g.text[key(row, col)] }

func (g *fakeGrid) Date(row, col int) (time.Time, bool) {
	d, ok := g.dates[key(row, col)]
	return d, ok
}

func (g *fakeGrid) Fill(row, col int) string { return g.fills[key(row, col)] }
