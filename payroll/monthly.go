package payroll

import (
	"github.com/samber/lo"

	"github.com/andpap18/thikishop-payroll/domain"
)

// Stats is one employee's running totals across all processed files.
type Stats struct {
	Name        string  `json:"name"`
	Overwork    float64 `json:"overwork"`
	Overtime    float64 `json:"overtime"`
	SundayWeeks int     `json:"sundayWeeks"`
	DaysWorked  int     `json:"daysWorked"`
}

// Monthly accumulates Stats keyed by cleaned name, remembering the order in
// which names were first seen.
type Monthly struct {
	order []string
	stats map[string]*Stats
}

// NewMonthly creates an empty accumulator.
func NewMonthly() *Monthly {
	return &Monthly{stats: make(map[string]*Stats)}
}

func (m *Monthly) entry(name string) *Stats {
	s, ok := m.stats[name]
	if !ok {
		s = &Stats{Name: name}
		m.stats[name] = s
		m.order = append(m.order, name)
	}
	return s
}

// Add folds one weekly record into the totals.
func (m *Monthly) Add(rec domain.WeekRecord) {
	s := m.entry(rec.Name)
	s.Overwork += rec.Overwork
	s.Overtime += rec.Overtime
	s.DaysWorked += rec.DaysWorked
	if rec.SundayWorked {
		s.SundayWeeks++
	}
}

// AddWeek folds every record of one file, in row order.
func (m *Monthly) AddWeek(records []domain.WeekRecord) {
	for _, rec := range records {
		m.Add(rec)
	}
}

// Merge adds other into m. Names unseen by m are appended in other's order,
// so merging per-file accumulators in file order preserves first sighting.
func (m *Monthly) Merge(other *Monthly) {
	for _, name := range other.order {
		o := other.stats[name]
		s := m.entry(name)
		s.Overwork += o.Overwork
		s.Overtime += o.Overtime
		s.DaysWorked += o.DaysWorked
		s.SundayWeeks += o.SundayWeeks
	}
}

// Get returns the totals for name.
func (m *Monthly) Get(name string) (Stats, bool) {
	s, ok := m.stats[name]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// Len is the number of distinct employees.
func (m *Monthly) Len() int {
	return len(m.order)
}

// Names lists employees in first-seen order.
func (m *Monthly) Names() []string {
	return append([]string(nil), m.order...)
}

// List returns a copy of every employee's totals in first-seen order.
func (m *Monthly) List() []Stats {
	return lo.Map(m.order, func(name string, _ int) Stats {
		return *m.stats[name]
	})
}

// DaysWorked maps every employee to cumulative days worked.
func (m *Monthly) DaysWorked() map[string]int {
	return lo.MapValues(m.stats, func(s *Stats, _ string) int {
		return s.DaysWorked
	})
}
