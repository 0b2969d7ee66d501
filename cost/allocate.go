// Package cost replaces worked schedule cells with a daily cost and
// attributes that cost to the shop the cell stands for.
package cost

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/excel"
	"github.com/andpap18/thikishop-payroll/schedule"
)

// WorkPolicy decides which cell codes count as a costed work day.
type WorkPolicy struct {
	NonWork   []string
	Paid      []string
	Separator string
}

// DefaultWorkPolicy treats time ranges and paid absences as work.
func DefaultWorkPolicy() WorkPolicy {
	return WorkPolicy{
		NonWork:   []string{"NONE", "RR", "ΡΕΠΟ"},
		Paid:      []string{"Α", "A", "ΑΝΑΡΡΩΤΙΚΗ", "ΑΔΕΙΑ"},
		Separator: "-",
	}
}

// Worked reports whether code is a costed day.
func (p WorkPolicy) Worked(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	folded := domain.Fold(code)
	for _, nw := range p.NonWork {
		if folded == domain.Fold(nw) {
			return false
		}
	}
	sep := p.Separator
	if sep == "" {
		sep = "-"
	}
	if strings.Contains(code, sep) {
		return true
	}
	for _, paid := range p.Paid {
		if folded == domain.Fold(paid) {
			return true
		}
	}
	return false
}

// Method names how a cell's location was decided.
type Method string

const (
	BySubColumn  Method = "sub-column"
	ByAssignment Method = "assignment"
	ByColor      Method = "color"
	ByDefault    Method = "default"
)

// Allocation is one costed cell.
type Allocation struct {
	File     string          `json:"file"`
	Employee string          `json:"employee"`
	Row      int             `json:"row"`
	Col      int             `json:"col"`
	Location domain.Location `json:"location"`
	Amount   decimal.Decimal `json:"amount"`
	Method   Method          `json:"method"`
}

// PlannedCell is the cost-sheet value of one grid cell.
type PlannedCell struct {
	schedule.Cell
	Worked bool
	Cost   decimal.Decimal
}

// PlannedRow is one employee row of the cost sheet.
type PlannedRow struct {
	Name  string
	Cells []PlannedCell
}

// Plan is the cost result of one file: the replacement grid and every
// positive allocation. Apply it to a Ledger to fold it into the totals.
type Plan struct {
	File        string
	Rows        []PlannedRow
	Allocations []Allocation
}

// Allocator attributes worked cells to locations.
type Allocator struct {
	Locations     []domain.Location
	Work          WorkPolicy
	Sunday        *Assignments
	ColorFallback bool
	Colors        map[string]domain.Location
}

// DefaultColors are the fills schedulers use to mark a Sunday shop.
func DefaultColors() map[string]domain.Location {
	return map[string]domain.Location{
		"E2EFDA": domain.Aigaleo,
		"DDEBF7": domain.Peiraias,
		"F4B084": domain.Peristeri,
	}
}

// NewAllocator creates an Allocator over the default shops.
func NewAllocator() *Allocator {
	return &Allocator{
		Locations:     domain.DefaultLocations,
		Work:          DefaultWorkPolicy(),
		Sunday:        NewAssignments(),
		ColorFallback: true,
		Colors:        DefaultColors(),
	}
}

// Allocate builds the plan of one file. It does not touch any shared state.
func (a *Allocator) Allocate(file string, rows []schedule.Row, rates DailyCosts) (Plan, error) {
	if len(a.Locations) == 0 {
		return Plan{}, fmt.Errorf("allocator has no locations")
	}

	plan := Plan{File: file, Rows: make([]PlannedRow, 0, len(rows))}

	for _, row := range rows {
		rate := rates.Rate(row.Name)
		pr := PlannedRow{Name: row.Name}

		for _, day := range row.Days {
			for _, c := range day.Cells {
				pc := PlannedCell{Cell: c}
				if c.Included && a.Work.Worked(c.Code) {
					pc.Worked = true
					pc.Cost = rate
					if rate.IsPositive() {
						loc, method := a.locate(file, row.Name, day, c)
						plan.Allocations = append(plan.Allocations, Allocation{
							File:     file,
							Employee: row.Name,
							Row:      c.Row,
							Col:      c.Col,
							Location: loc,
							Amount:   rate,
							Method:   method,
						})
					}
				}
				pr.Cells = append(pr.Cells, pc)
			}
		}

		plan.Rows = append(plan.Rows, pr)
	}

	return plan, nil
}

func (a *Allocator) locate(file, employee string, day schedule.Day, c schedule.Cell) (domain.Location, Method) {
	if day.Group.Width > 1 {
		if c.Sub < len(a.Locations) {
			return a.Locations[c.Sub], BySubColumn
		}
		return a.Locations[0], ByDefault
	}

	if loc, ok := a.Sunday.Lookup(file, employee); ok {
		return loc, ByAssignment
	}
	if a.ColorFallback && c.Fill != "" {
		if loc, ok := a.Colors[excel.NormalizeColor(c.Fill)]; ok {
			return loc, ByColor
		}
	}
	return a.Locations[0], ByDefault
}
