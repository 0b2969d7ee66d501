package cost

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/andpap18/thikishop-payroll/domain"
)

// LocationTotal is one line of the location summary.
type LocationTotal struct {
	Location domain.Location `json:"location"`
	Cost     decimal.Decimal `json:"cost"`
}

// Ledger holds the running cost per location, in a fixed location order.
type Ledger struct {
	order  []domain.Location
	totals map[domain.Location]decimal.Decimal
}

// NewLedger starts every location at zero.
func NewLedger(locations []domain.Location) *Ledger {
	l := &Ledger{
		order:  append([]domain.Location(nil), locations...),
		totals: make(map[domain.Location]decimal.Decimal, len(locations)),
	}
	for _, loc := range locations {
		l.totals[loc] = decimal.Zero
	}
	return l
}

// Add credits amount to loc. Unknown locations are appended to the order.
func (l *Ledger) Add(loc domain.Location, amount decimal.Decimal) {
	cur, ok := l.totals[loc]
	if !ok {
		l.order = append(l.order, loc)
		cur = decimal.Zero
	}
	l.totals[loc] = cur.Add(amount)
}

// Apply folds every allocation of a plan into the ledger.
func (l *Ledger) Apply(p Plan) {
	for _, a := range p.Allocations {
		l.Add(a.Location, a.Amount)
	}
}

// Get returns the total for loc.
func (l *Ledger) Get(loc domain.Location) decimal.Decimal {
	return l.totals[loc]
}

// Totals lists every location in ledger order.
func (l *Ledger) Totals() []LocationTotal {
	return lo.Map(l.order, func(loc domain.Location, _ int) LocationTotal {
		return LocationTotal{Location: loc, Cost: l.totals[loc]}
	})
}

// Total is the sum over all locations.
func (l *Ledger) Total() decimal.Decimal {
	return lo.Reduce(l.order, func(acc decimal.Decimal, loc domain.Location, _ int) decimal.Decimal {
		return acc.Add(l.totals[loc])
	}, decimal.Zero)
}
