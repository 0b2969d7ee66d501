package processor

import (
	"fmt"
	"log/slog"

	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/domain"
)

// CostFile is one processed week of the cost run.
type CostFile struct {
	*Decoded
	Plan cost.Plan
}

// CostResult is the outcome of a cost run.
type CostResult struct {
	Month    int
	Schema   domain.Schema
	Files    []CostFile
	Ledger   *cost.Ledger
	Rates    cost.DailyCosts
	Warnings []cost.Warning
	Skipped  []SkippedFile
}

// Detections lists the allocations whose location was not given by the
// sub-column, in file then row order.
func (r *CostResult) Detections() []cost.Allocation {
	var out []cost.Allocation
	for _, f := range r.Files {
		for _, a := range f.Plan.Allocations {
			if a.Method != cost.BySubColumn {
				out = append(out, a)
			}
		}
	}
	return out
}

// Cost orders the sources, replaces worked cells with the daily cost and
// totals the cost per location. An unreadable file aborts the run.
func (p *Processor) Cost(sources []Source, rates cost.DailyCosts, month int) (*CostResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoFiles
	}

	alloc := p.opts.Allocator
	sources = ordered(sources)
	res := &CostResult{
		Month:  month,
		Schema: p.opts.Schema,
		Ledger: cost.NewLedger(alloc.Locations),
		Rates:  rates,
	}

	for i, r := range p.decodeAll(sources, month) {
		if r.err != nil {
			return nil, fmt.Errorf("file %q: %w", sources[i].Name, r.err)
		}

		plan, err := alloc.Allocate(r.decoded.Name, r.decoded.Rows, rates)
		if err != nil {
			return nil, fmt.Errorf("file %q: allocate: %w", sources[i].Name, err)
		}
		res.Ledger.Apply(plan)
		res.Files = append(res.Files, CostFile{Decoded: r.decoded, Plan: plan})

		for _, a := range plan.Allocations {
			if a.Method != cost.BySubColumn {
				p.log.Debug("sunday location",
					slog.String("file", a.File),
					slog.String("employee", a.Employee),
					slog.String("location", string(a.Location)),
					slog.String("method", string(a.Method)))
			}
		}
	}

	return res, nil
}

// CostAnalysis derives daily rates from monthly costs and the days worked
// in month, then runs Cost. Zero-day employees are reported as warnings.
func (p *Processor) CostAnalysis(sources []Source, monthly []cost.MonthlyCost, month int) (*CostResult, error) {
	days := p.WorkDays(sources, month)

	rates, warnings, err := cost.DailyRates(monthly, days.Monthly.DaysWorked())
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		p.log.Warn("cost not spread", slog.String("employee", w.Employee), slog.String("reason", w.Message))
	}

	res, err := p.Cost(sources, rates, month)
	if err != nil {
		return nil, err
	}
	if res.Ledger.Total().IsZero() {
		p.log.Warn("zero total cost",
			slog.Int("files", len(res.Files)),
			slog.Int("costed", len(rates)))
		warnings = append(warnings, cost.Warning{Message: cost.ZeroTotal})
	}
	res.Warnings = warnings
	res.Skipped = days.Skipped
	return res, nil
}
