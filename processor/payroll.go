package processor

import (
	"fmt"
	"log/slog"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/payroll"
)

// PayrollFile is one processed week.
type PayrollFile struct {
	*Decoded
	Weeks []domain.WeekRecord
}

// PayrollResult is the outcome of a payroll run.
type PayrollResult struct {
	Month   int
	Schema  domain.Schema
	Files   []PayrollFile
	Monthly *payroll.Monthly
}

// Payroll orders the sources, aggregates every employee week and folds the
// monthly totals. An unreadable file aborts the run.
func (p *Processor) Payroll(sources []Source, month int) (*PayrollResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoFiles
	}

	sources = ordered(sources)
	res := &PayrollResult{Month: month, Schema: p.opts.Schema, Monthly: payroll.NewMonthly()}

	for i, r := range p.decodeAll(sources, month) {
		if r.err != nil {
			return nil, fmt.Errorf("file %q: %w", sources[i].Name, r.err)
		}

		file := PayrollFile{Decoded: r.decoded, Weeks: r.weeks}
		res.Monthly.Merge(r.monthly)
		res.Files = append(res.Files, file)

		p.log.Debug("payroll file processed",
			slog.String("file", file.Name),
			slog.Int("employees", len(file.Weeks)))
	}

	return res, nil
}

func (p *Processor) aggregate(d *Decoded) []domain.WeekRecord {
	weeks := make([]domain.WeekRecord, 0, len(d.Rows))
	for _, row := range d.Rows {
		weeks = append(weeks, payroll.AggregateWeek(d.Name, row, p.interp, p.opts.Threshold))
	}
	return weeks
}
