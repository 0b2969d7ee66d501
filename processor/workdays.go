package processor

import (
	"log/slog"

	"github.com/andpap18/thikishop-payroll/payroll"
)

// SkippedFile is a source the work-days scan could not read.
type SkippedFile struct {
	Name string `json:"name"`
	Err  string `json:"error"`
}

// WorkDaysResult holds the days worked per employee for one month.
type WorkDaysResult struct {
	Month   int
	Monthly *payroll.Monthly
	Skipped []SkippedFile
}

// WorkDays counts days worked per employee across all sources. Unreadable
// files are skipped and reported instead of failing the scan.
func (p *Processor) WorkDays(sources []Source, month int) *WorkDaysResult {
	sources = ordered(sources)
	res := &WorkDaysResult{Month: month, Monthly: payroll.NewMonthly()}

	for i, r := range p.decodeAll(sources, month) {
		if r.err != nil {
			p.log.Warn("skipping unreadable schedule",
				slog.String("file", sources[i].Name),
				slog.Any("error", r.err))
			res.Skipped = append(res.Skipped, SkippedFile{Name: sources[i].Name, Err: r.err.Error()})
			continue
		}
		res.Monthly.Merge(r.monthly)
	}

	return res
}
