package processor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/excel"
	"github.com/andpap18/thikishop-payroll/payroll"
	"github.com/andpap18/thikishop-payroll/schedule"
	"github.com/andpap18/thikishop-payroll/timecode"
)

// ErrNoFiles is returned when a run is started without any schedule.
var ErrNoFiles = errors.New("no schedule files")

// Source is one uploaded schedule workbook held in memory.
type Source struct {
	Name string
	Data []byte
}

// ReadSources loads schedule files from disk.
func ReadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		sources = append(sources, Source{Name: filepath.Base(p), Data: data})
	}
	return sources, nil
}

// Options holds the policies a run is evaluated with.
type Options struct {
	Schema    domain.Schema
	Codes     timecode.Policy
	Threshold payroll.Threshold
	Allocator *cost.Allocator
	// Workers decodes files concurrently when greater than one.
	Workers int
	Logger  *slog.Logger
}

// DefaultOptions is the strict code policy with a fixed 40 hour week.
func DefaultOptions() Options {
	return Options{
		Schema:    domain.DefaultSchema(),
		Codes:     timecode.Strict(),
		Threshold: payroll.FixedThreshold(40),
		Allocator: cost.NewAllocator(),
		Workers:   1,
	}
}

// Processor runs the payroll, work-days and cost pipelines over schedule files.
type Processor struct {
	opts   Options
	interp *timecode.Interpreter
	log    *slog.Logger
}

// New creates a Processor with the given options.
func New(opts Options) *Processor {
	if opts.Codes.Name == "" {
		opts.Codes = timecode.Strict()
	}
	if opts.Threshold == nil {
		opts.Threshold = payroll.FixedThreshold(40)
	}
	if opts.Allocator == nil {
		opts.Allocator = cost.NewAllocator()
	}
	if len(opts.Schema.Widths) == 0 {
		opts.Schema = domain.DefaultSchema()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Processor{opts: opts, interp: timecode.New(opts.Codes), log: log}
}

// Codes returns the code policy cells are evaluated with.
func (p *Processor) Codes() timecode.Policy {
	return p.interp.Policy()
}

// SundayAssignments is the number of explicit Sunday location entries.
func (p *Processor) SundayAssignments() int {
	return p.opts.Allocator.Sunday.Len()
}

// Decoded is one schedule file after date filtering and the row walk.
type Decoded struct {
	Name      string
	Grid      schedule.Grid
	Inclusion schedule.InclusionMap
	Rows      []schedule.Row
}

// decodeBytes opens one workbook and walks it. The sheet is closed before
// returning; everything needed later is copied into Decoded.
func (p *Processor) decodeBytes(src Source, month int) (*Decoded, error) {
	sheet, err := excel.Open(src.Data)
	if err != nil {
		return nil, err
	}
	defer sheet.Close()

	d := p.decodeGrid(src.Name, snapshot(sheet, p.opts.Schema), month)
	p.log.Debug("schedule decoded",
		slog.String("file", src.Name),
		slog.String("sheet", sheet.Name()),
		slog.Int("rows", len(d.Rows)))
	return d, nil
}

func (p *Processor) decodeGrid(name string, g schedule.Grid, month int) *Decoded {
	inc := schedule.FilterDateGroups(g, p.opts.Schema, month)
	return &Decoded{
		Name:      name,
		Grid:      g,
		Inclusion: inc,
		Rows:      schedule.Walk(g, p.opts.Schema, inc),
	}
}

// result is one decoded file with its weekly records already aggregated
// into a per-file accumulator. Callers merge these in source order.
type result struct {
	decoded *Decoded
	weeks   []domain.WeekRecord
	monthly *payroll.Monthly
	err     error
}

func (p *Processor) decode(src Source, month int) result {
	d, err := p.decodeBytes(src, month)
	if err != nil {
		return result{err: err}
	}
	weeks := p.aggregate(d)
	m := payroll.NewMonthly()
	m.AddWeek(weeks)
	return result{decoded: d, weeks: weeks, monthly: m}
}

// decodeAll decodes and aggregates every source, in parallel when
// configured, and returns the results in the order of sources.
func (p *Processor) decodeAll(sources []Source, month int) []result {
	results := make([]result, len(sources))

	workers := p.opts.Workers
	if workers <= 1 || len(sources) < 2 {
		for i, src := range sources {
			results[i] = p.decode(src, month)
		}
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, len(sources)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.decode(sources[i], month)
			}
		}()
	}
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func ordered(sources []Source) []Source {
	return schedule.Order(sources, func(s Source) string { return s.Name })
}
