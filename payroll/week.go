// Package payroll turns decoded schedule rows into weekly overtime tiers and
// folds them into monthly statistics.
package payroll

import (
	"fmt"
	"math"
	"strings"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/schedule"
	"github.com/andpap18/thikishop-payroll/timecode"
)

// OverworkCap is the size of the first excess tier.
const OverworkCap = 5.0

// Threshold decides how many weekly hours are regular time.
type Threshold interface {
	Hours(daysWorked int) float64
	String() string
}

// FixedThreshold is the same weekly limit regardless of days worked.
type FixedThreshold float64

func (t FixedThreshold) Hours(int) float64 { return float64(t) }

func (t FixedThreshold) String() string { return fmt.Sprintf("fixed:%g", float64(t)) }

// PerDayThreshold grants a fixed number of regular hours per day worked.
type PerDayThreshold float64

func (t PerDayThreshold) Hours(days int) float64 { return float64(days) * float64(t) }

func (t PerDayThreshold) String() string { return fmt.Sprintf("per-day:%g", float64(t)) }

// ThresholdByName builds "fixed" (weekly hours) or "per-day" (hours per day).
func ThresholdByName(name string, fixedHours, hoursPerDay float64) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fixed":
		return FixedThreshold(fixedHours), nil
	case "per-day", "per_day", "perday":
		return PerDayThreshold(hoursPerDay), nil
	default:
		return nil, fmt.Errorf("unknown threshold policy %q", name)
	}
}

// SplitExcess splits the hours above threshold into overwork (the first five
// hours) and overtime (the rest).
func SplitExcess(total, threshold float64) (overwork, overtime float64) {
	remainder := math.Max(0, total-threshold)
	overwork = math.Min(remainder, OverworkCap)
	overtime = math.Max(0, remainder-OverworkCap)
	return overwork, overtime
}

// AggregateWeek computes one employee's week from a walked row. Only included
// cells count and only positive cell hours are summed.
func AggregateWeek(file string, row schedule.Row, in *timecode.Interpreter, th Threshold) domain.WeekRecord {
	rec := domain.WeekRecord{
		File:     file,
		Name:     row.Name,
		DayHours: make([]float64, len(row.Days)),
	}

	for i, day := range row.Days {
		if !day.Included {
			continue
		}

		hours := 0.0
		for _, c := range day.Cells {
			if h := in.Hours(c.Code); h > 0 {
				hours += h
			}
		}

		rec.DayHours[i] = hours
		rec.TotalHours += hours
		if hours > 0 {
			rec.DaysWorked++
			if day.Group.Role == domain.Sunday {
				rec.SundayWorked = true
			}
		}
	}

	rec.Overwork, rec.Overtime = SplitExcess(rec.TotalHours, th.Hours(rec.DaysWorked))
	return rec
}
