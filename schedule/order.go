package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andpap18/thikishop-payroll/domain"
)

// NoDateScore sorts files without any digits after every dated file.
const NoDateScore = 99999

var monthAbbrevs = []monthName{
	{"ΙΑΝ", 1}, {"ΦΕΒ", 2}, {"ΜΑΡ", 3}, {"ΑΠΡ", 4}, {"ΜΑΙ", 5}, {"ΙΟΥΝ", 6},
	{"ΙΟΥΛ", 7}, {"ΑΥΓ", 8}, {"ΣΕΠ", 9}, {"ΟΚΤ", 10}, {"ΝΟΕ", 11}, {"ΔΕΚ", 12},
}

var (
	dayMonthPat = regexp.MustCompile(`(\d+)_([Α-Ω]+)`)
	digitsPat   = regexp.MustCompile(`\d+`)
)

// DateScore ranks a schedule filename: month*100+day for "<day>_<ΜΗΝ>" names,
// else the first run of digits, else NoDateScore.
//
//	"3_ΝΟΕ(ΕΠΙΘ).xlsx" → 1103
//	"week 2.xlsx"      → 2
func DateScore(filename string) int {
	if m := dayMonthPat.FindStringSubmatch(domain.Fold(filename)); m != nil {
		day, err := strconv.Atoi(m[1])
		if err == nil {
			for _, ma := range monthAbbrevs {
				if strings.Contains(m[2], ma.key) {
					return ma.month*100 + day
				}
			}
		}
	}

	if d := digitsPat.FindString(filename); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			return n
		}
	}

	return NoDateScore
}

// Filename names a schedule of the week starting on t so that DateScore
// ranks it by that day, e.g. "3_ΝΟΕ.xlsx".
func Filename(t time.Time) string {
	return fmt.Sprintf("%d_%s.xlsx", t.Day(), monthAbbrevs[t.Month()-1].key)
}

// Order returns items sorted by the DateScore of their filename. Ties keep
// filename order so undated files end up last, alphabetically.
func Order[T any](items []T, name func(T) string) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := name(sorted[i]), name(sorted[j])
		si, sj := DateScore(ni), DateScore(nj)
		if si != sj {
			return si < sj
		}
		return ni < nj
	})

	return sorted
}
