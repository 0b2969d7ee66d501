// Package timecode turns the free-text code of a schedule cell into worked hours.
package timecode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andpap18/thikishop-payroll/domain"
)

// Policy is a named set of recognised codes. Schedules from different
// periods use different marker sets, so the deployment picks one.
type Policy struct {
	Name string
	// Skip codes never count as work, checked before anything else.
	Skip []string
	// Leave codes equal to the whole cell are credited LeaveHours.
	Leave []string
	// LeaveKeywords credit LeaveHours when contained anywhere in the cell.
	LeaveKeywords []string
	LeaveHours    float64
	Separator     string
}

const (
	StrictName    = "strict"
	PaidLeaveName = "paid-leave"
)

// Strict only credits the single-letter leave marker.
// ΑΝΑΡΡΩΤΙΚΗ and ΑΔΕΙΑ written out count as no work.
func Strict() Policy {
	return Policy{
		Name:       StrictName,
		Skip:       []string{"NONE", "RR", "ΡΕΠΟ", "ΑΝΑΡΡΩΤΙΚΗ", "ΑΔΕΙΑ"},
		Leave:      []string{"Α", "A"},
		LeaveHours: 8,
		Separator:  "-",
	}
}

// PaidLeave also credits sick leave and any cell mentioning leave or a holiday.
func PaidLeave() Policy {
	return Policy{
		Name:          PaidLeaveName,
		Skip:          []string{"NONE", "RR", "ΡΕΠΟ"},
		Leave:         []string{"Α", "A", "ΑΝΑΡΡΩΤΙΚΗ"},
		LeaveKeywords: []string{"ΑΔΕΙΑ", "ΑΡΓΙΑ"},
		LeaveHours:    8,
		Separator:     "-",
	}
}

// PolicyByName returns the named policy; ok is false for unknown names.
func PolicyByName(name string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrictName, "":
		return Strict(), true
	case PaidLeaveName:
		return PaidLeave(), true
	default:
		return Policy{}, false
	}
}

// Interpreter evaluates cell codes under one Policy.
type Interpreter struct {
	policy   Policy
	skip     map[string]struct{}
	leave    map[string]struct{}
	keywords []string
}

// New creates an Interpreter for p.
func New(p Policy) *Interpreter {
	if p.Separator == "" {
		p.Separator = "-"
	}
	in := &Interpreter{
		policy: p,
		skip:   foldSet(p.Skip),
		leave:  foldSet(p.Leave),
	}
	for _, k := range p.LeaveKeywords {
		in.keywords = append(in.keywords, domain.Fold(k))
	}
	return in
}

// Policy returns the policy the interpreter was built with.
func (in *Interpreter) Policy() Policy {
	return in.policy
}

var annotationPat = regexp.MustCompile(`\[.*?\]`)

// Hours returns the worked hours of a cell code. Malformed codes are no work,
// never an error.
//
//	"09:00-17:00" → 8
//	"22:00-02:00" → 4
//	"Α"           → 8
//	"ΡΕΠΟ"        → 0
func (in *Interpreter) Hours(code string) float64 {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0
	}
	if _, ok := in.skip[domain.Fold(code)]; ok {
		return 0
	}

	code = strings.TrimSpace(annotationPat.ReplaceAllString(code, ""))
	folded := domain.Fold(code)

	if _, ok := in.leave[folded]; ok {
		return in.policy.LeaveHours
	}
	for _, k := range in.keywords {
		if strings.Contains(folded, k) {
			return in.policy.LeaveHours
		}
	}

	return rangeHours(code, in.policy.Separator)
}

func rangeHours(code, sep string) float64 {
	if !strings.Contains(code, sep) {
		return 0
	}

	parts := strings.Split(code, sep)
	if len(parts) != 2 {
		return 0
	}

	start, ok := clockHours(parts[0])
	if !ok {
		return 0
	}
	end, ok := clockHours(parts[1])
	if !ok {
		return 0
	}

	diff := end - start
	if diff < 0 {
		diff += 24
	}
	return diff
}

// clockHours parses "H:MM" into decimal hours. Anything past 24:00 is rejected.
func clockHours(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m > 0) {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

func foldSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[domain.Fold(c)] = struct{}{}
	}
	return set
}
