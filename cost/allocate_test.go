package cost

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andpap18/thikishop-payroll/domain"
	"github.com/andpap18/thikishop-payroll/schedule"
)

type cellSpec struct {
	group, sub int
	code, fill string
}

func buildRow(name string, excluded map[int]bool, specs ...cellSpec) schedule.Row {
	codes := make(map[[2]int]cellSpec)
	for _, s := range specs {
		codes[[2]int{s.group, s.sub}] = s
	}

	row := schedule.Row{Row: 4, RawName: name, Name: domain.CleanName(name)}
	for _, g := range domain.DefaultSchema().Groups() {
		day := schedule.Day{Group: g, Included: !excluded[g.Index]}
		for k := range g.Width {
			spec := codes[[2]int{g.Index, k}]
			day.Cells = append(day.Cells, schedule.Cell{
				Row: 4, Col: g.Start + k, Sub: k,
				Code: spec.code, Fill: spec.fill,
				Included: !excluded[g.Index],
			})
		}
		row.Days = append(row.Days, day)
	}
	return row
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestAllocateThirdLocation(t *testing.T) {
	a := NewAllocator()
	rates := DailyCosts{"ΓΙΑΝΝΗΣ": mustDecimal(t, "50.00")}
	row := buildRow("ΓΙΑΝΝΗΣ (8ΩΡΟΣ)", nil, cellSpec{group: 1, sub: 2, code: "09:00-17:00"})

	plan, err := a.Allocate("1_ΝΟΕ.xlsx", []schedule.Row{row}, rates)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	ledger := NewLedger(domain.DefaultLocations)
	ledger.Apply(plan)

	if !ledger.Get(domain.Peiraias).Equal(mustDecimal(t, "50")) {
		t.Errorf("ΠΕΙΡΑΙΑΣ = %s, want 50", ledger.Get(domain.Peiraias))
	}
	for _, loc := range []domain.Location{domain.Rentis, domain.Aigaleo, domain.Peristeri} {
		if !ledger.Get(loc).IsZero() {
			t.Errorf("%s = %s, want 0", loc, ledger.Get(loc))
		}
	}

	if len(plan.Allocations) != 1 || plan.Allocations[0].Method != BySubColumn {
		t.Errorf("allocations = %+v", plan.Allocations)
	}

	cell := plan.Rows[0].Cells[4+2]
	if !cell.Worked || !cell.Cost.Equal(mustDecimal(t, "50")) || cell.Col != 8 {
		t.Errorf("planned cell = %+v", cell)
	}
}

func TestAllocateZeroCostReplacesWithoutLedger(t *testing.T) {
	a := NewAllocator()
	row := buildRow("ΜΑΡΙΑ", nil,
		cellSpec{group: 0, sub: 0, code: "09:00-17:00"},
		cellSpec{group: 2, sub: 0, code: "ΡΕΠΟ"},
		cellSpec{group: 3, sub: 1, code: "ΑΝΑΡΡΩΤΙΚΗ"},
	)

	plan, err := a.Allocate("f.xlsx", []schedule.Row{row}, DailyCosts{})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(plan.Allocations) != 0 {
		t.Errorf("allocations = %+v, want none", plan.Allocations)
	}

	cells := plan.Rows[0].Cells
	if !cells[0].Worked || !cells[0].Cost.IsZero() {
		t.Errorf("worked cell = %+v, want worked with 0.00", cells[0])
	}
	if cells[8].Worked || cells[8].Code != "ΡΕΠΟ" {
		t.Errorf("rest day = %+v, want original code", cells[8])
	}
	if !cells[13].Worked {
		t.Errorf("sick leave should be a costed day: %+v", cells[13])
	}
}

func TestAllocateSkipsExcludedGroups(t *testing.T) {
	a := NewAllocator()
	rates := DailyCosts{"ΝΙΚΟΣ": decimal.NewFromInt(40)}
	row := buildRow("ΝΙΚΟΣ", map[int]bool{0: true}, cellSpec{group: 0, sub: 0, code: "09:00-17:00"})

	plan, _ := a.Allocate("f.xlsx", []schedule.Row{row}, rates)
	if len(plan.Allocations) != 0 {
		t.Errorf("excluded cell was allocated: %+v", plan.Allocations)
	}
	if plan.Rows[0].Cells[0].Worked {
		t.Error("excluded cell must not be planned as worked")
	}
}

func TestAllocateSundayLocation(t *testing.T) {
	rates := DailyCosts{"ΕΛΕΝΗ": decimal.NewFromInt(60), "ΚΩΣΤΑΣ": decimal.NewFromInt(60), "ΑΝΝΑ": decimal.NewFromInt(60)}
	rows := []schedule.Row{
		buildRow("ΕΛΕΝΗ", nil, cellSpec{group: 6, code: "10:00-17:00"}),
		buildRow("ΚΩΣΤΑΣ", nil, cellSpec{group: 6, code: "10:00-17:00", fill: "FFDDEBF7"}),
		buildRow("ΑΝΝΑ", nil, cellSpec{group: 6, code: "10:00-17:00", fill: "E2EFDA"}),
	}

	a := NewAllocator()
	a.Sunday = NewAssignments(Assignment{File: "2_ΝΟΕ.xlsx", Employee: "ΑΝΝΑ", Location: domain.Peristeri})

	plan, err := a.Allocate("2_ΝΟΕ.xlsx", rows, rates)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	want := map[string]struct {
		loc    domain.Location
		method Method
	}{
		"ΕΛΕΝΗ":  {domain.Rentis, ByDefault},
		"ΚΩΣΤΑΣ": {domain.Peiraias, ByColor},
		"ΑΝΝΑ":   {domain.Peristeri, ByAssignment},
	}
	if len(plan.Allocations) != 3 {
		t.Fatalf("allocations = %d, want 3", len(plan.Allocations))
	}
	for _, al := range plan.Allocations {
		w := want[al.Employee]
		if al.Location != w.loc || al.Method != w.method {
			t.Errorf("%s → %s by %s, want %s by %s", al.Employee, al.Location, al.Method, w.loc, w.method)
		}
	}

	a.ColorFallback = false
	plan, _ = a.Allocate("3_ΝΟΕ.xlsx", rows[1:2], rates)
	if plan.Allocations[0].Location != domain.Rentis {
		t.Errorf("without color fallback ΚΩΣΤΑΣ → %s, want default", plan.Allocations[0].Location)
	}
}

func TestWorkPolicy(t *testing.T) {
	p := DefaultWorkPolicy()
	tests := map[string]bool{
		"09:00-17:00": true,
		"Α":           true,
		"a":           true,
		"ΑΝΑΡΡΩΤΙΚΗ":  true,
		"Άδεια":       true,
		"ΡΕΠΟ":        false,
		"RR":          false,
		"None":        false,
		"":            false,
		"garbage":     false,
	}
	for code, want := range tests {
		if got := p.Worked(code); got != want {
			t.Errorf("Worked(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestAllocateWithoutLocations(t *testing.T) {
	a := &Allocator{}
	if _, err := a.Allocate("f.xlsx", nil, nil); err == nil {
		t.Fatal("expected error without locations")
	}
}
