package schedule

import (
	"testing"
	"time"

	"github.com/andpap18/thikishop-payroll/domain"
)

func groupStarts() []int {
	return []int{2, 6, 10, 14, 18, 22, 26}
}

func TestFilterDateGroupsNativeDates(t *testing.T) {
	g := newFakeGrid()
	// Week of 28 Oct - 3 Nov: Tue..Fri in October, Sat and Sun in November.
	days := []time.Time{
		time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
	}
	for i, start := range groupStarts() {
		g.setDate(2, start, days[i])
	}

	inc := FilterDateGroups(g, domain.DefaultSchema(), 11)

	for col := 2; col <= 17; col++ {
		if inc.Included(col) {
			t.Errorf("col %d should be excluded (October)", col)
		}
	}
	for col := 18; col <= 26; col++ {
		if !inc.Included(col) {
			t.Errorf("col %d should be included (November)", col)
		}
	}
	if !inc.Included(1) || !inc.Included(27) {
		t.Error("columns outside the day-groups must stay included")
	}
}

func TestFilterDateGroupsSlashAndNames(t *testing.T) {
	g := newFakeGrid()
	g.set(2, 2, "ΔΕΥΤΕΡΑ 27/10")
	g.set(2, 6, "28/10")
	g.set(2, 10, "Τετάρτη 29 Οκτωβρίου")
	g.set(2, 14, "30/10/2025")
	g.set(2, 18, "ΠΑΡΑΣΚΕΥΗ 31 ΟΚΤΩΒΡΙΟΥ")
	g.set(2, 22, "Σάββατο 1 Νοεμβρίου")
	g.set(2, 26, "2/11")

	inc := FilterDateGroups(g, domain.DefaultSchema(), 10)

	for _, col := range []int{2, 5, 6, 10, 14, 18, 21} {
		if !inc.Included(col) {
			t.Errorf("col %d should be included", col)
		}
	}
	for _, col := range []int{22, 25, 26} {
		if inc.Included(col) {
			t.Errorf("col %d should be excluded", col)
		}
	}
}

func TestFilterDateGroupsDatelessFileFallsBack(t *testing.T) {
	g := newFakeGrid()
	for _, start := range groupStarts() {
		g.set(2, start, "ΒΑΡΔΙΑ")
	}

	inc := FilterDateGroups(g, domain.DefaultSchema(), 5)
	for col := 2; col <= 26; col++ {
		if !inc.Included(col) {
			t.Fatalf("col %d excluded in a dateless file", col)
		}
	}
}

func TestFilterDateGroupsNoTargetMonth(t *testing.T) {
	g := newFakeGrid()
	g.setDate(2, 2, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	inc := FilterDateGroups(g, domain.DefaultSchema(), 0)
	for col := 2; col <= 26; col++ {
		if !inc.Included(col) {
			t.Fatalf("col %d excluded without a target month", col)
		}
	}
}

func TestFilterDateGroupsUndatedGroupInDatedFile(t *testing.T) {
	g := newFakeGrid()
	g.set(2, 2, "03/11")
	g.set(2, 6, "")
	g.set(2, 10, "ΣΗΜΕΙΩΣΗ")

	inc := FilterDateGroups(g, domain.DefaultSchema(), 12)
	if inc.Included(2) {
		t.Error("November group should be excluded for December")
	}
	if !inc.Included(6) || !inc.Included(10) {
		t.Error("groups without a readable date stay included")
	}
}

func TestHeaderMonth(t *testing.T) {
	tests := []struct {
		text  string
		month int
		ok    bool
	}{
		{"03/11", 11, true},
		{"3/1/2026", 1, true},
		{"Πέμπτη 15 Μαΐου", 5, true},
		{"ΣΕΠΤΕΜΒΡΙΟΥ", 9, true},
		{"ab/cd", 0, false},
		{"1/13", 0, false},
		{"ΔΕΥΤΕΡΑ", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		g := newFakeGrid().set(2, 2, tt.text)
		m, ok := HeaderMonth(g, 2, 2)
		if m != tt.month || ok != tt.ok {
			t.Errorf("HeaderMonth(%q) = %d, %v; want %d, %v", tt.text, m, ok, tt.month, tt.ok)
		}
	}
}
