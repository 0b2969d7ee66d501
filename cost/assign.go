package cost

import (
	"github.com/andpap18/thikishop-payroll/domain"
)

// Assignment pins the Sunday shop of an employee, optionally for one file only.
type Assignment struct {
	File     string          `toml:"file" csv:"file"`
	Employee string          `toml:"employee" csv:"employee"`
	Location domain.Location `toml:"location" csv:"location"`
}

// Assignments is the explicit Sunday location table. A file-specific entry
// wins over an employee-wide one.
type Assignments struct {
	byFile     map[string]domain.Location
	byEmployee map[string]domain.Location
}

// NewAssignments builds the lookup table from entries.
func NewAssignments(entries ...Assignment) *Assignments {
	a := &Assignments{
		byFile:     make(map[string]domain.Location),
		byEmployee: make(map[string]domain.Location),
	}
	for _, e := range entries {
		a.Add(e)
	}
	return a
}

// Add registers one entry; later entries replace earlier ones.
func (a *Assignments) Add(e Assignment) {
	name := domain.CleanName(e.Employee)
	if e.File == "" {
		a.byEmployee[name] = e.Location
		return
	}
	a.byFile[assignKey(e.File, name)] = e.Location
}

// Lookup returns the pinned Sunday location for employee in file.
func (a *Assignments) Lookup(file, employee string) (domain.Location, bool) {
	if a == nil {
		return "", false
	}
	if loc, ok := a.byFile[assignKey(file, employee)]; ok {
		return loc, true
	}
	loc, ok := a.byEmployee[employee]
	return loc, ok
}

// Len is the number of entries.
func (a *Assignments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.byFile) + len(a.byEmployee)
}

func assignKey(file, employee string) string {
	return file + "\x00" + employee
}
