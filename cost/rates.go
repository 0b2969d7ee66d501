package cost

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/andpap18/thikishop-payroll/domain"
)

// MonthlyCost is one line of the cost table: what an employee costs per month.
type MonthlyCost struct {
	Employee string `csv:"employee" json:"employee"`
	Cost     string `csv:"monthly_cost" json:"monthlyCost"`
}

// Amount parses Cost; blanks are zero.
func (m MonthlyCost) Amount() (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(m.Cost, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ReadMonthlyCosts decodes a CSV cost table with header "employee,monthly_cost".
func ReadMonthlyCosts(r io.Reader) ([]MonthlyCost, error) {
	var rows []MonthlyCost
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read cost table: %w", err)
	}
	for i, row := range rows {
		if _, err := row.Amount(); err != nil {
			return nil, fmt.Errorf("cost table line %d (%s): %w", i+2, row.Employee, err)
		}
	}
	return rows, nil
}

// WriteMonthlyCosts writes a cost table template, one line per employee.
func WriteMonthlyCosts(w io.Writer, employees []string) error {
	rows := make([]MonthlyCost, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, MonthlyCost{Employee: e})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write cost table: %w", err)
	}
	return nil
}

// DailyCosts maps a cleaned employee name to the cost of one worked day.
type DailyCosts map[string]decimal.Decimal

// Rate returns the daily cost of name, zero when absent.
func (d DailyCosts) Rate(name string) decimal.Decimal {
	if r, ok := d[name]; ok {
		return r
	}
	return decimal.Zero
}

// Warning reports a monthly cost that could not be spread over worked days.
type Warning struct {
	Employee    string          `json:"employee"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Message     string          `json:"message"`
}

// ZeroTotal is the run-level warning for a ledger that totals nothing.
const ZeroTotal = "total cost is 0, check that employee names match the schedule files exactly"

func (w Warning) String() string {
	if w.Employee == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Employee, w.Message)
}

// DailyRates divides every positive monthly cost by the employee's days
// worked. An employee with cost but no days gets a zero rate and a Warning.
func DailyRates(monthly []MonthlyCost, days map[string]int) (DailyCosts, []Warning, error) {
	rates := make(DailyCosts, len(monthly))
	var warnings []Warning

	for _, m := range monthly {
		amount, err := m.Amount()
		if err != nil {
			return nil, nil, fmt.Errorf("monthly cost of %s: %w", m.Employee, err)
		}
		if !amount.IsPositive() {
			continue
		}

		name := domain.CleanName(m.Employee)
		d := days[name]
		if d <= 0 {
			rates[name] = decimal.Zero
			warnings = append(warnings, Warning{
				Employee:    name,
				MonthlyCost: amount,
				Message:     "no days worked in the selected month, daily cost set to 0",
			})
			continue
		}
		rates[name] = amount.Div(decimal.NewFromInt(int64(d)))
	}

	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Employee < warnings[j].Employee })
	return rates, warnings, nil
}
