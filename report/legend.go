package report

import (
	"fmt"
	"strings"

	"github.com/andpap18/thikishop-payroll/domain"
)

const legendTitle = "ΥΠΟΜΝΗΜΑ"

// legendWidth is the number of columns every legend line is merged across.
const legendWidth = 5

// writeLegend lists the non-time codes below the summary. The underscore
// run between Name and Key is sized so every Key ends at the same position.
func writeLegend(w *writer, row int, marks []domain.Mark) error {
	if len(marks) == 0 {
		return nil
	}

	if err := w.set(row, 1, legendTitle, cellStyle{Bold: true}); err != nil {
		return err
	}
	row++

	const minPad = 4
	targetWidth := 0
	for _, m := range marks {
		targetWidth = max(targetWidth, len([]rune(m.Name))+len([]rune(m.Key)))
	}
	targetWidth += minPad

	for i, m := range marks {
		if err := w.merge(row+i, 1, legendWidth); err != nil {
			return fmt.Errorf("legend[%d]: %w", i, err)
		}

		padLen := max(targetWidth-len([]rune(m.Name))-len([]rune(m.Key)), 1)
		content := m.Name + strings.Repeat("_", padLen) + m.Key
		if err := w.set(row+i, 1, content, cellStyle{Align: "left"}); err != nil {
			return fmt.Errorf("legend[%d]: %w", i, err)
		}
	}

	return nil
}
