package excel

import "github.com/xuri/excelize/v2"

// CellName converts 1-based row and column indices to an A1 reference
// (1,1 → "A1"). Out-of-range coordinates yield "".
func CellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// ColumnName converts a 1-based column number to letters (1→A, 26→Z, 27→AA).
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}
