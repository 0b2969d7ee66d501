package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Fills used across both reports.
const (
	fillBlank       = "EEEEEE"
	fillWhite       = "FFFFFF"
	fillOrange      = "FFC000"
	fillLightOrange = "FCE4D6"
	fillHeaderGrey  = "D9D9D9"
	fillNameGrey    = "E7E6E6"
)

// Built-in number formats.
const (
	numFmtTwoDecimals = 2 // 0.00
	numFmtThousands   = 4 // #,##0.00
)

type borderKind int

const (
	borderNone borderKind = iota
	borderThin
	borderThick
)

// cellStyle describes a style by value so equal descriptions share one id.
type cellStyle struct {
	Bold   bool
	Size   float64
	Fill   string
	Align  string
	Wrap   bool
	Border borderKind
	NumFmt int
}

// StyleManager caches Excel styles so each style is created only once per file.
type StyleManager struct {
	file  *excelize.File
	cache map[cellStyle]int
}

// NewStyleManager creates a style manager bound to the given file.
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[cellStyle]int)}
}

// Get returns the style id for cs, creating it on first use.
func (sm *StyleManager) Get(cs cellStyle) (int, error) {
	if id, ok := sm.cache[cs]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(cs.excelize())
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}

	sm.cache[cs] = id
	return id, nil
}

func (cs cellStyle) excelize() *excelize.Style {
	style := &excelize.Style{
		Font:   &excelize.Font{Family: "Calibri", Size: cs.size(), Bold: cs.Bold},
		Border: borders(cs.Border),
		NumFmt: cs.NumFmt,
	}
	if cs.Align != "" || cs.Wrap {
		style.Alignment = &excelize.Alignment{Horizontal: cs.Align, Vertical: "center", WrapText: cs.Wrap}
	}
	if cs.Fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cs.Fill}}
	}
	return style
}

func (cs cellStyle) size() float64 {
	if cs.Size == 0 {
		return 11
	}
	return cs.Size
}

func borders(kind borderKind) []excelize.Border {
	var style int
	switch kind {
	case borderThin:
		style = 1
	case borderThick:
		style = 2
	default:
		return nil
	}
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: style},
		{Type: "right", Color: "000000", Style: style},
		{Type: "top", Color: "000000", Style: style},
		{Type: "bottom", Color: "000000", Style: style},
	}
}
