package models

import (
	"fmt"
	"sort"
)

// DefaultPaperSize is used when no paper size is configured
const DefaultPaperSize = "letter"

// PaperSize describes a physical page. Width and Height are in 1/10 mm.
type PaperSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var paperSizes = map[string]PaperSize{
	"letter": {Name: "letter", Width: 2160, Height: 2790},
	"a4":     {Name: "a4", Width: 2100, Height: 2970},
}

// LookupPaperSize returns the paper registered under name
func LookupPaperSize(name string) (PaperSize, error) {
	paper, ok := paperSizes[name]
	if !ok {
		return PaperSize{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPaperSize, name, PaperSizeNames())
	}
	return paper, nil
}

// PaperSizeNames returns the known paper keys in sorted order
func PaperSizeNames() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WidthInches converts the paper width to inches
func (p PaperSize) WidthInches() float64 {
	return p.Width / 254
}

// HeightInches converts the paper height to inches
func (p PaperSize) HeightInches() float64 {
	return p.Height / 254
}

// PixelSize returns the page size in CSS pixels (96 DPI)
func (p PaperSize) PixelSize() (int, int) {
	return int(p.WidthInches()*96 + 0.5), int(p.HeightInches()*96 + 0.5)
}
