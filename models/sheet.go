package models

import "time"

// Sheet is a rendered page recorded in the sheet history
type Sheet struct {
	ID        int64     `json:"id"`
	PaperSize string    `json:"paperSize"`
	Page      int       `json:"page"`
	SetCodes  []string  `json:"setCodes"`
	SVGPath   string    `json:"svgPath"`
	PDFPath   string    `json:"pdfPath,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
