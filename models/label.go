package models

import "time"

// LabelRecord is a resolved label positioned on its page.
// X and Y are in the page's physical units (1/10 mm).
type LabelRecord struct {
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Date         time.Time `json:"date"`
	IconFilename string    `json:"iconFilename"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
}

// PageBatch is the ordered list of labels printed on one page
type PageBatch struct {
	Number int           `json:"number"` // 1-based
	Labels []LabelRecord `json:"labels"`
}

// Codes returns the set codes on the page in print order
func (b PageBatch) Codes() []string {
	codes := make([]string, 0, len(b.Labels))
	for _, label := range b.Labels {
		codes = append(codes, label.Code)
	}
	return codes
}
