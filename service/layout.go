package service

import "mtg-labels/models"

// Grid geometry, in 1/10 mm
const (
	GridRows     = 10
	GridCols     = 3
	GridMargin   = 40
	HeaderOffset = 40

	columnGap = 10 // added to each column step
	rowShrink = 18 // removed from each row step
)

// GridLayout positions labels on a fixed rows x columns grid. The steps
// between anchors are derived once from the paper size.
type GridLayout struct {
	rows, cols     int
	startX, startY float64
	deltaX, deltaY float64
}

// NewGridLayout creates the label grid for a paper size
func NewGridLayout(paper models.PaperSize) *GridLayout {
	return &GridLayout{
		rows:   GridRows,
		cols:   GridCols,
		startX: GridMargin,
		startY: GridMargin + HeaderOffset,
		deltaX: (paper.Width-2*GridMargin)/GridCols + columnGap,
		deltaY: (paper.Height-2*GridMargin)/GridRows - rowShrink,
	}
}

// Capacity is the number of labels that fit on one page
func (g *GridLayout) Capacity() int {
	return g.rows * g.cols
}

// Start returns the anchor of the first label of a page
func (g *GridLayout) Start() (float64, float64) {
	return g.startX, g.startY
}

// Deltas returns the column and row steps
func (g *GridLayout) Deltas() (float64, float64) {
	return g.deltaX, g.deltaY
}

// Position returns the anchor of the label with running index i.
// Labels fill a column top to bottom, then move to the next column; every
// Capacity labels the grid starts over on a new page.
func (g *GridLayout) Position(i int) (float64, float64) {
	slot := i % g.Capacity()
	col := slot / g.rows
	row := slot % g.rows
	return g.startX + float64(col)*g.deltaX, g.startY + float64(row)*g.deltaY
}

// Layout assigns grid coordinates to resolved sets in order
func (g *GridLayout) Layout(sets []ResolvedSet) []models.LabelRecord {
	labels := make([]models.LabelRecord, 0, len(sets))
	for i, set := range sets {
		x, y := g.Position(i)
		labels = append(labels, models.LabelRecord{
			Name:         set.DisplayName,
			Code:         set.Set.Code,
			Date:         set.Set.Released,
			IconFilename: set.IconFilename,
			X:            x,
			Y:            y,
		})
	}
	return labels
}

// Paginate splits labels into pages of at most capacity labels, numbered
// from 1
func Paginate(labels []models.LabelRecord, capacity int) []models.PageBatch {
	if capacity < 1 {
		capacity = 1
	}

	var pages []models.PageBatch
	for i := 0; i < len(labels); i += capacity {
		end := i + capacity
		if end > len(labels) {
			end = len(labels)
		}
		pages = append(pages, models.PageBatch{
			Number: len(pages) + 1,
			Labels: labels[i:end],
		})
	}
	return pages
}
